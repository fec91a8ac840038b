package main

import (
	"os"

	"github.com/DRSN-tech/autovarka/internal/app"
	"github.com/DRSN-tech/autovarka/internal/cfg"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

const serviceName = "autovarka"

func main() {
	os.Exit(run())
}

// run собирает витрину и блокируется до остановки. Возвращает код выхода.
func run() int {
	log := logger.NewSlogLogger().With("service", serviceName)

	conf, err := cfg.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		return 1
	}

	log.Infof("starting %s: env=%s storage=%s events=%s", serviceName, conf.App.Env, conf.Storage.Backend, conf.Events.Broker)

	storefront, err := app.NewApp(conf, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		return 1
	}

	if err := storefront.Run(); err != nil {
		log.Errorf(err, "%s stopped with error", serviceName)
		return 1
	}

	return 0
}
