package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/autovarka/internal/cfg"
	v1Grpc "github.com/DRSN-tech/autovarka/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/autovarka/internal/delivery/v1/http"
	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/infrastructure/amqp"
	"github.com/DRSN-tech/autovarka/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/autovarka/internal/infrastructure/minio"
	"github.com/DRSN-tech/autovarka/internal/infrastructure/notify"
	"github.com/DRSN-tech/autovarka/internal/repository/document"
	"github.com/DRSN-tech/autovarka/internal/repository/file"
	"github.com/DRSN-tech/autovarka/internal/repository/memory"
	s3Repo "github.com/DRSN-tech/autovarka/internal/repository/minio"
	"github.com/DRSN-tech/autovarka/internal/repository/pgdb"
	"github.com/DRSN-tech/autovarka/internal/repository/redis"
	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/clients"
	"github.com/DRSN-tech/autovarka/pkg/closer"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/DRSN-tech/autovarka/pkg/metrics"
	"github.com/DRSN-tech/autovarka/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout       = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	readinessInterval = 15 * time.Second
	topicTimeout      = 10 * time.Second
)

// App — собранное приложение: хранилище, уведомления, HTTP и gRPC серверы.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	redis *clients.RedisClient
	db    *postgres.PgDatabase

	httpSrv   *v1Http.Server
	grpcSrv   *v1Grpc.GRPCServer
	readiness []v1Grpc.Pinger

	// Отменяется при остановке и прерывает фоновую очистку изображений
	background       context.Context
	cancelBackground context.CancelFunc
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	background, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:              cfg,
		logger:           logger,
		closer:           closer.NewCloser(0),
		background:       background,
		cancelBackground: cancel,
	}

	if err := a.init(); err != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer closeCancel()
		if cerr := a.closer.Close(closeCtx); cerr != nil {
			logger.Warnf("cleanup after failed init: %v", cerr)
		}
		cancel()
		return nil, err
	}

	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	newBackend, err := a.initStorage(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	retries := document.WithRetries(a.cfg.Storage.MaxRetries)
	orders := document.NewStore[[]domain.Order]("orders", newBackend("orders"), a.logger, retries)
	products := document.NewStore[[]domain.Product]("products", newBackend("products"), a.logger, retries)
	video := document.NewStore[domain.VideoSettings]("settings:video", newBackend("settings:video"), a.logger, retries)
	analytics := document.NewStore[domain.AnalyticsSettings]("settings:analytics", newBackend("settings:analytics"), a.logger, retries)
	a.readiness = append(a.readiness, orders)

	serverMetrics := metrics.NewServerMetrics()

	notifiers, err := a.initNotifiers(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	dispatcher := notify.NewDispatcher(a.logger, serverMetrics, notifiers...)
	a.logger.Infof("notification channels: %v", dispatcher.Channels())

	imagesInfra, err := a.initImages(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	validator := usecase.NewValidator()
	orderUC := usecase.NewOrderUC(orders, dispatcher, serverMetrics, validator, a.logger)
	productUC := usecase.NewProductUC(products, imagesInfra, validator, a.logger)
	settingsUC := usecase.NewSettingsUC(video, analytics, validator, a.logger)
	contactUC := usecase.NewContactUC(dispatcher, validator, a.logger)
	imageUC := usecase.NewImageUC(imagesInfra, a.logger)
	authUC := usecase.NewAuthUC(a.initSessions(), usecase.AdminCredentials{
		Username:     a.cfg.Admin.Username,
		PasswordHash: a.cfg.Admin.PasswordHash,
		PasswordSalt: a.cfg.Admin.PasswordSalt,
		Password:     a.cfg.Admin.Password,
		SessionTTL:   a.cfg.Admin.SessionTTL,
	}, validator, a.logger)

	r := chi.NewRouter()
	v1Http.NewRouter(r, serverMetrics, a.logger).Init(&v1Http.Handlers{
		Orders:   v1Http.NewOrderHandler(orderUC, a.logger),
		Products: v1Http.NewProductHandler(productUC, a.logger),
		Auth:     v1Http.NewAuthHandler(authUC, !a.cfg.App.IsDev(), a.logger),
		Settings: v1Http.NewSettingsHandler(settingsUC, a.logger),
		Contact:  v1Http.NewContactHandler(contactUC, a.logger),
		Images:   v1Http.NewImageHandler(imageUC, a.cfg.Minio.MaxImageSize, a.logger),
		Sitemap:  v1Http.NewSitemapHandler(productUC, a.cfg.App.PublicBaseURL, a.logger),
	})
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices()

	// Закрываются в обратном порядке: сначала серверы, затем клиенты хранилищ
	a.closer.Add("grpc server", a.grpcSrv.Stop)
	a.closer.Add("http server", a.httpSrv.Stop)

	return nil
}

// initStorage подключает выбранный бэкенд документов и возвращает фабрику бэкендов по имени документа.
func (a *App) initStorage(ctx context.Context) (func(name string) document.Backend, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendRedis:
		if err := a.connectRedis(ctx); err != nil {
			return nil, err
		}
		prefix := a.cfg.Redis.KeyPrefix
		a.logger.Infof("storage: redis %s", a.cfg.Redis.Addr)
		return func(name string) document.Backend {
			return redis.NewDocumentBackend(a.redis, prefix, name)
		}, nil

	case config.BackendPostgres:
		db, err := postgres.Connect(ctx, a.cfg.Db)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.db = db
		a.closer.AddFunc("postgres", db.Close)

		if err := db.RunMigrations(a.cfg.Db.MigrationsDir, a.logger); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.logger.Infof("storage: postgres %s:%s/%s", a.cfg.Db.Host, a.cfg.Db.Port, a.cfg.Db.DBName)
		return func(name string) document.Backend {
			return pgdb.NewDocumentBackend(db.Pool, name)
		}, nil

	default:
		dir := a.cfg.Storage.DataDir
		a.logger.Infof("storage: files in %s", dir)
		return func(name string) document.Backend {
			return file.NewDocumentBackend(dir, name)
		}, nil
	}
}

func (a *App) connectRedis(ctx context.Context) error {
	if a.redis != nil {
		return nil
	}

	client := clients.NewRedisClient(a.cfg.Redis)
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return e.Wrap(whereami.WhereAmI(), err)
	}

	a.redis = client
	a.closer.AddFunc("redis", client.Close)
	return nil
}

// initSessions хранит сессии в Redis, если он уже используется как хранилище, иначе в памяти процесса.
func (a *App) initSessions() usecase.SessionRepository {
	if a.redis != nil {
		return redis.NewSessionRepo(a.redis, a.cfg.Redis.KeyPrefix, a.logger)
	}

	a.logger.Warnf("admin sessions are kept in memory and will be lost on restart")
	return memory.NewSessionRepo()
}

func (a *App) initNotifiers(ctx context.Context) ([]usecase.Notifier, error) {
	var notifiers []usecase.Notifier

	if a.cfg.SMTP.Enabled() {
		email, err := notify.NewEmailNotifier(a.cfg.SMTP)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		notifiers = append(notifiers, email)
	} else {
		a.logger.Warnf("SMTP is not configured, email notifications are disabled")
	}

	if a.cfg.Telegram.Enabled() {
		notifiers = append(notifiers, notify.NewTelegramNotifier(a.cfg.Telegram))
	} else {
		a.logger.Warnf("Telegram is not configured, chat notifications are disabled")
	}

	switch a.cfg.Events.Broker {
	case config.BrokerKafka:
		producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
		a.closer.AddFunc("kafka producer", producer.Close)
		if err := producer.EnsureTopic(topicTimeout); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		notifiers = append(notifiers, notify.NewEventNotifier("kafka", producer))

	case config.BrokerAMQP:
		publisher, err := amqp.NewPublisher(ctx, a.cfg.AMQP, a.logger)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.closer.AddFunc("amqp publisher", publisher.Close)
		notifiers = append(notifiers, notify.NewEventNotifier("amqp", publisher))
	}

	return notifiers, nil
}

// initImages подключает MinIO. Без бакета возвращается nil: загрузка изображений отвечает 503.
func (a *App) initImages(ctx context.Context) (usecase.ImagesInfra, error) {
	if !a.cfg.Minio.Enabled() {
		a.logger.Warnf("MinIO is not configured, image uploads are disabled")
		return nil, nil
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio.BucketName)
	infra := minioInfra.NewMinioInfrastructure(imageRepo, a.cfg.Minio, a.logger, a.background)
	a.closer.Add("minio cleanup", infra.WaitForCleanup)

	return infra, nil
}

// Run запускает серверы и блокируется до сигнала остановки или фатальной ошибки сервера.
func (a *App) Run() error {
	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	readinessCtx, stopReadiness := context.WithCancel(a.background)
	defer stopReadiness()
	go a.grpcSrv.WatchReadiness(readinessCtx, readinessInterval, a.readiness...)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	stopReadiness()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}
	a.cancelBackground()

	a.logger.Infof("Application shutdown complete")
	return appErr
}
