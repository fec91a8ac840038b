package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/DRSN-tech/autovarka/internal/cfg"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/jimlawless/whereami"
)

const (
	readHeaderTimeout = 5 * time.Second
	maxHeaderBytes    = 64 << 10
)

// Server — HTTP-сервер витрины и админки.
type Server struct {
	httpServer *http.Server
}

func NewServer(handler http.Handler, cfg *cfg.HTTPConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			MaxHeaderBytes:    maxHeaderBytes,
		},
	}
}

// Run слушает адрес из конфигурации. После Stop возвращает http.ErrServerClosed.
func (s *Server) Run() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return s.Serve(lis)
}

// Serve обслуживает запросы на готовом listener.
func (s *Server) Serve(lis net.Listener) error {
	return s.httpServer.Serve(lis)
}

// Stop дожидается завершения активных запросов, пока не истечёт ctx.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return e.Wrap("http.Server.Stop", err)
	}

	return nil
}
