package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/DRSN-tech/autovarka/internal/cfg"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger — зависимость, без которой сервис не готов принимать запросы (хранилище документов).
type Pinger interface {
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	cfg    *cfg.GRPCConfig
	logger logger.Logger
}

func NewGRPCServer(cfg *cfg.GRPCConfig, logger logger.Logger) *GRPCServer {
	return &GRPCServer{
		server: grpc.NewServer(),
		health: health.NewServer(),
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterServices регистрирует стандартный health-сервис. До первой успешной проверки статус NOT_SERVING.
func (s *GRPCServer) RegisterServices() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(s.server, s.health)
}

// CheckReadiness пингует зависимости и выставляет статус health-сервиса.
func (s *GRPCServer) CheckReadiness(ctx context.Context, pingers ...Pinger) error {
	for _, p := range pingers {
		if err := p.Ping(ctx); err != nil {
			s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
			return err
		}
	}

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return nil
}

// WatchReadiness периодически повторяет CheckReadiness, пока не отменён ctx.
func (s *GRPCServer) WatchReadiness(ctx context.Context, interval time.Duration, pingers ...Pinger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		checkCtx, cancel := context.WithTimeout(ctx, interval)
		if err := s.CheckReadiness(checkCtx, pingers...); err != nil && ctx.Err() == nil {
			s.logger.Warnf("readiness check failed: %v", err)
		}
		cancel()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *GRPCServer) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	lis, err := net.Listen(s.cfg.NetworkMode, addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.Serve(lis)
}

func (s *GRPCServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// Stop переводит health в NOT_SERVING и останавливает сервер, дожидаясь активных вызовов до отмены ctx.
func (s *GRPCServer) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof("gRPC server stopped gracefully")
		return nil
	case <-ctx.Done():
		s.server.Stop()
		s.logger.Warnf("gRPC server forced to stop after timeout")
		return ctx.Err()
	}
}
