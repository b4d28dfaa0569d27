package grpc

import (
	"context"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger проверяет доступность зависимости (обычно пула БД).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService выставляет статус grpc.health.v1 по результату периодического Ping.
// Статус публикуется для пустого имени (весь сервер) и для имени сервиса.
type HealthService struct {
	srv      *health.Server
	service  string
	checker  Pinger
	interval time.Duration
	logger   logger.Logger
}

func NewHealthService(service string, checker Pinger, interval time.Duration, logger logger.Logger) *HealthService {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	h := &HealthService{
		srv:      health.NewServer(),
		service:  service,
		checker:  checker,
		interval: interval,
		logger:   logger,
	}
	h.set(grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return h
}

func (h *HealthService) Server() *health.Server {
	return h.srv
}

// Run проверяет зависимость сразу и затем каждые interval, пока ctx не отменён.
func (h *HealthService) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		h.Check(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *HealthService) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		h.logger.Warnf("health check failed, service: %s, error: %v", h.service, err)
		h.set(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		return
	}

	h.set(grpc_health_v1.HealthCheckResponse_SERVING)
}

// Shutdown переводит все сервисы в NOT_SERVING и игнорирует дальнейшие обновления.
func (h *HealthService) Shutdown(_ context.Context) error {
	h.srv.Shutdown()
	return nil
}

func (h *HealthService) set(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	h.srv.SetServingStatus("", status)
	h.srv.SetServingStatus(h.service, status)
}
