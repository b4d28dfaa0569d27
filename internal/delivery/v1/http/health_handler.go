package http

import (
	"context"
	"net/http"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

// HealthChecker проверяет зависимость, без которой сервис не может работать.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// healthz
//
//	@Summary	Проверка готовности
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	healthResponse
//	@Failure	503	{object}	healthResponse
//	@Router		/healthz [get]
func healthz(service string, checker HealthChecker, log logger.Logger) http.HandlerFunc {
	const pingTimeout = 2 * time.Second

	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
			defer cancel()

			if err := checker.Ping(ctx); err != nil {
				log.Warnf("health check failed: %v", err)
				WriteSuccess(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Service: service})
				return
			}
		}

		WriteSuccess(w, http.StatusOK, healthResponse{Status: "ok", Service: service})
	}
}
