package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/DRSN-tech/inventory-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// accessLog пишет строку на каждый запрос и обновляет HTTP-метрики.
// Маршрут берётся из шаблона chi, чтобы не плодить метки по ID.
func accessLog(log logger.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			elapsed := time.Since(start)
			if m != nil {
				m.RecordHTTPRequest(r.Method, route, status, elapsed)
			}

			log.Debugf("%s %s %d %s request_id=%s",
				r.Method, r.URL.Path, status, elapsed, middleware.GetReqID(r.Context()))
		})
	}
}
