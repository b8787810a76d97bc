package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"backoffice/internal/infrastructure/httpio"
	"backoffice/internal/infrastructure/metrics"
)

// RouteMounter registers a module's endpoints on a sub-router.
type RouteMounter interface {
	Routes(r chi.Router)
}

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter builds the HTTP handler. db may be nil when the service runs on
// the in-memory store.
func NewRouter(products, orders RouteMounter, m *metrics.Metrics, db Pinger, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpio.TraceMiddleware)
	r.Use(requestLogger(logger))
	r.Use(m.Middleware)

	r.Get("/health", healthHandler(db, logger))
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/products", products.Routes)
	r.Route("/api/orders", orders.Routes)

	return r
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				httpio.WriteJSON(w, logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpio.WriteJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				zap.String("traceId", httpio.TraceID(r.Context())),
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
