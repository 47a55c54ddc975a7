package httpapi

import (
	"net/http"

	"github.com/mouxlas21/football-db/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	limiter := newClientLimiterMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerImportRoutes(mux, handler, limiter)
	registerAdminRoutes(mux, handler, limiter)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

// newClientLimiterMiddleware shares one set of buckets across every route it wraps.
func newClientLimiterMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := newClientLimiter(rps, burst)
	return func(next http.Handler) http.Handler {
		return rateLimited(limiter, next)
	}
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
