package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/peoplecore/employee-api/internal/api/metrics"
)

// HitCounter records one request for a client key and returns the number of
// hits in the current window. Implemented by the Redis-backed limiter.
type HitCounter interface {
	Hit(ctx context.Context, clientKey string) (int64, error)
}

// RateLimit returns middleware enforcing a per-client request limit per
// window. A limit of zero disables the limiter. Counter failures fail open:
// an unreachable Redis degrades rate limiting, it does not take the API down.
func RateLimit(counter HitCounter, limit int64, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limit <= 0 {
				return next(c)
			}

			hits, err := counter.Hit(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("ip", c.RealIP()).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if hits > limit {
				metrics.RateLimitRejectionsTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
