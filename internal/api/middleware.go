// internal/api/middleware.go
package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"applytrack/internal/common/logger"
	"applytrack/internal/common/metrics"
	"applytrack/internal/common/observability"
)

// RequestLogger logs every request with method, path, status and latency,
// and feeds the request metrics. obs may be nil.
func RequestLogger(log logger.Logger, obs *observability.Observability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			elapsed := time.Since(start)
			route := c.Path()
			status := c.Response().Status

			metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
			if obs != nil {
				ctx := c.Request().Context()
				obs.RecordRequest(ctx, route, strconv.Itoa(status))
				obs.RecordRequestDuration(ctx, elapsed, route)
			}

			log.Info("Request handled", map[string]interface{}{
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     status,
				"latency_ms": elapsed.Milliseconds(),
			})
			return nil
		}
	}
}
