package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fintrack/observability"
)

// Prometheus returns an Echo middleware that records request count,
// duration and in-flight gauge for every handled request.
func Prometheus(metrics *observability.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			start := time.Now()
			err := next(c)
			duration := time.Since(start).Seconds()

			// Route pattern, e.g. /transactions/:id, so ids don't
			// explode label cardinality.
			endpoint := c.Path()
			if endpoint == "" {
				endpoint = c.Request().URL.Path
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			method := c.Request().Method
			metrics.HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)

			return err
		}
	}
}
