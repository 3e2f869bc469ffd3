package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records the latency of every request, labeled by method, route and status.
func Metrics(reg prometheus.Registerer) gin.HandlerFunc {
	requests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "twitter_api",
		Subsystem: "http",
		Name:      "requests_seconds",
		Help:      "HTTP requests histogram in seconds",
	}, []string{"method", "route", "status"})

	reg.MustRegister(requests)

	return func(c *gin.Context) {
		st := time.Now()

		c.Next()

		// Unmatched paths share one label to keep cardinality bounded
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(st).Seconds())
	}
}
