package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// StreakTransitions 状态机转换计数, status 取值为转换结果
	StreakTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_transitions_total",
			Help: "Total number of streak state machine transitions",
		},
		[]string{"status"},
	)

	// PersonalRecords 实时提交流程里检出的 PR 数
	PersonalRecords = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "personal_records_total",
			Help: "Total number of personal records detected",
		},
	)

	// BackfillRecordWrites 回填过程实际落库的记录数
	BackfillRecordWrites = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backfill_record_writes_total",
			Help: "Total number of exercise records rewritten by backfill",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(StreakTransitions)
	prometheus.MustRegister(PersonalRecords)
	prometheus.MustRegister(BackfillRecordWrites)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
