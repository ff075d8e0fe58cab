package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/ingenio-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	jobRuns          *prometheus.CounterVec
	jobDuration      *prometheus.HistogramVec
	feesReclassified prometheus.Counter
	paymentsTotal    *prometheus.CounterVec
	paymentsAmount   prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduled_job_runs_total",
		Help: "Scheduled job executions by result",
	}, []string{"job", "result"})

	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduled_job_duration_seconds",
		Help:    "Duration of scheduled job executions",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})

	feesReclassified := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fees_reclassified_overdue_total",
		Help: "Fee line-items flipped from PENDIENTE to VENCIDO",
	})

	paymentsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_recorded_total",
		Help: "Payments recorded by resulting display status",
	}, []string{"status"})

	paymentsAmount := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payments_recorded_amount_total",
		Help: "Sum of recorded payment amounts",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, jobRuns, jobDuration, feesReclassified, paymentsTotal, paymentsAmount, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		jobRuns:          jobRuns,
		jobDuration:      jobDuration,
		feesReclassified: feesReclassified,
		paymentsTotal:    paymentsTotal,
		paymentsAmount:   paymentsAmount,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordJobRun counts a scheduled job execution.
func (m *MetricsService) RecordJobRun(job, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// AddReclassified adds to the reclassified line-item counter.
func (m *MetricsService) AddReclassified(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.feesReclassified.Add(float64(n))
}

// ObservePayment counts a recorded payment.
func (m *MetricsService) ObservePayment(amount decimal.Decimal, status models.DisplayStatus) {
	if m == nil {
		return
	}
	m.paymentsTotal.WithLabelValues(string(status)).Inc()
	m.paymentsAmount.Add(amount.InexactFloat64())
}
