package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fleetdock_"

	resultSuccess = "success"
	resultError   = "error"
	resultDenied  = "denied"
)

var (
	registerOnce sync.Once

	mutationsTotal     *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	loginsTotal        *prometheus.CounterVec
	exportLatency      *prometheus.HistogramVec
)

// Init registers the service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		mutationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "mutations_total",
				Help: "Total store mutations by entity, operation and result",
			},
			[]string{"entity", "op", "result"},
		)
		notificationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notifications_total",
				Help: "Total notifications emitted by type",
			},
			[]string{"type"},
		)
		loginsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "logins_total",
				Help: "Total login attempts by result",
			},
			[]string{"result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_duration_seconds",
				Help:    "Fleet report export duration by format",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		)
		prometheus.MustRegister(mutationsTotal, notificationsTotal, loginsTotal, exportLatency)
	})
}

// ObserveMutation records a store mutation outcome.
func ObserveMutation(entity, op string, err error) {
	if mutationsTotal == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	mutationsTotal.WithLabelValues(entity, op, result).Inc()
}

// ObserveMutationDenied records a permission-denied mutation attempt.
func ObserveMutationDenied(entity, op string) {
	if mutationsTotal == nil {
		return
	}
	mutationsTotal.WithLabelValues(entity, op, resultDenied).Inc()
}

// ObserveNotification records an emitted notification.
func ObserveNotification(notificationType string) {
	if notificationsTotal == nil {
		return
	}
	notificationsTotal.WithLabelValues(notificationType).Inc()
}

// ObserveLogin records a login attempt.
func ObserveLogin(ok bool) {
	if loginsTotal == nil {
		return
	}
	result := resultSuccess
	if !ok {
		result = "failure"
	}
	loginsTotal.WithLabelValues(result).Inc()
}

// ObserveExport records an export render duration.
func ObserveExport(format string, start time.Time) {
	if exportLatency == nil {
		return
	}
	exportLatency.WithLabelValues(format).Observe(time.Since(start).Seconds())
}
