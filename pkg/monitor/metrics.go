package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Alert result labels for the alerts counter.
const (
	AlertResultDelivered  = "delivered"
	AlertResultFailed     = "failed"
	AlertResultInCooldown = "in_cooldown"
)

// Metrics contains Prometheus metrics for the monitor service.
type Metrics struct {
	// Accounting loop
	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	snapshotSize prometheus.Gauge
	trackedApps  prometheus.Gauge

	// Per-application usage
	appUsage *prometheus.GaugeVec

	// Alert evaluation
	alerts *prometheus.CounterVec

	// Persistence
	persists *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "vigil_monitor_ticks_total",
			Help: "Total number of completed accounting ticks",
		}),

		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "vigil_monitor_tick_duration_seconds",
			Help:    "Duration of one accounting tick including snapshot capture",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to 2s
		}),

		snapshotSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vigil_monitor_snapshot_processes",
			Help: "Number of processes observed in the latest snapshot",
		}),

		trackedApps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vigil_monitor_tracked_applications",
			Help: "Number of applications currently tracked in the ledger",
		}),

		appUsage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vigil_usage_bytes",
			Help: "Accumulated disk I/O per application in bytes",
		}, []string{"app"}),

		alerts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_alerts_total",
			Help: "Total number of alert evaluations by result",
		}, []string{"result"}),

		persists: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_persists_total",
			Help: "Total number of ledger persistence attempts by result",
		}, []string{"result"}),
	}
}

// RecordTick records a completed accounting tick.
func (m *Metrics) RecordTick(duration time.Duration, processes int, trackedApps int) {
	m.ticks.Inc()
	m.tickDuration.Observe(duration.Seconds())
	m.snapshotSize.Set(float64(processes))
	m.trackedApps.Set(float64(trackedApps))
}

// UpdateUsage updates the usage gauge for one application.
func (m *Metrics) UpdateUsage(app string, totalBytes uint64) {
	m.appUsage.WithLabelValues(app).Set(float64(totalBytes))
}

// RecordAlert records the result of one alert evaluation.
func (m *Metrics) RecordAlert(result string) {
	m.alerts.WithLabelValues(result).Inc()
}

// RecordPersist records the result of one persistence attempt.
func (m *Metrics) RecordPersist(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.persists.WithLabelValues(result).Inc()
}
