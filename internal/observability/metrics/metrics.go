package metrics

import "github.com/prometheus/client_golang/prometheus"

// ContactMetrics exposes counters/histograms for the contact pipeline.
type ContactMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	dispatchLatency    prometheus.Histogram
}

func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	m := &ContactMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Total contact form submissions by outcome",
		}, []string{"outcome"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Subsystem: "contact",
			Name:      "notifications_total",
			Help:      "Total notification emails by recipient and status",
		}, []string{"recipient", "status"}),
		dispatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lostfound",
			Subsystem: "contact",
			Name:      "dispatch_latency_seconds",
			Help:      "Latency of the dual-email dispatch",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.notificationsTotal, m.dispatchLatency)
	return m
}

func (m *ContactMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *ContactMetrics) ObserveNotification(recipient string, sent bool) {
	if m == nil {
		return
	}
	status := "failed"
	if sent {
		status = "sent"
	}
	m.notificationsTotal.WithLabelValues(recipient, status).Inc()
}

func (m *ContactMetrics) ObserveDispatchLatency(seconds float64) {
	if m == nil {
		return
	}
	m.dispatchLatency.Observe(seconds)
}
