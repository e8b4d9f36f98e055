package metrics

import "github.com/prometheus/client_golang/prometheus"

// ContactMetrics exposes counters/histograms for contact form submissions.
type ContactMetrics struct {
	submissionsTotal *prometheus.CounterVec
	deliveryLatency  *prometheus.HistogramVec
}

// Outcome labels recorded by ObserveSubmission.
const (
	OutcomeDelivered     = "delivered"
	OutcomeInvalid       = "invalid"
	OutcomeNotConfigured = "not_configured"
	OutcomeSendFailed    = "send_failed"
	OutcomeError         = "error"
	OutcomeRejected      = "method_not_allowed"
)

func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	m := &ContactMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Total contact form submissions by outcome",
		}, []string{"outcome"}),
		deliveryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lms",
			Subsystem: "contact",
			Name:      "delivery_latency_seconds",
			Help:      "Latency of the outbound email provider call",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.deliveryLatency)
	return m
}

func (m *ContactMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *ContactMetrics) ObserveDelivery(ok bool, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.deliveryLatency.WithLabelValues(status).Observe(seconds)
}
