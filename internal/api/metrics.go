package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"spendly/sms-extract/internal/models"
)

// Metrics holds the Prometheus collectors of the API.
type Metrics struct {
	requests       *prometheus.CounterVec
	messagesParsed *prometheus.CounterVec
	duration       prometheus.Histogram
}

// NewMetrics registers the API collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sms_parse_requests_total",
				Help: "Total number of API requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		messagesParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sms_messages_parsed_total",
				Help: "Total number of parsed messages by confidence",
			},
			[]string{"confidence"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sms_parse_duration_milliseconds",
				Help:    "API request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

// ObserveRequest records one handled request.
func (m *Metrics) ObserveRequest(endpoint, status string, elapsed time.Duration) {
	m.requests.WithLabelValues(endpoint, status).Inc()
	m.duration.Observe(float64(elapsed.Microseconds()) / 1000)
}

// ObserveParsed counts parse results by confidence.
func (m *Metrics) ObserveParsed(txs []models.ParsedTransaction) {
	for _, tx := range txs {
		m.messagesParsed.WithLabelValues(string(tx.Confidence)).Inc()
	}
}
