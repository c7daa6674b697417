package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the pipeline counters. A nil *Metrics records nothing.
type Metrics struct {
	submissions   *prometheus.CounterVec
	reviews       *prometheus.CounterVec
	uploadedBytes prometheus.Histogram
	presigns      *prometheus.CounterVec
}

// NewMetrics creates and registers the pipeline collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursedocs_submissions_total",
				Help: "Document submissions by outcome.",
			},
			[]string{"outcome"},
		),
		reviews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursedocs_reviews_total",
				Help: "Review decisions by resulting action and outcome.",
			},
			[]string{"action", "outcome"},
		),
		uploadedBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "coursedocs_upload_size_bytes",
			Help:    "Size of accepted uploads.",
			Buckets: prometheus.ExponentialBuckets(16*1024, 4, 8),
		}),
		presigns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursedocs_presigned_urls_total",
				Help: "Presigned URL requests by source (cache, store, error).",
			},
			[]string{"source"},
		),
	}
	for _, c := range []prometheus.Collector{m.submissions, m.reviews, m.uploadedBytes, m.presigns} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) uploaded(size int64) {
	if m == nil {
		return
	}
	m.uploadedBytes.Observe(float64(size))
}

func (m *Metrics) review(action, outcome string) {
	if m == nil {
		return
	}
	m.reviews.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) presign(source string) {
	if m == nil {
		return
	}
	m.presigns.WithLabelValues(source).Inc()
}
