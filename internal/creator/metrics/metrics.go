package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ApplicationsSubmitted prometheus.Counter
	ApplicationsApproved  prometheus.Counter
	ApplicationsRejected  prometheus.Counter
	ResolveDuration       prometheus.Histogram
	LookupCacheHits       prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		ApplicationsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vedo_applications_submitted_total",
			Help: "Total number of creator applications submitted",
		}),
		ApplicationsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vedo_applications_approved_total",
			Help: "Total number of creator applications approved",
		}),
		ApplicationsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vedo_applications_rejected_total",
			Help: "Total number of creator applications rejected",
		}),
		ResolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vedo_lookup_resolve_duration_seconds",
			Help:    "Duration of public lookup resolution (portal critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		LookupCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vedo_lookup_cache_hits_total",
			Help: "Total number of public lookups served from cache",
		}),
	}
}

func (m *Metrics) IncrementSubmitted() { m.ApplicationsSubmitted.Inc() }
func (m *Metrics) IncrementApproved()  { m.ApplicationsApproved.Inc() }
func (m *Metrics) IncrementRejected()  { m.ApplicationsRejected.Inc() }
func (m *Metrics) IncrementCacheHit()  { m.LookupCacheHits.Inc() }

func (m *Metrics) ObserveResolve(start time.Time) {
	m.ResolveDuration.Observe(time.Since(start).Seconds())
}
