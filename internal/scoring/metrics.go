package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verdict label values.
const (
	labelGenuine    = "genuine"
	labelSuspicious = "suspicious"
)

// Metrics holds the scoring pipeline collectors.
type Metrics struct {
	scored          *prometheus.CounterVec
	rejected        prometheus.Counter
	unknownCategory prometheus.Counter
	duration        prometheus.Histogram
}

// NewMetrics registers the pipeline collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		scored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trust_reviews_scored_total",
				Help: "Reviews scored, by verdict",
			},
			[]string{"verdict"},
		),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "trust_relevance_rejections_total",
			Help: "Reviews rejected by the relevance filter",
		}),
		unknownCategory: factory.NewCounter(prometheus.CounterOpts{
			Name: "trust_unknown_category_total",
			Help: "Scoring passes for products whose category has no policy entry",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "trust_scoring_duration_seconds",
			Help:    "Duration of a complete scoring pass",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) observe(verdicts []verdictOutcome) {
	for _, v := range verdicts {
		label := labelGenuine
		if v.suspicious {
			label = labelSuspicious
		}
		m.scored.WithLabelValues(label).Inc()
		if v.rejected {
			m.rejected.Inc()
		}
	}
}

type verdictOutcome struct {
	suspicious bool
	rejected   bool
}
