package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the form counters exposed on /metrics.
type Metrics struct {
	SubmissionsTotal  *prometheus.CounterVec
	FieldChangesTotal prometheus.Counter
	ResetsTotal       prometheus.Counter
	ThemeTogglesTotal prometheus.Counter
}

// NewMetrics registers the counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "formstate",
				Name:      "submissions_total",
				Help:      "Submit attempts by outcome",
			},
			[]string{"result"},
		),
		FieldChangesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "formstate",
				Name:      "field_changes_total",
				Help:      "Accepted field change events",
			},
		),
		ResetsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "formstate",
				Name:      "resets_total",
				Help:      "Form resets",
			},
		),
		ThemeTogglesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "formstate",
				Name:      "theme_toggles_total",
				Help:      "Dark mode toggles",
			},
		),
	}
}
