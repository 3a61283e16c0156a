package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_turns_total",
			Help: "Total number of conversational turns by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "coach_turn_duration_seconds",
			Help: "Duration of a full conversational turn in seconds",
		},
		[]string{"intent"},
	)

	IntentFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_intent_fallbacks_total",
			Help: "Total number of keyword-fallback intent classifications",
		},
		[]string{"reason"},
	)

	AdvisorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_advisor_failures_total",
			Help: "Total number of advisor completion failures",
		},
		[]string{"advisor"},
	)
)
