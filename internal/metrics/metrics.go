// Package metrics provides Prometheus metrics for the meal plan API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mealplan"

var (
	// PlansTotal counts plan generations by preset and outcome.
	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_generated_total",
			Help:      "Total number of weekly plan generations",
		},
		[]string{"preset", "status"},
	)

	// PlanDuration measures end-to-end plan generation time.
	PlanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_duration_seconds",
			Help:      "Duration of weekly plan generation in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"preset"},
	)

	// DayRelErr observes the relative macro error of each generated day.
	DayRelErr = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "day_relative_error",
			Help:      "Relative macro error of generated days",
			Buckets:   []float64{.02, .05, .1, .15, .2, .25, .35, .5, 1},
		},
	)

	// InfeasibleTotal counts slots that could not be composed, by reason.
	InfeasibleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "infeasible_slots_total",
			Help:      "Total number of infeasible slot errors",
		},
		[]string{"slot", "reason"},
	)

	// PlanStoreErrors counts failed plan store operations.
	PlanStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_store_errors_total",
			Help:      "Total number of plan store errors",
		},
		[]string{"operation"},
	)

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of rate limited requests",
		},
	)
)

// RecordPlan records one generation attempt.
func RecordPlan(preset, status string, seconds float64) {
	PlansTotal.WithLabelValues(preset, status).Inc()
	PlanDuration.WithLabelValues(preset).Observe(seconds)
}

// RecordDay records the quality of one generated day.
func RecordDay(relErr float64) {
	DayRelErr.Observe(relErr)
}

// RecordInfeasible records an infeasible slot.
func RecordInfeasible(slot, reason string) {
	InfeasibleTotal.WithLabelValues(slot, reason).Inc()
}

// RecordStoreError records a plan store failure.
func RecordStoreError(operation string) {
	PlanStoreErrors.WithLabelValues(operation).Inc()
}
