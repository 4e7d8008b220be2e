package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// submissions counts POST /api/suggestions by outcome (ok or error code).
	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skrive",
		Subsystem: "server",
		Name:      "submissions_total",
		Help:      "Total suggestion submissions by outcome",
	}, []string{"outcome"})

	// submissionDuration measures completion plus parsing.
	submissionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skrive",
		Subsystem: "server",
		Name:      "submission_duration_seconds",
		Help:      "Time to complete and parse a submission",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"outcome"})

	// suggestionsPerResult tracks how many suggestions each parsed result holds.
	suggestionsPerResult = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "skrive",
		Subsystem: "server",
		Name:      "suggestions_per_result",
		Help:      "Number of suggestions in each parsed result",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})

	// appliedSuggestions counts suggestions handled by POST /api/apply.
	// Labels: decision (accepted, declined, skipped)
	appliedSuggestions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skrive",
		Subsystem: "server",
		Name:      "applied_suggestions_total",
		Help:      "Suggestions handled by apply requests by decision",
	}, []string{"decision"})
)

func recordSubmission(outcome string, start time.Time, suggestions int) {
	submissions.WithLabelValues(outcome).Inc()
	submissionDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if outcome == "ok" {
		suggestionsPerResult.Observe(float64(suggestions))
	}
}

func recordApply(accepted, declined, skipped int) {
	appliedSuggestions.WithLabelValues("accepted").Add(float64(accepted))
	appliedSuggestions.WithLabelValues("declined").Add(float64(declined))
	appliedSuggestions.WithLabelValues("skipped").Add(float64(skipped))
}
