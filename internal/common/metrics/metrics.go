// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoringRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_requests_total",
			Help: "Total number of scoring calls by domain and provenance",
		},
		[]string{"domain", "provenance"},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "scoring_duration_seconds",
			Help: "Duration of scoring calls in seconds",
		},
		[]string{"domain"},
	)

	RemoteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_remote_failures_total",
			Help: "Total number of remote scoring failures by reason",
		},
		[]string{"reason"},
	)

	CandidatesRanked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_candidates_ranked_total",
			Help: "Total number of candidates surfaced after threshold and truncation",
		},
		[]string{"domain"},
	)

	TrackingEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_events_dropped_total",
			Help: "Total number of exposure events dropped because the buffer was full",
		},
	)

	TrackingPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_publish_errors_total",
			Help: "Total number of exposure events whose sink publish failed",
		},
	)
)
