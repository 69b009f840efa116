package analyzers

import (
	"log-analyzer/internal/shared/metrics"
)

const fieldStatus = "status"

var (
	// metricRunsTotal counts analysis runs by outcome. Failed runs carry an empty status.
	metricRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "runs_total",
		},
		[]string{fieldStatus, metrics.FieldErrorCode},
	)

	metricDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "duration_seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{fieldStatus},
	)
)
