package locators

import (
	"log-analyzer/internal/shared/metrics"
)

// metricEntriesSkippedTotal counts directory entries rejected while looking for a log file,
// labelled by reason (pattern_mismatch, invalid_date, is_directory,
// not_regular_file).
var (
	metricEntriesSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubLocator,
			Name:      "entries_skipped_total",
		},
		[]string{"reason"},
	)
)
