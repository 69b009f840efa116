package aggregators

import (
	"log-analyzer/internal/shared/metrics"
)

// metricRecordsAggregatedTotal counts records folded into completed aggregates.
// Aborted passes are not counted.
var (
	metricRecordsAggregatedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregator,
			Name:      "records_total",
		},
	)
)
