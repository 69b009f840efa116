package parsers

import (
	"log-analyzer/internal/shared/metrics"
)

const (
	resultParsed    = "parsed"
	resultMalformed = "malformed"
)

var (
	metricLinesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParser,
			Name:      "lines_total",
		},
		[]string{"result"},
	)
)
