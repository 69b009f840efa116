package aggregators

import (
	"context"
	"fmt"
	"iter"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/loggers"
)

//go:generate mockgen -source=stats_aggregator.go -destination=./mocks/stats_aggregator_mock.go -package=mocks
type StatsAggregator interface {
	// Aggregate drains records in one forward pass and returns the frozen aggregate.
	// An error yielded by records aborts the pass and is returned wrapped in ErrAggregationAborted.
	Aggregate(ctx context.Context, records iter.Seq2[models.LogRecord, error]) (*models.GlobalAggregate, error)
}

type statsAggregator struct {
	normalizer *userAgentNormalizer
}

func NewStatsAggregator() StatsAggregator {
	return &statsAggregator{normalizer: newUserAgentNormalizer(maxCachedUserAgents)}
}

func (a *statsAggregator) Aggregate(ctx context.Context, records iter.Seq2[models.LogRecord, error]) (*models.GlobalAggregate, error) {
	logger := loggers.Ctx(ctx)

	agg := models.NewGlobalAggregate()
	for record, err := range records {
		if err != nil {
			return nil, fmt.Errorf("%w after %d records: %w", ErrAggregationAborted, agg.TotalCount(), err)
		}
		agg.Add(record, a.normalizer.family(record.UserAgent))
	}

	metricRecordsAggregatedTotal.Add(float64(agg.TotalCount()))
	logger.Debug().
		Int64("records", agg.TotalCount()).
		Int("urls", agg.Len()).
		Msg("aggregation completed")

	return agg.Freeze(), nil
}
