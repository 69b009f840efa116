package reports

import (
	"cmp"
	"math"
	"slices"

	"log-analyzer/internal/models"

	"gonum.org/v1/gonum/floats"
)

// precision is the number of decimals kept in report figures.
const precision = 3

//go:generate mockgen -source=ranked_table_builder.go -destination=./mocks/ranked_table_builder_mock.go -package=mocks
type RankedTableBuilder interface {
	// Build ranks URLs by total duration, heaviest first, and returns at most limit rows.
	// URLs with equal totals keep the order in which they first appeared in the log.
	Build(agg *models.GlobalAggregate, limit int) []models.ReportRow
}

type rankedTableBuilder struct{}

func NewRankedTableBuilder() RankedTableBuilder {
	return &rankedTableBuilder{}
}

type rankedURL struct {
	url string
	agg models.URLAggregate
}

func (b *rankedTableBuilder) Build(agg *models.GlobalAggregate, limit int) []models.ReportRow {
	if agg == nil || limit <= 0 || agg.TotalCount() == 0 {
		return []models.ReportRow{}
	}

	ranked := make([]rankedURL, 0, agg.Len())
	for url, urlAgg := range agg.URLs() {
		ranked = append(ranked, rankedURL{url: url, agg: urlAgg})
	}
	slices.SortStableFunc(ranked, func(a, b rankedURL) int {
		return cmp.Compare(b.agg.DurationSum, a.agg.DurationSum)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	totalCount := float64(agg.TotalCount())
	totalSum := agg.TotalDurationSum()

	rows := make([]models.ReportRow, 0, len(ranked))
	for _, r := range ranked {
		count := float64(r.agg.Count)

		var timePerc float64
		if totalSum > 0 {
			timePerc = 100 * r.agg.DurationSum / totalSum
		}

		rows = append(rows, models.ReportRow{
			URL:        r.url,
			Count:      r.agg.Count,
			CountPerc:  round(100 * count / totalCount),
			TimeSum:    round(r.agg.DurationSum),
			TimePerc:   round(timePerc),
			TimeAvg:    round(r.agg.DurationSum / count),
			TimeMax:    round(floats.Max(r.agg.Durations)),
			TimeMedian: round(median(r.agg.Durations)),
		})
	}
	return rows
}

// median returns the middle value of values, averaging the two middle values for an
// even length. values is not modified. Zero for an empty slice.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func round(v float64) float64 {
	scale := math.Pow10(precision)
	return math.Round(v*scale) / scale
}
