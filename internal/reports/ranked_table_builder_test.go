package reports

import (
	"fmt"
	"testing"

	"log-analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregateOf(records ...models.LogRecord) *models.GlobalAggregate {
	agg := models.NewGlobalAggregate()
	for _, record := range records {
		agg.Add(record, "")
	}
	return agg.Freeze()
}

func TestRankedTableBuilder_Build_WorkedExample(t *testing.T) {
	t.Parallel()

	agg := aggregateOf(
		models.LogRecord{URL: "/a", DurationSeconds: 1.0},
		models.LogRecord{URL: "/b", DurationSeconds: 2.0},
		models.LogRecord{URL: "/a", DurationSeconds: 3.0},
	)

	rows := NewRankedTableBuilder().Build(agg, 2)

	expected := []models.ReportRow{
		{URL: "/a", Count: 2, CountPerc: 66.667, TimeSum: 4, TimePerc: 66.667, TimeAvg: 2, TimeMax: 3, TimeMedian: 2},
		{URL: "/b", Count: 1, CountPerc: 33.333, TimeSum: 2, TimePerc: 33.333, TimeAvg: 2, TimeMax: 2, TimeMedian: 2},
	}
	assert.Equal(t, expected, rows)
	assert.Equal(t, expected, NewRankedTableBuilder().Build(agg, 10), "a limit above the URL count changes nothing")
}

func TestRankedTableBuilder_Build_TruncatesToLimit(t *testing.T) {
	t.Parallel()

	agg := aggregateOf(
		models.LogRecord{URL: "/a", DurationSeconds: 1.0},
		models.LogRecord{URL: "/b", DurationSeconds: 2.0},
		models.LogRecord{URL: "/a", DurationSeconds: 3.0},
	)

	rows := NewRankedTableBuilder().Build(agg, 1)

	require.Len(t, rows, 1)
	assert.Equal(t, "/a", rows[0].URL)
	assert.Equal(t, 66.667, rows[0].CountPerc, "percentages stay relative to the whole log")
}

func TestRankedTableBuilder_Build_NonPositiveLimit(t *testing.T) {
	t.Parallel()

	agg := aggregateOf(models.LogRecord{URL: "/a", DurationSeconds: 1.0})

	for _, limit := range []int{0, -1} {
		rows := NewRankedTableBuilder().Build(agg, limit)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	}
}

func TestRankedTableBuilder_Build_EmptyAggregate(t *testing.T) {
	t.Parallel()

	rows := NewRankedTableBuilder().Build(aggregateOf(), 1000)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	assert.Empty(t, NewRankedTableBuilder().Build(nil, 1000))
}

func TestRankedTableBuilder_Build_ZeroDurations(t *testing.T) {
	t.Parallel()

	agg := aggregateOf(
		models.LogRecord{URL: "/a", DurationSeconds: 0},
		models.LogRecord{URL: "/b", DurationSeconds: 0},
		models.LogRecord{URL: "/a", DurationSeconds: 0},
	)

	rows := NewRankedTableBuilder().Build(agg, 10)

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Zero(t, row.TimePerc, row.URL)
		assert.Zero(t, row.TimeSum, row.URL)
	}
	assert.Equal(t, 66.667, rows[0].CountPerc)
}

func TestRankedTableBuilder_Build_TiesKeepFirstAppearance(t *testing.T) {
	t.Parallel()

	agg := aggregateOf(
		models.LogRecord{URL: "/late", DurationSeconds: 0.5},
		models.LogRecord{URL: "/heavy", DurationSeconds: 9},
		models.LogRecord{URL: "/early", DurationSeconds: 1.0},
		models.LogRecord{URL: "/late", DurationSeconds: 0.5},
	)

	rows := NewRankedTableBuilder().Build(agg, 10)

	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		urls = append(urls, row.URL)
	}
	assert.Equal(t, []string{"/heavy", "/late", "/early"}, urls)
}

func TestRankedTableBuilder_Build_MedianAndMax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		durations []float64
		median    float64
		max       float64
	}{
		{name: "single", durations: []float64{0.7}, median: 0.7, max: 0.7},
		{name: "odd", durations: []float64{5, 1, 3}, median: 3, max: 5},
		{name: "even averages middle pair", durations: []float64{4, 1, 3, 2}, median: 2.5, max: 4},
		{name: "rounded", durations: []float64{0.1234, 0.5678}, median: 0.346, max: 0.568},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var records []models.LogRecord
			for _, d := range tt.durations {
				records = append(records, models.LogRecord{URL: "/u", DurationSeconds: d})
			}

			rows := NewRankedTableBuilder().Build(aggregateOf(records...), 1)

			require.Len(t, rows, 1)
			assert.Equal(t, tt.median, rows[0].TimeMedian)
			assert.Equal(t, tt.max, rows[0].TimeMax)
		})
	}
}

func TestRankedTableBuilder_Build_DoesNotReorderDurations(t *testing.T) {
	t.Parallel()

	agg := aggregateOf(
		models.LogRecord{URL: "/u", DurationSeconds: 3},
		models.LogRecord{URL: "/u", DurationSeconds: 1},
		models.LogRecord{URL: "/u", DurationSeconds: 2},
	)

	NewRankedTableBuilder().Build(agg, 1)

	urlAgg, ok := agg.Lookup("/u")
	require.True(t, ok)
	assert.Equal(t, []float64{3, 1, 2}, urlAgg.Durations)
}

func TestRankedTableBuilder_Build_Properties(t *testing.T) {
	t.Parallel()

	var records []models.LogRecord
	for i := range 500 {
		records = append(records, models.LogRecord{
			URL:             fmt.Sprintf("/api/%d", i%37),
			DurationSeconds: float64((i*7919)%101) / 10,
		})
	}
	agg := aggregateOf(records...)
	builder := NewRankedTableBuilder()

	full := builder.Build(agg, agg.Len())
	require.Len(t, full, agg.Len())

	var countPerc, timePerc float64
	for i, row := range full {
		if i > 0 {
			assert.GreaterOrEqual(t, full[i-1].TimeSum, row.TimeSum)
		}
		assert.GreaterOrEqual(t, row.TimeMax, row.TimeMedian)
		assert.GreaterOrEqual(t, row.TimeMax, row.TimeAvg)
		countPerc += row.CountPerc
		timePerc += row.TimePerc
	}
	assert.InDelta(t, 100, countPerc, 0.001*float64(len(full)))
	assert.InDelta(t, 100, timePerc, 0.001*float64(len(full)))

	for _, limit := range []int{1, 5, 20, 1000} {
		prefix := builder.Build(agg, limit)
		assert.Equal(t, full[:min(limit, len(full))], prefix, "limit %d", limit)
	}
}
