package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalAggregate_Add(t *testing.T) {
	t.Parallel()

	agg := NewGlobalAggregate()
	agg.Add(LogRecord{URL: "/a", DurationSeconds: 1.0}, "Chrome")
	agg.Add(LogRecord{URL: "/b", DurationSeconds: 2.0}, "curl")
	agg.Add(LogRecord{URL: "/a", DurationSeconds: 3.0}, "Chrome")

	assert.Equal(t, int64(3), agg.TotalCount())
	assert.InDelta(t, 6.0, agg.TotalDurationSum(), 1e-9)
	assert.Equal(t, 2, agg.Len())

	a, ok := agg.Lookup("/a")
	require.True(t, ok)
	assert.Equal(t, int64(2), a.Count)
	assert.InDelta(t, 4.0, a.DurationSum, 1e-9)
	assert.Equal(t, []float64{1.0, 3.0}, a.Durations, "durations keep file order")

	_, ok = agg.Lookup("/missing")
	assert.False(t, ok)

	assert.Equal(t, map[string]int64{"Chrome": 2, "curl": 1}, agg.RequestsByUserAgent())
}

func TestGlobalAggregate_URLsInFirstSeenOrder(t *testing.T) {
	t.Parallel()

	agg := NewGlobalAggregate()
	for _, url := range []string{"/c", "/a", "/c", "/b", "/a"} {
		agg.Add(LogRecord{URL: url, DurationSeconds: 0.1}, "")
	}

	var urls []string
	for url := range agg.URLs() {
		urls = append(urls, url)
	}
	assert.Equal(t, []string{"/c", "/a", "/b"}, urls)

	// early break stops the iteration
	var first []string
	for url := range agg.URLs() {
		first = append(first, url)
		break
	}
	assert.Equal(t, []string{"/c"}, first)
}

func TestGlobalAggregate_TotalsMatchPerURLSums(t *testing.T) {
	t.Parallel()

	agg := NewGlobalAggregate()
	durations := []float64{0.39, 0.133, 0.199, 0.704, 0.146, 0.628, 0.067}
	urls := []string{"/api/v2/banner/25019354", "/api/1/photogenic_banners/list/?server_name=WIN7RB4", "/api/v2/banner/16852664"}
	for i, d := range durations {
		agg.Add(LogRecord{URL: urls[i%len(urls)], DurationSeconds: d}, "")
	}

	var count int64
	var sum float64
	for _, urlAgg := range agg.URLs() {
		count += urlAgg.Count
		sum += urlAgg.DurationSum
	}
	assert.Equal(t, agg.TotalCount(), count)
	assert.InDelta(t, agg.TotalDurationSum(), sum, 1e-9)
}

func TestGlobalAggregate_EmptyUserAgentNotCounted(t *testing.T) {
	t.Parallel()

	agg := NewGlobalAggregate()
	agg.Add(LogRecord{URL: "/", DurationSeconds: 0.5}, "")

	assert.Empty(t, agg.RequestsByUserAgent())
}

func TestGlobalAggregate_Freeze(t *testing.T) {
	t.Parallel()

	agg := NewGlobalAggregate()
	agg.Add(LogRecord{URL: "/", DurationSeconds: 0.5}, "")
	frozen := agg.Freeze()

	assert.Same(t, agg, frozen)
	assert.True(t, frozen.IsFrozen())
	assert.Panics(t, func() {
		frozen.Add(LogRecord{URL: "/", DurationSeconds: 0.5}, "")
	}, "Add should panic on a frozen aggregate")
	assert.Equal(t, int64(1), frozen.TotalCount())
}

func TestGlobalAggregate_RequestsByUserAgentIsCopy(t *testing.T) {
	t.Parallel()

	agg := NewGlobalAggregate()
	agg.Add(LogRecord{URL: "/", DurationSeconds: 0.5}, "Firefox")

	counts := agg.RequestsByUserAgent()
	counts["Firefox"] = 100

	assert.Equal(t, int64(1), agg.RequestsByUserAgent()["Firefox"])
}
