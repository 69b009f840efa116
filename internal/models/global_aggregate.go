package models

import (
	"iter"
	"maps"
)

// URLAggregate holds the running statistics of a single URL.
type URLAggregate struct {
	Count       int64
	DurationSum float64
	// Durations keeps every observed duration in file order.
	Durations []float64
}

// GlobalAggregate accumulates per-URL and global statistics for one log snapshot.
//
// It is mutated only through Add while being built. Freeze hands it over as a
// read-only value: any later Add panics. The totals always equal the sums over
// the per-URL aggregates.
type GlobalAggregate struct {
	totalCount          int64
	totalDurationSum    float64
	perURL              map[string]*URLAggregate
	order               []string
	requestsByUserAgent map[string]int64
	frozen              bool
}

func NewGlobalAggregate() *GlobalAggregate {
	return &GlobalAggregate{
		perURL:              make(map[string]*URLAggregate),
		requestsByUserAgent: make(map[string]int64),
	}
}

// Add folds one record into the aggregate. userAgentFamily may be empty.
func (a *GlobalAggregate) Add(record LogRecord, userAgentFamily string) {
	if a.frozen {
		panic("models: Add on a frozen GlobalAggregate")
	}

	urlAgg, exists := a.perURL[record.URL]
	if !exists {
		urlAgg = &URLAggregate{}
		a.perURL[record.URL] = urlAgg
		a.order = append(a.order, record.URL)
	}
	urlAgg.Count++
	urlAgg.DurationSum += record.DurationSeconds
	urlAgg.Durations = append(urlAgg.Durations, record.DurationSeconds)

	a.totalCount++
	a.totalDurationSum += record.DurationSeconds

	if userAgentFamily != "" {
		a.requestsByUserAgent[userAgentFamily]++
	}
}

// Freeze seals the aggregate and returns it.
func (a *GlobalAggregate) Freeze() *GlobalAggregate {
	a.frozen = true
	return a
}

func (a *GlobalAggregate) IsFrozen() bool { return a.frozen }

func (a *GlobalAggregate) TotalCount() int64 { return a.totalCount }

func (a *GlobalAggregate) TotalDurationSum() float64 { return a.totalDurationSum }

// Len returns the number of distinct URLs.
func (a *GlobalAggregate) Len() int { return len(a.order) }

// URLs iterates the per-URL aggregates in order of first appearance.
// The yielded Durations slice is shared and must not be modified.
func (a *GlobalAggregate) URLs() iter.Seq2[string, URLAggregate] {
	return func(yield func(string, URLAggregate) bool) {
		for _, url := range a.order {
			if !yield(url, *a.perURL[url]) {
				return
			}
		}
	}
}

// Lookup returns the aggregate of url, if present.
func (a *GlobalAggregate) Lookup(url string) (URLAggregate, bool) {
	urlAgg, ok := a.perURL[url]
	if !ok {
		return URLAggregate{}, false
	}
	return *urlAgg, true
}

// RequestsByUserAgent returns a copy of the request counts per user-agent family.
func (a *GlobalAggregate) RequestsByUserAgent() map[string]int64 {
	return maps.Clone(a.requestsByUserAgent)
}
