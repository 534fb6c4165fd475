// Package observability tracks filter dimension usage for the stats endpoint.
package observability

import (
	"sort"
	"sync"
	"time"
)

// FilterStats tracks how often each filter dimension is used across dashboard
// requests, and how often requests come back empty.
type FilterStats struct {
	mu            sync.RWMutex
	dimensionFreq map[string]*DimensionStats
	requests      int64
	emptyResults  int64
	window        time.Duration
}

// DimensionStats holds usage statistics for a single filter dimension.
type DimensionStats struct {
	Dimension string    `json:"dimension"`
	Frequency int64     `json:"frequency"`
	LastSeen  time.Time `json:"last_seen"`
}

// NewFilterStats creates a new filter statistics tracker.
// window: time duration for pruning stale dimensions (e.g., 1 hour)
func NewFilterStats(window time.Duration) *FilterStats {
	return &FilterStats{
		dimensionFreq: make(map[string]*DimensionStats),
		window:        window,
	}
}

// RecordDimension records that a request constrained the named dimension.
// This method is O(1) and thread-safe.
func (f *FilterStats) RecordDimension(dimension string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats, exists := f.dimensionFreq[dimension]
	if !exists {
		stats = &DimensionStats{Dimension: dimension}
		f.dimensionFreq[dimension] = stats
	}

	stats.Frequency++
	stats.LastSeen = time.Now()
}

// RecordRequest counts one dashboard request, flagging empty results.
func (f *FilterStats) RecordRequest(empty bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests++
	if empty {
		f.emptyResults++
	}
}

// Requests returns the total request count and how many came back empty.
func (f *FilterStats) Requests() (total, empty int64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.requests, f.emptyResults
}

// TopDimensions returns the top N dimensions by frequency, descending.
// Returns copies, so callers cannot mutate the tracker's state.
func (f *FilterStats) TopDimensions(n int) []DimensionStats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n <= 0 || len(f.dimensionFreq) == 0 {
		return []DimensionStats{}
	}

	stats := make([]DimensionStats, 0, len(f.dimensionFreq))
	for _, s := range f.dimensionFreq {
		stats = append(stats, *s)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Frequency > stats[j].Frequency
	})

	if n > len(stats) {
		n = len(stats)
	}
	return stats[:n]
}

// Prune removes dimensions where time.Since(LastSeen) > window.
// This should be called periodically (e.g., every 5 minutes).
func (f *FilterStats) Prune() {
	f.mu.Lock()
	defer f.mu.Unlock()

	threshold := time.Now().Add(-f.window)
	for dim, stats := range f.dimensionFreq {
		if stats.LastSeen.Before(threshold) {
			delete(f.dimensionFreq, dim)
		}
	}
}
