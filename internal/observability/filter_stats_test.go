package observability

import (
	"sync"
	"testing"
	"time"
)

// TestRecordDimensionConcurrent tests concurrent RecordDimension calls for race conditions.
func TestRecordDimensionConcurrent(t *testing.T) {
	fs := NewFilterStats(1 * time.Hour)
	var wg sync.WaitGroup
	numGoroutines := 10
	recordsPerGoroutine := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < recordsPerGoroutine; j++ {
				fs.RecordDimension("brand")
				fs.RecordDimension("price_range")
				fs.RecordDimension("city")
			}
		}()
	}

	wg.Wait()

	top := fs.TopDimensions(10)
	if len(top) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(top))
	}

	expectedFreq := int64(numGoroutines * recordsPerGoroutine)
	for _, stat := range top {
		if stat.Frequency != expectedFreq {
			t.Errorf("expected frequency %d for %s, got %d", expectedFreq, stat.Dimension, stat.Frequency)
		}
	}
}

// TestTopDimensionsOrdering tests that TopDimensions returns results sorted by frequency.
func TestTopDimensionsOrdering(t *testing.T) {
	fs := NewFilterStats(1 * time.Hour)

	for i := 0; i < 10; i++ {
		fs.RecordDimension("brand")
	}
	for i := 0; i < 5; i++ {
		fs.RecordDimension("city")
	}
	for i := 0; i < 20; i++ {
		fs.RecordDimension("price_range")
	}

	top := fs.TopDimensions(3)
	if len(top) != 3 {
		t.Fatalf("expected 3 dimensions, got %d", len(top))
	}

	if top[0].Dimension != "price_range" || top[0].Frequency != 20 {
		t.Errorf("expected price_range with frequency 20, got %s with %d", top[0].Dimension, top[0].Frequency)
	}
	if top[1].Dimension != "brand" || top[1].Frequency != 10 {
		t.Errorf("expected brand with frequency 10, got %s with %d", top[1].Dimension, top[1].Frequency)
	}
	if top[2].Dimension != "city" || top[2].Frequency != 5 {
		t.Errorf("expected city with frequency 5, got %s with %d", top[2].Dimension, top[2].Frequency)
	}
}

// TestTopDimensionsTruncation tests the n parameter bounds.
func TestTopDimensionsTruncation(t *testing.T) {
	fs := NewFilterStats(1 * time.Hour)
	fs.RecordDimension("brand")
	fs.RecordDimension("city")

	if got := fs.TopDimensions(1); len(got) != 1 {
		t.Errorf("expected 1 dimension, got %d", len(got))
	}
	if got := fs.TopDimensions(0); len(got) != 0 {
		t.Errorf("expected 0 dimensions for n=0, got %d", len(got))
	}
	if got := fs.TopDimensions(10); len(got) != 2 {
		t.Errorf("expected 2 dimensions for oversized n, got %d", len(got))
	}
}

// TestRecordRequest tests request and empty-result counting.
func TestRecordRequest(t *testing.T) {
	fs := NewFilterStats(1 * time.Hour)

	fs.RecordRequest(false)
	fs.RecordRequest(true)
	fs.RecordRequest(false)

	total, empty := fs.Requests()
	if total != 3 {
		t.Errorf("expected 3 requests, got %d", total)
	}
	if empty != 1 {
		t.Errorf("expected 1 empty result, got %d", empty)
	}
}

// TestPruneRemovesStaleDimensions tests that Prune removes dimensions older than the window.
func TestPruneRemovesStaleDimensions(t *testing.T) {
	window := 50 * time.Millisecond
	fs := NewFilterStats(window)

	fs.RecordDimension("brand")
	time.Sleep(2 * window)
	fs.RecordDimension("city")

	fs.Prune()

	top := fs.TopDimensions(10)
	if len(top) != 1 {
		t.Fatalf("expected 1 dimension after prune, got %d", len(top))
	}
	if top[0].Dimension != "city" {
		t.Errorf("expected city to survive prune, got %s", top[0].Dimension)
	}
}
