package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alvmarrod/wiki-hops/internal/search"
	"github.com/alvmarrod/wiki-hops/internal/storage"
)

// Tracker holds and manages search metrics.
// It implements search.Observer.
type Tracker struct {
	mu               sync.Mutex
	data             storage.Metrics
	totalFetchTimeMs int64
	fetchCount       int
}

// NewTracker creates a new metrics tracker
func NewTracker() *Tracker {
	return &Tracker{
		data: storage.Metrics{
			StartTime: time.Now(),
		},
	}
}

// RecordAttempt counts one fetch attempt and its duration.
// Its signature matches fetcher.AttemptFunc.
func (t *Tracker) RecordAttempt(_ string, _ int, elapsed time.Duration, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.data.PagesFailed++
	} else {
		t.data.PagesFetched++
	}
	t.totalFetchTimeMs += elapsed.Milliseconds()
	t.fetchCount++
}

// HopCompleted records the latest hop statistics
func (t *Tracker) HopCompleted(stats search.HopStats) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data.HopsCompleted = stats.Hop
	t.data.URLsSeen = stats.Seen
	t.data.FrontierSize = stats.NextFrontier
}

// RecordResult stores the final outcome of the search
func (t *Tracker) RecordResult(res search.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data.URLsSeen = res.Explored
	t.data.PathHops = res.Hops()
}

// GetSnapshot returns a copy of current metrics
func (t *Tracker) GetSnapshot() storage.Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := t.data
	snapshot.TotalFetchTimeMs = t.totalFetchTimeMs

	// Calculate average fetch time
	if t.fetchCount > 0 {
		snapshot.AvgFetchTimeMs = t.totalFetchTimeMs / int64(t.fetchCount)
	}

	return snapshot
}

// WriteToFile exports metrics to a JSON file
func (t *Tracker) WriteToFile(path, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Finalize metrics
	t.data.EndTime = time.Now()
	t.data.TerminationReason = reason
	t.data.TotalFetchTimeMs = t.totalFetchTimeMs

	if t.fetchCount > 0 {
		t.data.AvgFetchTimeMs = t.totalFetchTimeMs / int64(t.fetchCount)
	}

	jsonData, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	return nil
}

// LogProgress formats current metrics as a single log line
func (t *Tracker) LogProgress() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fmt.Sprintf("Hops: %d | URLs: %d seen, %d queued | Pages: %d fetched, %d failed",
		t.data.HopsCompleted,
		t.data.URLsSeen,
		t.data.FrontierSize,
		t.data.PagesFetched,
		t.data.PagesFailed,
	)
}
