package geogo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	// duration is the total time taken, err is nil if successful.
	RecordInsert(duration time.Duration, err error)

	// RecordBulkInsert is called after each bulk insert operation.
	// count is the number of items inserted.
	RecordBulkInsert(count int, duration time.Duration)

	// RecordSearch is called after each search operation.
	// k is the number of neighbors requested, duration is the time taken,
	// err is nil if successful.
	RecordSearch(k int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)      {}
func (NoopMetricsCollector) RecordBulkInsert(int, time.Duration)    {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	BulkInsertCount  atomic.Int64
	BulkInsertItems  atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordBulkInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBulkInsert(count int, duration time.Duration) {
	b.BulkInsertCount.Add(1)
	b.BulkInsertItems.Add(int64(count))
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:     b.InsertCount.Load(),
		InsertErrors:    b.InsertErrors.Load(),
		InsertAvgNanos:  b.getAvgInsertNanos(),
		BulkInsertCount: b.BulkInsertCount.Load(),
		BulkInsertItems: b.BulkInsertItems.Load(),
		SearchCount:     b.SearchCount.Load(),
		SearchErrors:    b.SearchErrors.Load(),
		SearchAvgNanos:  b.getAvgSearchNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount     int64
	InsertErrors    int64
	InsertAvgNanos  int64
	BulkInsertCount int64
	BulkInsertItems int64
	SearchCount     int64
	SearchErrors    int64
	SearchAvgNanos  int64
}
