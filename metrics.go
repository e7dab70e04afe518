package subspace

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting construction metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Implementations must be safe for concurrent use: Build records leaves and
// merges from several goroutines.
type MetricsCollector interface {
	// RecordLeaf is called after each leaf construction.
	// count is the number of points summarized, rank the number of
	// retained eigenpairs, err is nil if successful.
	RecordLeaf(count, rank int, duration time.Duration, err error)

	// RecordMerge is called after each merge construction.
	// nullRank is the size of the leftside null-space basis.
	RecordMerge(count, rank, nullRank int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLeaf(int, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordMerge(int, int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LeafCount       atomic.Int64
	LeafErrors      atomic.Int64
	LeafPoints      atomic.Int64
	LeafRankSum     atomic.Int64
	LeafTotalNanos  atomic.Int64
	MergeCount      atomic.Int64
	MergeErrors     atomic.Int64
	MergeRankSum    atomic.Int64
	NullRankSum     atomic.Int64
	EmptyNullSpaces atomic.Int64
	MergeTotalNanos atomic.Int64
}

// RecordLeaf implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLeaf(count, rank int, duration time.Duration, err error) {
	b.LeafCount.Add(1)
	b.LeafTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LeafErrors.Add(1)
		return
	}
	b.LeafPoints.Add(int64(count))
	b.LeafRankSum.Add(int64(rank))
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(count, rank, nullRank int, duration time.Duration, err error) {
	b.MergeCount.Add(1)
	b.MergeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MergeErrors.Add(1)
		return
	}
	b.MergeRankSum.Add(int64(rank))
	b.NullRankSum.Add(int64(nullRank))
	if nullRank == 0 {
		b.EmptyNullSpaces.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	leaves := b.LeafCount.Load()
	merges := b.MergeCount.Load()

	return BasicMetricsStats{
		LeafCount:       leaves,
		LeafErrors:      b.LeafErrors.Load(),
		LeafPoints:      b.LeafPoints.Load(),
		LeafAvgRank:     ratio(b.LeafRankSum.Load(), leaves-b.LeafErrors.Load()),
		LeafAvgNanos:    avg(b.LeafTotalNanos.Load(), leaves),
		MergeCount:      merges,
		MergeErrors:     b.MergeErrors.Load(),
		MergeAvgRank:    ratio(b.MergeRankSum.Load(), merges-b.MergeErrors.Load()),
		NullAvgRank:     ratio(b.NullRankSum.Load(), merges-b.MergeErrors.Load()),
		EmptyNullSpaces: b.EmptyNullSpaces.Load(),
		MergeAvgNanos:   avg(b.MergeTotalNanos.Load(), merges),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

func ratio(total, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LeafCount       int64
	LeafErrors      int64
	LeafPoints      int64
	LeafAvgRank     float64
	LeafAvgNanos    int64
	MergeCount      int64
	MergeErrors     int64
	MergeAvgRank    float64
	NullAvgRank     float64
	EmptyNullSpaces int64
	MergeAvgNanos   int64
}
