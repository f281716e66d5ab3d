// Package observability provides statement statistics tracking for
// performance monitoring of the query engine.
package observability

import (
	"sort"
	"sync"
	"time"

	"github.com/spaolacci/murmur3"
)

// QueryStats tracks predicate column frequency and per-shape statement
// execution statistics. Shapes are statement texts with literals
// replaced by placeholders, keyed by their murmur3 fingerprint.
type QueryStats struct {
	mu            sync.RWMutex
	predicateFreq map[string]*ColumnStats
	statements    map[uint64]*StatementStats
	window        time.Duration
}

// ColumnStats holds statistics for a predicate column.
type ColumnStats struct {
	Column    string         `json:"column"`
	Frequency int64          `json:"frequency"`
	LastSeen  time.Time      `json:"last_seen"`
	Operators map[string]int `json:"operators"` // operator → count (e.g., "=" → 5)
}

// StatementStats holds execution statistics for one statement shape.
type StatementStats struct {
	Fingerprint uint64        `json:"fingerprint"`
	Shape       string        `json:"shape"`
	Count       int64         `json:"count"`
	Errors      int64         `json:"errors"`
	TotalTime   time.Duration `json:"total_time_ns"`
	LastSeen    time.Time     `json:"last_seen"`
}

// Fingerprint hashes a statement shape.
func Fingerprint(shape string) uint64 {
	return murmur3.Sum64([]byte(shape))
}

// NewQueryStats creates a new statistics tracker.
// window: retention duration for pruning old entries (e.g., 1 hour)
func NewQueryStats(window time.Duration) *QueryStats {
	return &QueryStats{
		predicateFreq: make(map[string]*ColumnStats),
		statements:    make(map[uint64]*StatementStats),
		window:        window,
	}
}

// RecordPredicate records a predicate access for a column.
// This method is O(1) and thread-safe.
func (q *QueryStats) RecordPredicate(column, operator string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	stats, exists := q.predicateFreq[column]
	if !exists {
		stats = &ColumnStats{
			Column:    column,
			Operators: make(map[string]int),
		}
		q.predicateFreq[column] = stats
	}

	stats.Frequency++
	stats.LastSeen = time.Now()
	stats.Operators[operator]++
}

// RecordStatement records one execution of a statement shape.
func (q *QueryStats) RecordStatement(shape string, elapsed time.Duration, failed bool) {
	fp := Fingerprint(shape)

	q.mu.Lock()
	defer q.mu.Unlock()

	stats, exists := q.statements[fp]
	if !exists {
		stats = &StatementStats{
			Fingerprint: fp,
			Shape:       shape,
		}
		q.statements[fp] = stats
	}

	stats.Count++
	if failed {
		stats.Errors++
	}
	stats.TotalTime += elapsed
	stats.LastSeen = time.Now()
}

// GetTopPredicates returns the top N predicate columns by frequency.
// Returns copies sorted by frequency (descending).
func (q *QueryStats) GetTopPredicates(n int) []ColumnStats {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if n <= 0 || len(q.predicateFreq) == 0 {
		return []ColumnStats{}
	}

	stats := make([]ColumnStats, 0, len(q.predicateFreq))
	for _, s := range q.predicateFreq {
		cp := ColumnStats{
			Column:    s.Column,
			Frequency: s.Frequency,
			LastSeen:  s.LastSeen,
			Operators: make(map[string]int),
		}
		for op, count := range s.Operators {
			cp.Operators[op] = count
		}
		stats = append(stats, cp)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Frequency > stats[j].Frequency
	})

	if n > len(stats) {
		n = len(stats)
	}
	return stats[:n]
}

// GetStatements returns a copy of all statement stats sorted by
// execution count (descending).
func (q *QueryStats) GetStatements() []StatementStats {
	q.mu.RLock()
	defer q.mu.RUnlock()

	stats := make([]StatementStats, 0, len(q.statements))
	for _, s := range q.statements {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Prune drops entries not seen within the retention window.
func (q *QueryStats) Prune(now time.Time) {
	if q.window <= 0 {
		return
	}
	cutoff := now.Add(-q.window)

	q.mu.Lock()
	defer q.mu.Unlock()

	for col, s := range q.predicateFreq {
		if s.LastSeen.Before(cutoff) {
			delete(q.predicateFreq, col)
		}
	}
	for fp, s := range q.statements {
		if s.LastSeen.Before(cutoff) {
			delete(q.statements, fp)
		}
	}
}
