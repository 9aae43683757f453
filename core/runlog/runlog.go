// Package runlog defines the persisted history of Monte Carlo runs.
package runlog

import (
	"context"
	"slices"
	"time"

	"github.com/kilianp07/ridership/core/metrics"
)

// Record captures one completed run.
type Record struct {
	RunID     string             `json:"run_id"`
	Timestamp time.Time          `json:"timestamp"`
	Scenario  string             `json:"scenario"`
	Summary   metrics.RunSummary `json:"summary"`
	// Outcomes holds the daily rider totals of every trial when the store
	// is configured to keep them.
	Outcomes []float64 `json:"outcomes,omitempty"`
}

// Query defines filters for retrieving records. Zero values match everything.
// Limit keeps only the most recent matching records.
type Query struct {
	Scenario string
	Start    time.Time
	End      time.Time
	Limit    int
}

// Match reports whether r satisfies the scenario and time filters of q.
func (q Query) Match(r Record) bool {
	if q.Scenario != "" && r.Scenario != q.Scenario {
		return false
	}
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	return true
}

// Apply sorts records oldest first and trims them to the limit of q.
func (q Query) Apply(recs []Record) []Record {
	slices.SortStableFunc(recs, func(a, b Record) int { return a.Timestamp.Compare(b.Timestamp) })
	if q.Limit > 0 && len(recs) > q.Limit {
		recs = recs[len(recs)-q.Limit:]
	}
	return recs
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NewRecord builds a record from a run summary.
func NewRecord(s metrics.RunSummary, outcomes []float64) Record {
	ts := s.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return Record{RunID: s.RunID, Timestamp: ts, Scenario: s.Scenario, Summary: s, Outcomes: outcomes}
}
