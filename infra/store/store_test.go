package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/core/montecarlo"
	"github.com/kilianp07/ridership/core/runlog"
)

func record(id, scenario string, ts time.Time, outcomes []float64) runlog.Record {
	return runlog.NewRecord(metrics.RunSummary{
		RunID:    id,
		Scenario: scenario,
		Time:     ts,
		Interval: montecarlo.Interval{Lower: 1, Mean: 2, Upper: 3},
	}, outcomes)
}

func exerciseStore(t *testing.T, s runlog.Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Unix(1700000000, 0)
	require.NoError(t, s.Append(ctx, record("a", "sunny", base, []float64{1, 2})))
	require.NoError(t, s.Append(ctx, record("b", "rain", base.Add(time.Minute), nil)))
	require.NoError(t, s.Append(ctx, record("c", "sunny", base.Add(2*time.Minute), nil)))

	all, err := s.Query(ctx, runlog.Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].RunID)
	assert.Equal(t, []float64{1, 2}, all[0].Outcomes)
	assert.Equal(t, 2.0, all[0].Summary.Interval.Mean)

	sunny, err := s.Query(ctx, runlog.Query{Scenario: "sunny"})
	require.NoError(t, err)
	require.Len(t, sunny, 2)
	assert.Equal(t, "c", sunny[1].RunID)

	since, err := s.Query(ctx, runlog.Query{Start: base.Add(30 * time.Second)})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	last, err := s.Query(ctx, runlog.Query{Limit: 1})
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "c", last[0].RunID)
}

func TestJSONLStore_PersistQuery(t *testing.T) {
	s, err := NewJSONLStore(filepath.Join(t.TempDir(), "runs", "runs.jsonl"), 10, 0, 0)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	exerciseStore(t, s)
}

func TestJSONLStore_QueryEmpty(t *testing.T) {
	s, err := NewJSONLStore(filepath.Join(t.TempDir(), "runs.jsonl"), 1, 0, 0)
	require.NoError(t, err)
	out, err := s.Query(context.Background(), runlog.Query{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestJSONLStore_CountsUnreadableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	s, err := NewJSONLStore(path, 10, 0, 0)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	require.NoError(t, s.Append(ctx, record("a", "sunny", base, nil)))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{\"run_id\": \"trunc\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, s.Append(ctx, record("b", "sunny", base.Add(time.Minute), nil)))

	out, err := s.Query(ctx, runlog.Query{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].RunID)
	assert.Equal(t, "b", out[1].RunID)
	assert.Equal(t, uint64(1), s.Skipped())
}

func TestJSONLStore_RotationQuery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.jsonl")
	s, err := NewJSONLStore(path, 1, 0, 0)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	outcomes := make([]float64, 5000)
	for i := range outcomes {
		outcomes[i] = 1234.5
	}
	base := time.Unix(1700000000, 0)
	for i := 0; i < 100; i++ {
		rec := record(fmt.Sprintf("r%03d", i), "s", base.Add(time.Duration(i)*time.Second), outcomes)
		require.NoError(t, s.Append(context.Background(), rec))
		// backups are named with millisecond resolution
		time.Sleep(2 * time.Millisecond)
	}
	backups, _ := filepath.Glob(filepath.Join(dir, "runs-*.jsonl"))
	assert.NotEmpty(t, backups, "expected rotated files")

	out, err := s.Query(context.Background(), runlog.Query{})
	require.NoError(t, err)
	require.Len(t, out, 100)
	assert.Equal(t, "r000", out[0].RunID)
	assert.Equal(t, "r099", out[99].RunID)
}

func TestSQLiteStore_PersistQuery(t *testing.T) {
	s, err := NewSQLiteStore("file:runs_test.db?mode=memory&cache=shared")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	exerciseStore(t, s)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		cfg  Config
		want any
	}{
		{Config{Backend: "jsonl", Path: filepath.Join(dir, "a.jsonl")}, &JSONLStore{}},
		{Config{Backend: "sqlite", Path: filepath.Join(dir, "a.db")}, &SQLiteStore{}},
		{Config{Backend: "none"}, NopStore{}},
	}
	for _, c := range cases {
		s, err := New(c.cfg)
		require.NoError(t, err)
		assert.IsType(t, c.want, s)
		assert.NoError(t, s.Close())
	}
	_, err := New(Config{Backend: "redis"})
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.Equal(t, "jsonl", c.Backend)
	assert.Equal(t, "runs.jsonl", c.Path)
	assert.NoError(t, c.Validate())

	c = Config{Backend: "sqlite"}
	c.SetDefaults()
	assert.Equal(t, "runs.db", c.Path)

	assert.Error(t, Config{Backend: "mongo", Path: "x"}.Validate())
}
