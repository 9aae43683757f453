package store

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kilianp07/ridership/core/runlog"
	"github.com/kilianp07/ridership/infra/logger"
)

// JSONLStore stores run records in a JSONL file with automatic rotation.
type JSONLStore struct {
	mu      sync.Mutex
	out     *lumberjack.Logger
	path    string
	log     logger.Logger
	skipped atomic.Uint64
}

// NewJSONLStore creates a store with rotation options in megabytes and days.
func NewJSONLStore(path string, maxSizeMB, maxBackups, maxAgeDays int) (*JSONLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	return &JSONLStore{out: lj, path: path, log: logger.New("jsonl-store")}, nil
}

// Append writes the record as one line and rotates the file if needed.
func (s *JSONLStore) Append(_ context.Context, rec runlog.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.out.Write(append(b, '\n'))
	return err
}

// Query reads the current file and every rotated backup.
func (s *JSONLStore) Query(ctx context.Context, q runlog.Query) ([]runlog.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	var res []runlog.Record
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := s.readRecords(f, q)
		if err != nil {
			return nil, err
		}
		res = append(res, recs...)
	}
	return q.Apply(res), nil
}

// files lists the backups, oldest first, followed by the current file.
// Backups are named <name>-<timestamp><ext> by lumberjack.
func (s *JSONLStore) files() ([]string, error) {
	ext := filepath.Ext(s.path)
	prefix := strings.TrimSuffix(s.path, ext)
	backups, err := filepath.Glob(prefix + "-*" + ext)
	if err != nil {
		return nil, err
	}
	slices.Sort(backups)
	if _, err := os.Stat(s.path); err == nil {
		backups = append(backups, s.path)
	}
	return backups, nil
}

// Skipped returns the number of unreadable lines met by queries so far.
// Every query rereads the files, so a corrupt line is counted once per query.
func (s *JSONLStore) Skipped() uint64 { return s.skipped.Load() }

// readRecords returns the records of path matching q. Lines that do not
// decode are skipped, counted and reported in one warning per file.
func (s *JSONLStore) readRecords(path string, q runlog.Query) ([]runlog.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var res []runlog.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	var (
		bad      int
		line     int
		firstBad int
		firstErr error
	)
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var r runlog.Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			if bad == 0 {
				firstBad, firstErr = line, err
			}
			bad++
			continue
		}
		if q.Match(r) {
			res = append(res, r)
		}
	}
	if bad > 0 {
		s.skipped.Add(uint64(bad))
		s.log.Warnf("skipped %d unreadable line(s) in %s, first at line %d: %v", bad, path, firstBad, firstErr)
	}
	return res, scanner.Err()
}

// Close closes the underlying writer.
func (s *JSONLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Close()
}
