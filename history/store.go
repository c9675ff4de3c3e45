// Package history keeps past run reports in a local bolt database so
// reviewers can compare a plan round against earlier ones.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/mkarlsen/plansum/types"
)

var bucketRuns = []byte("runs")

// Run is one recorded summarizer run
type Run struct {
	Timestamp time.Time              `json:"timestamp"`
	Rows      []types.AccountSummary `json:"rows"`
}

// Store records and lists summarizer runs
type Store struct {
	db *bbolt.DB
}

// Open creates or opens the history database at path
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends the report as a new run. Keys are RFC3339Nano
// timestamps, so bolt's key order is chronological.
func (s *Store) Record(r types.Report) error {
	run := Run{
		Timestamp: time.Now().UTC(),
		Rows:      r.Rows,
	}

	value, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRuns)
		key := []byte(run.Timestamp.Format(time.RFC3339Nano))
		return bucket.Put(key, value)
	})
}

// Recent returns up to n runs, newest first
func (s *Store) Recent(n int) ([]Run, error) {
	var runs []Run

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(bucketRuns).Cursor()
		for k, v := cursor.Last(); k != nil && len(runs) < n; k, v = cursor.Prev() {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("failed to unmarshal run %s: %w", k, err)
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}
