package reconciliation

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"invoicectl/pkg/models"
)

const (
	reportBucket = "reconciliation"
	reportKey    = "report"
)

// Store keeps the current reconciliation report between command
// invocations, so a transaction can be booked in a later process than the
// one that uploaded the statement.
type Store interface {
	// Save replaces the stored report.
	Save(report models.ReconciliationReport) error

	// Load returns the stored report; an empty report when none exists.
	Load() (models.ReconciliationReport, error)

	// Close closes the store.
	Close() error
}

// BoltStore implements Store on a bbolt file. It can share the batch
// store's database file; the report lives in its own bucket.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the report database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening report store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(reportBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating report bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Save replaces the stored report.
func (s *BoltStore) Save(report models.ReconciliationReport) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		return tx.Bucket([]byte(reportBucket)).Put([]byte(reportKey), data)
	})
}

// Load returns the stored report; an empty report when none exists.
func (s *BoltStore) Load() (models.ReconciliationReport, error) {
	var report models.ReconciliationReport
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(reportBucket)).Get([]byte(reportKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &report)
	})
	if err != nil {
		return models.ReconciliationReport{}, fmt.Errorf("loading report: %w", err)
	}
	return report, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
