package batch

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"invoicectl/pkg/models"
)

const (
	batchBucket = "batch"
	currentKey  = "current"
)

// Snapshot is the persisted batch state: the editable records, the last
// booking outcomes, and the last batch-level error message. It is the
// client's single state slot; saves replace it wholesale and Clear
// discards it.
type Snapshot struct {
	Records   []models.InvoiceRecord  `json:"records"`
	Outcomes  []models.BookingOutcome `json:"outcomes,omitempty"`
	LastError string                  `json:"last_error,omitempty"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Store keeps the current batch between command invocations.
type Store interface {
	// Save replaces the stored snapshot.
	Save(snap Snapshot) error

	// Load returns the stored snapshot; an empty snapshot when none exists.
	Load() (Snapshot, error)

	// Clear discards the stored snapshot.
	Clear() error

	// Close closes the store.
	Close() error
}

// BoltStore implements Store on a bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the batch database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening batch store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(batchBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating batch bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Save replaces the stored snapshot.
func (s *BoltStore) Save(snap Snapshot) error {
	snap.UpdatedAt = time.Now()
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("marshaling batch: %w", err)
		}
		return tx.Bucket([]byte(batchBucket)).Put([]byte(currentKey), data)
	})
}

// Load returns the stored snapshot; an empty snapshot when none exists.
func (s *BoltStore) Load() (Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(batchBucket)).Get([]byte(currentKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &snap)
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading batch: %w", err)
	}
	return snap, nil
}

// Clear discards the stored snapshot.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(batchBucket)).Delete([]byte(currentKey))
	})
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
