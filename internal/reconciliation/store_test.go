package reconciliation

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(sampleReport()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Filename != "statement.pdf" || len(got.Matched) != 1 || len(got.Unmatched) != 2 {
		t.Errorf("loaded report: %+v", got)
	}
	if got.Unmatched[0].ID != "t2" {
		t.Errorf("unmatched order not preserved: %+v", got.Unmatched)
	}
}

func TestStoreLoadWithoutReport(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Filename != "" || got.Matched != nil || got.Unmatched != nil {
		t.Errorf("expected empty report, got %+v", got)
	}
}

func TestStoreSaveReplacesReport(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(sampleReport()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(MoveToMatched(sampleReport(), "t2")); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Matched) != 2 || len(got.Unmatched) != 1 {
		t.Errorf("stored report not replaced: %+v", got)
	}
}
