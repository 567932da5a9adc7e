package historydb

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpenCreatesSchemaAndRecordsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.sqlite")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	db.RecordRun(Run{
		Seed:         42,
		WorldWidth:   100,
		WorldHeight:  50,
		Checksum:     "abc123",
		SnapshotPath: "run.lwd",
		RecordedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	runs, err := db2.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run after reopen, got %d", len(runs))
	}
	if runs[0].Seed != 42 {
		t.Errorf("expected seed 42, got %d", runs[0].Seed)
	}
	if runs[0].Checksum != "abc123" {
		t.Errorf("expected checksum abc123, got %q", runs[0].Checksum)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}

func TestRecordRunOnNilDBIsNoop(t *testing.T) {
	var db *DB
	db.RecordRun(Run{Seed: 1})
}
