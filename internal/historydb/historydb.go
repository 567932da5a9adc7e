// Package historydb indexes completed generation runs (seed, world
// size, tile checksum, snapshot path, timestamp) in a local sqlite
// database so past runs can be listed (ListRuns) without re-reading
// every .lwd file. It stores no tile data — only the same seed/metadata a
// snapshot already carries, in queryable form.
package historydb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded generation run.
type Run struct {
	Seed         uint64
	WorldWidth   uint32
	WorldHeight  uint32
	Checksum     string
	SnapshotPath string
	RecordedAt   string
}

// DB is a sqlite-backed run-history index. Writes are asynchronous:
// RecordRun enqueues onto a buffered channel drained by one writer
// goroutine, so a slow disk never stalls the generation run that
// triggered the write.
type DB struct {
	db *sql.DB

	ch   chan Run
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

// Open opens (creating if necessary) a sqlite database at path and
// starts its writer goroutine.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty history db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := initPragmas(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := initSchema(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	d := &DB{db: sqlDB, ch: make(chan Run, 4096)}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.loop()
	}()
	return d, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		world_width INTEGER NOT NULL,
		world_height INTEGER NOT NULL,
		checksum TEXT NOT NULL,
		snapshot_path TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);`)
	return err
}

// RecordRun enqueues a completed run for the writer goroutine to
// persist. If the internal queue is full the run is dropped — the
// .lwd snapshot remains the source of truth, this index is a
// convenience lookup, not an authoritative log.
func (d *DB) RecordRun(r Run) {
	if d == nil || d.closed.Load() {
		return
	}
	if r.RecordedAt == "" {
		r.RecordedAt = time.Now().UTC().Format(time.RFC3339)
	}
	select {
	case d.ch <- r:
	default:
	}
}

func (d *DB) loop() {
	ctx := context.Background()
	insert, err := d.db.Prepare(`INSERT INTO runs(seed, world_width, world_height, checksum, snapshot_path, recorded_at) VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return
	}
	defer insert.Close()

	for r := range d.ch {
		_, _ = insert.ExecContext(ctx, int64(r.Seed), r.WorldWidth, r.WorldHeight, r.Checksum, r.SnapshotPath, r.RecordedAt)
	}
}

// ListRuns returns up to limit most recent runs, newest first.
func (d *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.db.Query(`SELECT seed, world_width, world_height, checksum, snapshot_path, recorded_at FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.Seed, &r.WorldWidth, &r.WorldHeight, &r.Checksum, &r.SnapshotPath, &r.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close drains the writer goroutine and closes the database.
func (d *DB) Close() error {
	var err error
	d.once.Do(func() {
		d.closed.Store(true)
		close(d.ch)
		d.wg.Wait()
		err = d.db.Close()
	})
	return err
}
