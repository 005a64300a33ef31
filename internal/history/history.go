// Package history persists reclaim runs and per-target outcomes to a
// local SQLite database, for audit and the junksweep-query CLI.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"junksweep/internal/reclaim"
)

// RunDB manages the SQLite database holding run history.
type RunDB struct {
	db *sql.DB
}

// RunRecord is one reclaim run.
type RunRecord struct {
	ID              int64
	StartedAt       time.Time
	FinishedAt      time.Time
	Volume          string
	DryRun          bool
	FoundBytes      int64
	RemovedBytes    int64
	NotRemovedBytes int64
	DurationSeconds float64
}

// TargetRecord is one processed reclaim target within a run.
type TargetRecord struct {
	ID        int64
	RunID     int64
	Timestamp time.Time
	Action    string
	Path      string
	Kind      string
	Size      int64
	Detail    string
}

// NewRunDB opens (creating if needed) the history database.
func NewRunDB(dbPath string) (*RunDB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// Touch the database so the file exists and permissions surface now.
	if _, err = db.Exec("SELECT 1"); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history database %s: %w", dbPath, err)
	}
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set synchronous mode: %w", err)
	}

	rdb := &RunDB{db: db}
	if err := rdb.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return rdb, nil
}

func (d *RunDB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		volume TEXT NOT NULL,
		dry_run INTEGER NOT NULL,
		found_bytes INTEGER NOT NULL DEFAULT 0,
		removed_bytes INTEGER NOT NULL DEFAULT 0,
		not_removed_bytes INTEGER NOT NULL DEFAULT 0,
		duration_seconds REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS targets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		path TEXT NOT NULL,
		kind TEXT NOT NULL,
		size INTEGER NOT NULL,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_targets_run ON targets(run_id);
	CREATE INDEX IF NOT EXISTS idx_targets_action ON targets(action);
	CREATE INDEX IF NOT EXISTS idx_targets_size ON targets(size);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`
	_, err := d.db.Exec(schema)
	return err
}

// StartRun inserts a new run row and returns its id.
func (d *RunDB) StartRun(volume string, dryRun bool) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO runs (started_at, volume, dry_run) VALUES (?, ?, ?)`,
		time.Now().UTC(), volume, boolToInt(dryRun),
	)
	if err != nil {
		return 0, fmt.Errorf("start run: %w", err)
	}
	return res.LastInsertId()
}

// FinishRun stores the final totals and duration for a run.
func (d *RunDB) FinishRun(runID int64, totals reclaim.Accumulator, elapsed time.Duration) error {
	_, err := d.db.Exec(
		`UPDATE runs SET finished_at = ?, found_bytes = ?, removed_bytes = ?,
		 not_removed_bytes = ?, duration_seconds = ? WHERE id = ?`,
		time.Now().UTC(), totals.Found, totals.Removed, totals.NotRemoved,
		elapsed.Seconds(), runID,
	)
	if err != nil {
		return fmt.Errorf("finish run %d: %w", runID, err)
	}
	return nil
}

// Recorder returns a reclaim.Recorder that files targets under runID.
func (d *RunDB) Recorder(runID int64) reclaim.Recorder {
	return &runRecorder{db: d, runID: runID}
}

type runRecorder struct {
	db    *RunDB
	runID int64
}

func (r *runRecorder) Record(action, path, kind string, size int64, detail string) error {
	_, err := r.db.db.Exec(
		`INSERT INTO targets (run_id, timestamp, action, path, kind, size, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.runID, time.Now().UTC(), action, path, kind, size, detail,
	)
	return err
}

// Close closes the database connection.
func (d *RunDB) Close() error {
	return d.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
