package history

import (
	"database/sql"
	"fmt"
)

// RecentRuns returns up to limit runs, newest first.
func (d *RunDB) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, started_at, finished_at, volume, dry_run,
		        found_bytes, removed_bytes, not_removed_bytes, duration_seconds
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// RecentTargets returns up to limit processed targets, newest first.
func (d *RunDB) RecentTargets(limit int) ([]TargetRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, run_id, timestamp, action, path, kind, size, COALESCE(detail, '')
		 FROM targets ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent targets: %w", err)
	}
	defer rows.Close()
	return scanTargets(rows)
}

// LargestTargets returns the limit largest processed targets by size.
func (d *RunDB) LargestTargets(limit int) ([]TargetRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, run_id, timestamp, action, path, kind, size, COALESCE(detail, '')
		 FROM targets ORDER BY size DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query largest targets: %w", err)
	}
	defer rows.Close()
	return scanTargets(rows)
}

// TargetsByAction returns targets filtered by action (DELETE, DRY_RUN,
// SKIP, FAILED, PURGE), newest first.
func (d *RunDB) TargetsByAction(action string, limit int) ([]TargetRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, run_id, timestamp, action, path, kind, size, COALESCE(detail, '')
		 FROM targets WHERE action = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		action, limit)
	if err != nil {
		return nil, fmt.Errorf("query targets by action: %w", err)
	}
	defer rows.Close()
	return scanTargets(rows)
}

// CountsByAction returns how many targets were filed under each action.
func (d *RunDB) CountsByAction() (map[string]int64, error) {
	rows, err := d.db.Query(`SELECT action, COUNT(*) FROM targets GROUP BY action`)
	if err != nil {
		return nil, fmt.Errorf("query action counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var action string
		var n int64
		if err := rows.Scan(&action, &n); err != nil {
			return nil, err
		}
		counts[action] = n
	}
	return counts, rows.Err()
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var dryRun int
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.StartedAt, &finished, &r.Volume, &dryRun,
			&r.FoundBytes, &r.RemovedBytes, &r.NotRemovedBytes, &r.DurationSeconds); err != nil {
			return nil, err
		}
		r.DryRun = dryRun != 0
		// An unfinished run reports its start time as the best estimate.
		r.FinishedAt = r.StartedAt
		if finished.Valid {
			r.FinishedAt = finished.Time
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanTargets(rows *sql.Rows) ([]TargetRecord, error) {
	var out []TargetRecord
	for rows.Next() {
		var t TargetRecord
		if err := rows.Scan(&t.ID, &t.RunID, &t.Timestamp, &t.Action, &t.Path,
			&t.Kind, &t.Size, &t.Detail); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
