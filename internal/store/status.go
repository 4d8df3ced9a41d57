package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobtrack-engine/internal/domain"
)

// historyLimit bounds the status history; older entries are trimmed.
const historyLimit = 50

// GetStatus returns a job's application status, defaulting to
// "Not Applied" when nothing is recorded.
func GetStatus(ctx context.Context, db *sql.DB, jobID int64) (string, error) {
	var status string
	err := db.QueryRowContext(ctx, `SELECT status FROM app_status WHERE job_id = ?;`, jobID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StatusNotApplied, nil
	}
	if err != nil {
		return domain.StatusNotApplied, fmt.Errorf("get status %d: %w", jobID, err)
	}
	return status, nil
}

// AllStatuses returns every recorded status keyed by job ID.
func AllStatuses(ctx context.Context, db *sql.DB) (map[int64]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT job_id, status FROM app_status;`)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var id int64
		var status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, err
		}
		out[id] = status
	}
	return out, rows.Err()
}

// SetStatus records a job's status. A real change (old != new) also
// appends a history entry and trims the history to its cap; setting
// the same status again is a no-op for history.
func SetStatus(ctx context.Context, db *sql.DB, jobID int64, status string, at time.Time) (changed bool, err error) {
	old, err := GetStatus(ctx, db, jobID)
	if err != nil {
		return false, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	now := at.UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
INSERT INTO app_status(job_id, status, updated_at) VALUES(?, ?, ?)
ON CONFLICT(job_id) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at;`,
		jobID, status, now); err != nil {
		return false, fmt.Errorf("set status %d: %w", jobID, err)
	}

	if old != status {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO status_history(job_id, status, changed_at) VALUES(?, ?, ?);`,
			jobID, status, now); err != nil {
			return false, fmt.Errorf("append status history: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
DELETE FROM status_history
WHERE id NOT IN (SELECT id FROM status_history ORDER BY id DESC LIMIT ?);`,
			historyLimit); err != nil {
			return false, fmt.Errorf("trim status history: %w", err)
		}
		changed = true
	}

	return changed, tx.Commit()
}

// RecentStatusChanges returns the newest history entries first.
func RecentStatusChanges(ctx context.Context, db *sql.DB, limit int) ([]domain.StatusChange, error) {
	if limit <= 0 || limit > historyLimit {
		limit = 10
	}
	rows, err := db.QueryContext(ctx, `
SELECT job_id, status, changed_at FROM status_history
ORDER BY id DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent status changes: %w", err)
	}
	defer rows.Close()

	out := []domain.StatusChange{}
	for rows.Next() {
		var c domain.StatusChange
		if err := rows.Scan(&c.JobID, &c.Status, &c.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
