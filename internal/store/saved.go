package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func SaveJob(ctx context.Context, db *sql.DB, jobID int64, at time.Time) error {
	_, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO saved_jobs(job_id, saved_at) VALUES(?, ?);`,
		jobID, at.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save job %d: %w", jobID, err)
	}
	return nil
}

func UnsaveJob(ctx context.Context, db *sql.DB, jobID int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE job_id = ?;`, jobID)
	if err != nil {
		return fmt.Errorf("unsave job %d: %w", jobID, err)
	}
	return nil
}

// SavedJobIDs returns the saved set keyed by job ID, in save order.
func SavedJobIDs(ctx context.Context, db *sql.DB) (map[int64]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT job_id FROM saved_jobs ORDER BY saved_at;`)
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}
	defer rows.Close()

	out := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
