package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"jobtrack-engine/internal/digest"
)

// DigestStore implements digest.Store on sqlite, one row per calendar
// date. Rows are never deleted; stale dates are simply never read.
type DigestStore struct {
	DB *sql.DB
}

func (s DigestStore) GetDigest(ctx context.Context, date string) (*digest.Digest, error) {
	var (
		generatedAt string
		isEmpty     int
		jobsJSON    string
	)
	err := s.DB.QueryRowContext(ctx, `
SELECT generated_at, is_empty, jobs FROM digests WHERE date = ?;`, date).
		Scan(&generatedAt, &isEmpty, &jobsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get digest %s: %w", date, err)
	}

	d := &digest.Digest{
		Date:        date,
		GeneratedAt: generatedAt,
		IsEmpty:     isEmpty != 0,
		Jobs:        []digest.Entry{},
	}
	if err := json.Unmarshal([]byte(jobsJSON), &d.Jobs); err != nil {
		// corrupt snapshot: treat as absent so a fresh one can be cut
		return nil, nil
	}
	return d, nil
}

func (s DigestStore) PutDigest(ctx context.Context, d *digest.Digest) error {
	b, err := json.Marshal(d.Jobs)
	if err != nil {
		return fmt.Errorf("marshal digest jobs: %w", err)
	}

	empty := 0
	if d.IsEmpty {
		empty = 1
	}
	_, err = s.DB.ExecContext(ctx, `
INSERT INTO digests(date, generated_at, is_empty, jobs)
VALUES(?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  generated_at = excluded.generated_at,
  is_empty = excluded.is_empty,
  jobs = excluded.jobs;`,
		d.Date, d.GeneratedAt, empty, string(b))
	if err != nil {
		return fmt.Errorf("put digest %s: %w", d.Date, err)
	}
	return nil
}
