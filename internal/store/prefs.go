package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"jobtrack-engine/internal/domain"
)

// LoadPreferences reads the single preferences record. A missing or
// corrupt record yields the defaults; corruption is never fatal.
func LoadPreferences(ctx context.Context, db *sql.DB) (domain.MatchPreferences, error) {
	var data string
	err := db.QueryRowContext(ctx, `SELECT data FROM preferences WHERE id = 1;`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultPreferences(), nil
	}
	if err != nil {
		return domain.DefaultPreferences(), fmt.Errorf("load preferences: %w", err)
	}

	prefs := domain.DefaultPreferences()
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		// corrupt blob: fall back to defaults
		return domain.DefaultPreferences(), nil
	}
	if prefs.PreferredLocations == nil {
		prefs.PreferredLocations = []string{}
	}
	if prefs.PreferredMode == nil {
		prefs.PreferredMode = []string{}
	}
	return prefs, nil
}

func SavePreferences(ctx context.Context, db *sql.DB, prefs domain.MatchPreferences) error {
	b, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO preferences(id, data) VALUES(1, ?)
ON CONFLICT(id) DO UPDATE SET data = excluded.data;`, string(b))
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
