package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"
)

// Stats holds database statistics.
type Stats struct {
	DBPath       string    `json:"db_path"`
	DBSizeBytes  int64     `json:"db_size_bytes"`
	Saved        bool      `json:"saved"`
	Version      int       `json:"version"`
	Rev          string    `json:"rev,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
	JournalTurns int       `json:"journal_turns"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	// DB file size
	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT version, rev, updated_at FROM pet_state WHERE key = ?`, stateKey).
		Scan(&st.Version, &st.Rev, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return st, err
	default:
		st.Saved = true
		st.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM turns`).Scan(&st.JournalTurns); err != nil {
		return st, err
	}

	return st, nil
}
