package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/agent-pet/internal/model"
)

// AppendTurns archives turns in order.
func (s *SQLiteStore) AppendTurns(ctx context.Context, turns []model.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i, t := range turns {
		// keep turns of one exchange strictly ordered
		at := now.Add(time.Duration(i) * time.Microsecond).Format(timeLayout)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO turns (id, role, content, created_at) VALUES (?, ?, ?, ?)`,
			s.newID(), t.Role, t.Content, at)
		if err != nil {
			return fmt.Errorf("insert turn: %w", err)
		}
	}
	return tx.Commit()
}

// SearchTurns returns archived turns whose content contains query, newest first.
// An empty query lists the most recent turns.
func (s *SQLiteStore) SearchTurns(ctx context.Context, query string, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, content, created_at FROM turns
		 WHERE content LIKE ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Role, &e.Content, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
