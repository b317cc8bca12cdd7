// Package store persists pet state snapshots. A SQLite driver is the default;
// JSON-file and Badger drivers share the same document format.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/agent-pet/internal/model"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Load when no record exists yet.
var ErrNotFound = errors.New("pet state not found")

// Drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverBadger = "badger"
)

// Gateway loads and saves the whole pet state.
type Gateway interface {
	// Load overlays the stored record onto dst. Fields absent from the record
	// keep the value dst already had. Returns ErrNotFound if there is no record.
	// On any error dst is left untouched.
	Load(ctx context.Context, dst *model.PetState) error

	// Save overwrites the stored record with s.
	Save(ctx context.Context, s *model.PetState) error

	// Close closes the store.
	Close() error
}

// JournalEntry is one archived conversation turn.
type JournalEntry struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal is implemented by drivers that archive every committed turn.
type Journal interface {
	AppendTurns(ctx context.Context, turns []model.Turn) error
	SearchTurns(ctx context.Context, query string, limit int) ([]JournalEntry, error)
}

// Open returns the Gateway for driver at path.
func Open(driver, path string, logger *zap.Logger) (Gateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch driver {
	case DriverSQLite, "":
		return NewSQLiteStore(path)
	case DriverFile:
		return NewFileStore(path)
	case DriverBadger:
		return NewBadgerStore(BadgerOptions{Dir: path, Logger: logger})
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
