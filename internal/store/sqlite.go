package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/agent-pet/internal/model"
)

// stateKey is the fixed record key; one database holds one pet.
const stateKey = "pet"

// SQLiteStore implements Gateway and Journal using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	mu      sync.Mutex // guards entropy
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		path:    dbPath,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pet_state (
		key         TEXT PRIMARY KEY,
		rev         TEXT NOT NULL,
		version     INTEGER NOT NULL DEFAULT 1,
		document    TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turns (
		id          TEXT PRIMARY KEY,
		role        TEXT NOT NULL,
		content     TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_turns_created ON turns(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the latest record and overlays it onto dst.
func (s *SQLiteStore) Load(ctx context.Context, dst *model.PetState) error {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM pet_state WHERE key = ?`, stateKey).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	return decodeState([]byte(doc), dst)
}

// Save overwrites the record and bumps its version.
func (s *SQLiteStore) Save(ctx context.Context, st *model.PetState) error {
	doc, err := encodeState(st)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO pet_state (key, rev, version, document, updated_at)
		 VALUES (?, ?, 1, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   rev = excluded.rev,
		   version = pet_state.version + 1,
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		stateKey, s.newID(), string(doc), now)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"
