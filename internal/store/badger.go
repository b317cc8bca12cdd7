package store

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/rcliao/agent-pet/internal/model"
)

var badgerStateKey = []byte("pet:state")

// BadgerOptions configures the Badger driver.
type BadgerOptions struct {
	// Dir is the Badger data directory. Required unless InMemory.
	Dir string

	// InMemory keeps everything in memory. Used by tests.
	InMemory bool

	Logger *zap.Logger
}

// BadgerStore implements Gateway on top of BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a Badger database.
func NewBadgerStore(opts BadgerOptions) (*BadgerStore, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("badger dir is required for on-disk mode")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := opts.Dir
	if opts.InMemory {
		// badger refuses a directory in memory-only mode
		dir = ""
	}
	dbOpts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger.Sugar()})
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Load(_ context.Context, dst *model.PetState) error {
	var doc []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerStateKey)
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	return decodeState(doc, dst)
}

func (b *BadgerStore) Save(_ context.Context, s *model.PetState) error {
	doc, err := encodeState(s)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerStateKey, doc)
	})
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}

// badgerLogger routes badger warnings and errors to zap and drops the chatter.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.s.Errorf("badger: "+f, v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.s.Warnf("badger: "+f, v...) }
func (badgerLogger) Infof(string, ...interface{})          {}
func (badgerLogger) Debugf(string, ...interface{})         {}
