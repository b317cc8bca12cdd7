package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcliao/agent-pet/internal/model"
)

// FileStore keeps the state as a single pretty-printed JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path, creating its directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Load(_ context.Context, dst *model.PetState) error {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read state file: %w", err)
	}
	return decodeState(b, dst)
}

func (f *FileStore) Save(_ context.Context, s *model.PetState) error {
	doc, err := encodeState(s)
	if err != nil {
		return err
	}
	return writeFileAtomic(f.path, doc)
}

func (f *FileStore) Close() error { return nil }

// writeFileAtomic writes to a temp file, syncs it, then renames over path.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"

	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open temp file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
