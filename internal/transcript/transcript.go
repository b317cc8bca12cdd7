// Package transcript keeps the displayed chat history in a JSON file, apart
// from the pet's own persisted state. Import and export move it in and out.
package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kaptinlin/jsonrepair"

	"github.com/rcliao/agent-pet/internal/model"
)

// DefaultPath is used when no transcript path is configured.
const DefaultPath = "chat_history.json"

// File is a transcript stored at Path.
type File struct {
	Path string
}

// Open returns the transcript at path, or DefaultPath when path is empty.
// Nothing is read until Load.
func Open(path string) *File {
	if path == "" {
		path = DefaultPath
	}
	return &File{Path: path}
}

// Load reads the transcript. A missing file is an empty transcript.
func (f *File) Load() ([]model.Turn, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.Turn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Turn{}, nil
	}
	return Decode(data)
}

// Save replaces the transcript with turns.
func (f *File) Save(turns []model.Turn) error {
	var buf bytes.Buffer
	if err := encode(&buf, turns); err != nil {
		return err
	}
	return writeFileAtomic(f.Path, buf.Bytes())
}

// Append adds turns to the end of the transcript.
func (f *File) Append(turns ...model.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	existing, err := f.Load()
	if err != nil {
		return err
	}
	return f.Save(append(existing, turns...))
}

// Clear empties the transcript.
func (f *File) Clear() error {
	return f.Save(nil)
}

// Export writes the transcript to w as indented JSON.
func (f *File) Export(w io.Writer) error {
	turns, err := f.Load()
	if err != nil {
		return err
	}
	return encode(w, turns)
}

// Import replaces the transcript with the history read from r and returns
// how many turns it holds.
func (f *File) Import(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}
	turns, err := Decode(data)
	if err != nil {
		return 0, err
	}
	if err := f.Save(turns); err != nil {
		return 0, err
	}
	return len(turns), nil
}

// Decode parses a JSON array of turns. Slightly malformed input (trailing
// commas, single quotes, truncation) is repaired before giving up.
func Decode(data []byte) ([]model.Turn, error) {
	var turns []model.Turn
	err := json.Unmarshal(data, &turns)
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		fixed, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return nil, fmt.Errorf("decode transcript: %w", err)
		}
		turns = nil
		err = json.Unmarshal([]byte(fixed), &turns)
	}
	if err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	for i, t := range turns {
		if t.Role != model.RoleUser && t.Role != model.RolePet {
			return nil, fmt.Errorf("decode transcript: entry %d has unknown role %q", i, t.Role)
		}
	}
	if turns == nil {
		turns = []model.Turn{}
	}
	return turns, nil
}

func encode(w io.Writer, turns []model.Turn) error {
	if turns == nil {
		turns = []model.Turn{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(turns); err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create transcript dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
