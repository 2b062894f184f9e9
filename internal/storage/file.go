package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/altmart/gocart/internal/port"
)

// File keeps all keys in a single JSON document on disk, the way a browser
// profile keeps local storage for one origin. Writes go through a temp file
// and rename so a crash never leaves a half-written document.
type File struct {
	path string
}

var _ port.Storage = (*File)(nil)

func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}
	return &File{path: path}, nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}

	value, ok := doc[key]
	if !ok {
		return nil, port.ErrKeyNotFound
	}
	return value, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	doc, err := f.read()
	if err != nil {
		return err
	}

	if !json.Valid(value) {
		// non-JSON payloads get stored as a JSON string
		quoted, err := json.Marshal(string(value))
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		value = quoted
	}

	doc[key] = value
	return f.write(doc)
}

func (f *File) Delete(_ context.Context, key string) error {
	doc, err := f.read()
	if err != nil {
		return err
	}

	if _, ok := doc[key]; !ok {
		return nil
	}

	delete(doc, key)
	return f.write(doc)
}

func (f *File) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json.Unmarshal %s: %w", f.path, err)
	}

	return doc, nil
}

func (f *File) write(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
