// Package store persists tasks. The active set lives in a JSON file
// (the compatibility contract with earlier data files); completed
// tasks can additionally be moved into a sqlite archive.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mkarpov/flurry/internal/codec"
	"github.com/mkarpov/flurry/internal/model"
)

// Default data file location, relative to the working directory.
const (
	DefaultDir      = "data"
	DefaultFilename = "tasks.json"
)

// FileStore owns the identity of the tasks data file. It is the only
// component that knows the path; everything else goes through it.
type FileStore struct {
	dir  string
	name string
}

// NewFileStore creates a store for dir/name. Empty arguments fall
// back to the defaults ("data", "tasks.json").
func NewFileStore(dir, name string) *FileStore {
	if dir == "" {
		dir = DefaultDir
	}
	if name == "" {
		name = DefaultFilename
	}
	return &FileStore{dir: dir, name: name}
}

// Path returns the full path of the data file.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, s.name)
}

// Load reads and decodes the data file. A missing or empty file is
// an empty data set, not an error; the data directory is created so
// the first Save succeeds.
func (s *FileStore) Load() ([]model.Task, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if mkErr := os.MkdirAll(s.dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("create data dir: %w", mkErr)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.Path(), err)
	}
	tasks, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path(), err)
	}
	return tasks, nil
}

// Save encodes tasks and writes them to the data file atomically:
// the content goes to a temp file in the same directory first, then
// replaces the data file by rename, so a crash mid-write cannot
// leave a half-written file behind. An empty task set is persisted
// as the literal `[]`, not an absent file.
func (s *FileStore) Save(tasks []model.Task) error {
	data, err := codec.Encode(tasks)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, s.name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", s.Path(), err)
	}
	return nil
}
