// Package jsonfile stores users and tweets as JSON arrays in flat files.
//
// Every operation reads the whole array and, for writes, rewrites the whole
// array. A per-file lock serializes the read-modify-write cycle within the
// process and writes are atomic (temp file + rename), so a crash mid-write
// leaves the previous contents intact. Multiple processes sharing one data
// directory are not coordinated.
package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformed is returned when a data file exists but does not hold a JSON array.
var ErrMalformed = errors.New("malformed data file")

// file is one JSON array of records of type T on disk.
type file[T any] struct {
	mu   sync.RWMutex
	path string
}

func newFile[T any](path string) *file[T] {
	return &file[T]{path: path}
}

// readAll returns every record in the file. A missing or empty file is an empty list.
func (f *file[T]) readAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.load()
}

// modify runs fn over the current records and writes back what it returns.
// Nothing is written when fn fails.
func (f *file[T]) modify(ctx context.Context, fn func(records []T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.load()
	if err != nil {
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	return f.store(records)
}

func (f *file[T]) load() ([]T, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrMalformed, f.path, err)
	}
	if records == nil {
		// the file held a literal null
		records = []T{}
	}
	return records, nil
}

func (f *file[T]) store(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", f.path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}
