// Package filestore persists records as flat JSON files, one file per record
// under a directory per collection. File-level atomicity via exclusive create
// is the only concurrency primitive; everything else is last-write-wins.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/plateful/backend/internal/app/storage"
)

// Store is a flat-file implementation of storage.Store rooted at BaseDir.
type Store struct {
	baseDir string
}

var _ storage.Store = (*Store)(nil)

// New creates a store rooted at baseDir, creating the directory if needed.
func New(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("base directory required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) path(collection, id string) string {
	return filepath.Join(s.baseDir, collection, id+".json")
}

func (s *Store) Create(_ context.Context, collection, id string, value any) error {
	if err := os.MkdirAll(filepath.Join(s.baseDir, collection), 0o755); err != nil {
		return fmt.Errorf("create collection %s: %w", collection, err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal record %s/%s: %w", collection, id, err)
	}

	// O_EXCL makes the create fail when the record already exists. Signup and
	// cart initialisation rely on this being atomic.
	f, err := os.OpenFile(s.path(collection, id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("open record %s/%s: %w", collection, id, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write record %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Read(_ context.Context, collection, id string, out any) (bool, error) {
	data, err := os.ReadFile(s.path(collection, id))
	if err != nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *Store) Update(_ context.Context, collection, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal record %s/%s: %w", collection, id, err)
	}

	// Opening without O_CREATE refuses to resurrect a missing record.
	f, err := os.OpenFile(s.path(collection, id), os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("open record %s/%s: %w", collection, id, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write record %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, collection, id string) bool {
	return os.Remove(s.path(collection, id)) == nil
}

func (s *Store) List(_ context.Context, collection string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list collection %s: %w", collection, err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}
