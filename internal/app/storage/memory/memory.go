// Package memory provides an in-memory storage.Store for tests and local
// development.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/plateful/backend/internal/app/storage"
)

// Store keeps records as raw JSON grouped by collection. It is safe for
// concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

var _ storage.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{collections: make(map[string]map[string]json.RawMessage)}
}

func (s *Store) Create(_ context.Context, collection, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal record %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, ok := s.collections[collection]
	if !ok {
		records = make(map[string]json.RawMessage)
		s.collections[collection] = records
	}
	if _, exists := records[id]; exists {
		return storage.ErrAlreadyExists
	}
	records[id] = data
	return nil
}

func (s *Store) Read(_ context.Context, collection, id string, out any) (bool, error) {
	s.mu.RLock()
	data, ok := s.collections[collection][id]
	s.mu.RUnlock()

	if !ok {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	records, ok := s.collections[collection]
	if !ok {
		return storage.ErrNotFound
	}
	if _, exists := records[id]; !exists {
		return storage.ErrNotFound
	}
	records[id] = data
	return nil
}

func (s *Store) Delete(_ context.Context, collection, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, ok := s.collections[collection]
	if !ok {
		return false
	}
	if _, exists := records[id]; !exists {
		return false
	}
	delete(records, id)
	return true
}

func (s *Store) List(_ context.Context, collection string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.collections[collection]
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
