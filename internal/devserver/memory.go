package devserver

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps documents in memory. Documents are copied on the
// way in and out so callers cannot modify stored state.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string][]Document
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	docs := make(map[string][]Document, len(Collections))
	for _, c := range Collections {
		docs[c] = []Document{}
	}
	return &MemoryRepository{docs: docs}
}

func (m *MemoryRepository) indexOf(collection, id string) int {
	for i, d := range m.docs[collection] {
		if d.ID() == id {
			return i
		}
	}
	return -1
}

// List returns all documents in a collection
func (m *MemoryRepository) List(ctx context.Context, collection string) ([]Document, error) {
	if !isKnownCollection(collection) {
		return nil, fmt.Errorf("collection %s: %w", collection, ErrNotFound)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Document, 0, len(m.docs[collection]))
	for _, d := range m.docs[collection] {
		out = append(out, d.clone())
	}
	return out, nil
}

// Get returns one document
func (m *MemoryRepository) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(collection, id)
	if i < 0 {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return m.docs[collection][i].clone(), nil
}

// Create stores a new document
func (m *MemoryRepository) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	if !isKnownCollection(collection) {
		return nil, fmt.Errorf("collection %s: %w", collection, ErrNotFound)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := doc.clone()
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
	}
	if m.indexOf(collection, id) >= 0 {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrConflict)
	}
	stored["id"] = id
	m.docs[collection] = append(m.docs[collection], stored)
	return stored.clone(), nil
}

// Replace overwrites an existing document
func (m *MemoryRepository) Replace(ctx context.Context, collection, id string, doc Document) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(collection, id)
	if i < 0 {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	stored := doc.clone()
	stored["id"] = id
	m.docs[collection][i] = stored
	return stored.clone(), nil
}

// Delete removes a document
func (m *MemoryRepository) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(collection, id)
	if i < 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	docs := m.docs[collection]
	m.docs[collection] = append(docs[:i:i], docs[i+1:]...)
	return nil
}

// Close is a no-op
func (m *MemoryRepository) Close() error {
	return nil
}
