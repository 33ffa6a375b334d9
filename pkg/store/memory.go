package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/cardgrid/cardgrid/pkg/errors"
)

// MemoryStore is an in-process store for tests and single-user CLI sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[uuid.UUID]Document)}
}

// Save upserts a document.
func (s *MemoryStore) Save(ctx context.Context, doc *Document) error {
	prepare(doc)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = *doc
	return nil
}

// Get retrieves a document by id.
func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
	}
	return &doc, nil
}

// List returns up to limit documents, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Document, error) {
	s.mu.RLock()
	docs := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	s.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Delete removes a document by id.
func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
	}
	delete(s.docs, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
