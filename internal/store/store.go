// Package store provides a hierarchical document store addressed by path
// segments. Documents are arbitrary nested field maps; the store offers
// point reads and writes only.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotFound is returned by Read when no document exists at a path.
var ErrNotFound = errors.New("document not found")

// Path is an ordered list of address segments.
type Path []string

// String joins the segments with "/".
func (p Path) String() string {
	return strings.Join(p, "/")
}

// Document is an arbitrary nested field map, as persisted.
type Document map[string]any

// Store persists documents addressed by fully-qualified paths.
type Store interface {
	Read(ctx context.Context, path Path) (Document, error)
	Write(ctx context.Context, path Path, doc Document) error
	Delete(ctx context.Context, path Path) error
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	docs map[string]Document
	mu   sync.RWMutex
}

// NewMemoryStore creates a new in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]Document),
	}
}

func (s *MemoryStore) Read(_ context.Context, path Path) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[path.String()]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDocument(doc)
}

func (s *MemoryStore) Write(_ context.Context, path Path, doc Document) error {
	clone, err := cloneDocument(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path.String()] = clone
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, path Path) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, path.String())
	return nil
}

// cloneDocument copies a document through its JSON form so callers can
// never alias stored state. The round trip also normalizes field types to
// what a durable backend would return.
func cloneDocument(doc Document) (Document, error) {
	if doc == nil {
		return Document{}, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var clone Document
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return clone, nil
}
