// Package memstore is the in-memory document store behind every resource's memory
// repository. Documents are kept in insertion order; Filter returns them newest first.
package memstore

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store[T any] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(*T) *primitive.ObjectID
}

// New returns an empty store. idOf must return a pointer to the document's id field.
func New[T any](idOf func(*T) *primitive.ObjectID) *Store[T] {
	return &Store[T]{idOf: idOf}
}

// Insert stores item, assigning a fresh ObjectID when its id is zero.
func (s *Store[T]) Insert(item T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id := s.idOf(&item); id.IsZero() {
		*id = primitive.NewObjectID()
	}
	s.items = append(s.items, item)
	return item
}

func (s *Store[T]) Get(id primitive.ObjectID) (T, bool) {
	return s.Find(func(item *T) bool { return *s.idOf(item) == id })
}

// Find returns the first document, oldest first, that satisfies match.
func (s *Store[T]) Find(match func(*T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if match(&s.items[i]) {
			return s.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Filter returns matching documents, newest first. A nil match selects everything.
func (s *Store[T]) Filter(match func(*T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		if match == nil || match(&s.items[i]) {
			out = append(out, s.items[i])
		}
	}
	return out
}

// Update applies mutate to the stored document under the write lock. Slices inside
// the document must be replaced, not modified in place.
func (s *Store[T]) Update(id primitive.ObjectID, mutate func(*T) error) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if *s.idOf(&s.items[i]) != id {
			continue
		}
		next := s.items[i]
		if err := mutate(&next); err != nil {
			var zero T
			return zero, true, err
		}
		s.items[i] = next
		return next, true, nil
	}
	var zero T
	return zero, false, nil
}

func (s *Store[T]) Delete(id primitive.ObjectID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if *s.idOf(&s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
