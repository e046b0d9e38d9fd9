// Package undo provides a bounded snapshot stack backing the session's
// undo support.
package undo

import (
	"sync"
)

// Stack is a generic thread-safe LIFO with a depth cap. When the cap is
// exceeded the oldest snapshot is dropped.
type Stack[T any] struct {
	mu    sync.Mutex
	items []T
	limit int
}

// New creates an empty stack holding at most limit items (0 means
// unbounded).
func New[T any](limit int) *Stack[T] {
	return &Stack[T]{limit: limit}
}

// Push appends an item, evicting the oldest when over the limit.
func (s *Stack[T]) Push(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	if s.limit > 0 && len(s.items) > s.limit {
		s.items = s.items[1:]
	}
}

// Pop removes and returns the most recent item. ok is false when empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return item, false
	}
	item = s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return item, true
}

// Len returns the number of items on the stack.
func (s *Stack[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear removes all items.
func (s *Stack[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items[:0]
}
