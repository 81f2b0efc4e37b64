package stack_test

import (
	"sync"
)

// MutexStack stack with mutex
type MutexStack[T any] struct {
	top *node[T]
	mu  sync.Mutex
}

type node[T any] struct {
	p    T
	next *node[T]
}

func (s *MutexStack[T]) Push(v T) {
	s.mu.Lock()
	s.top = &node[T]{p: v, next: s.top}
	s.mu.Unlock()
}

func (s *MutexStack[T]) Pop() (v T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.top == nil {
		return
	}
	top := s.top
	s.top = top.next
	return top.p, true
}
