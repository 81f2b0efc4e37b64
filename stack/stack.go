package stack

import (
	"sync/atomic"

	"github.com/cosmicexplorer/minimal-lock-free-stack/platform"
	"github.com/cosmicexplorer/minimal-lock-free-stack/tagged"
)

// stack refuses to build where 64-bit compare-and-swap takes a lock.
var _ = platform.NativeWordCAS

// Stack is a lock-free concurrent LIFO stack.
//
// The zero value is an empty stack ready to use. A Stack must not be
// copied after first use.
type Stack[T any] struct {
	top   atomic.Uint64 // tagged.Word of the top node
	arena arena[T]
}

// New returns an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push puts value at the top of the stack.
//
// Push panics with an error matching ErrExhausted if every node handle is
// in use.
func (s *Stack[T]) Push(value T) {
	h := s.arena.alloc(value)
	slot := s.arena.node(h)
	for {
		old := tagged.Word(s.top.Load())
		top := tagged.Decode(old)
		slot.setLink(top.Handle)
		if s.top.CompareAndSwap(uint64(old), uint64(tagged.Encode(top.Next(h)))) {
			return
		}
	}
}

// Pop removes and returns the value at the top of the stack.
// ok is false if the stack is empty.
func (s *Stack[T]) Pop() (value T, ok bool) {
	var top tagged.Pair
	for {
		old := tagged.Word(s.top.Load())
		top = tagged.Decode(old)
		if top.IsNil() {
			return
		}
		// the slot may already be popped and reused by another goroutine;
		// its link is then stale, but so is old, and the swap fails.
		next := s.arena.node(top.Handle).link()
		if s.top.CompareAndSwap(uint64(old), uint64(tagged.Encode(top.Next(next)))) {
			break
		}
	}
	value = s.arena.node(top.Handle).take()
	s.arena.release(top.Handle)
	return value, true
}
