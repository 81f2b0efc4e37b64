package stack

import (
	"sync/atomic"

	"github.com/cosmicexplorer/minimal-lock-free-stack/tagged"
)

// node is one arena slot.
//
// next is read by goroutines holding a stale head word while the slot is
// being reused, so it is always accessed atomically. value is only
// touched by the slot's current owner.
type node[T any] struct {
	value T
	next  atomic.Uint32
}

func (n *node[T]) link() tagged.Handle {
	return tagged.Handle(n.next.Load())
}

func (n *node[T]) setLink(h tagged.Handle) {
	n.next.Store(uint32(h))
}

// take moves the payload out and clears the slot so the collector can
// reclaim whatever the payload referenced.
func (n *node[T]) take() (value T) {
	value = n.value
	var zero T
	n.value = zero
	return
}
