package stack

import (
	"math/bits"
	"strconv"
	"sync/atomic"

	"github.com/brickingsoft/errors"

	"github.com/cosmicexplorer/minimal-lock-free-stack/tagged"
)

const (
	// segment k holds 1<<(segmentBase+k) nodes.
	segmentBase = 5
	// enough segments to cover every index a handle can name.
	segmentCount = 28

	maxSlots = tagged.MaxIndex + 1
)

// slotLimit caps the slots an arena issues. Tests lower it.
var slotLimit uint64 = maxSlots

type segment[T any] []node[T]

// arena hands out node slots by handle.
//
// Segments are installed once and never removed, so any handle that was
// ever issued keeps naming addressable memory. Released slots go onto a
// tagged free list and are handed out again before the arena grows.
// The zero value is an empty arena ready to use.
type arena[T any] struct {
	segments [segmentCount]atomic.Pointer[segment[T]]
	cursor   atomic.Uint64 // next never-used slot index
	free     atomic.Uint64 // tagged.Word of the free list head
}

// locate maps a slot index to its segment and offset.
func locate(index uint64) (k int, off uint64) {
	j := index + 1<<segmentBase
	k = bits.Len64(j) - 1 - segmentBase
	off = j - 1<<(k+segmentBase)
	return
}

func segmentLen(k int) uint64 {
	return 1 << (k + segmentBase)
}

// node returns the slot named by h. h must have been issued by a.
func (a *arena[T]) node(h tagged.Handle) *node[T] {
	k, off := locate(h.Index())
	seg := a.segments[k].Load()
	return &(*seg)[off]
}

// alloc returns a slot holding value, owned by the caller.
func (a *arena[T]) alloc(value T) tagged.Handle {
	h, ok := a.acquire()
	if !ok {
		h = a.grow()
	}
	a.node(h).value = value
	return h
}

// release hands an unlinked, already emptied slot back to the arena.
func (a *arena[T]) release(h tagged.Handle) {
	n := a.node(h)
	for {
		old := tagged.Word(a.free.Load())
		head := tagged.Decode(old)
		n.setLink(head.Handle)
		if a.free.CompareAndSwap(uint64(old), uint64(tagged.Encode(head.Next(h)))) {
			return
		}
	}
}

// acquire pops a slot off the free list.
func (a *arena[T]) acquire() (tagged.Handle, bool) {
	for {
		old := tagged.Word(a.free.Load())
		head := tagged.Decode(old)
		if head.IsNil() {
			return tagged.Nil, false
		}
		next := a.node(head.Handle).link()
		if a.free.CompareAndSwap(uint64(old), uint64(tagged.Encode(head.Next(next)))) {
			return head.Handle, true
		}
	}
}

// grow issues a never-used slot, installing its segment if needed.
func (a *arena[T]) grow() tagged.Handle {
	index := a.cursor.Add(1) - 1
	if index >= slotLimit {
		panic(errors.From(
			ErrExhausted,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaSlotsKey, strconv.FormatUint(slotLimit, 10)),
		))
	}
	k, _ := locate(index)
	if a.segments[k].Load() == nil {
		seg := make(segment[T], segmentLen(k))
		// a losing goroutine drops its copy; the winner's is used by all.
		a.segments[k].CompareAndSwap(nil, &seg)
	}
	return tagged.HandleOf(index)
}
