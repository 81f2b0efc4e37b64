// Package tagged packs a node handle and a generation counter into one
// word that can be swapped with a single 64-bit compare-and-swap.
//
// Two words compare equal only when both the handle and the counter match,
// so a handle that was released and handed out again between a load and a
// compare-and-swap no longer looks unchanged.
package tagged

import (
	"fmt"
	"unsafe"
)

// Handle names a node slot. The zero Handle is nil; Handle h names slot h-1.
type Handle uint32

// Nil is the handle of no node.
const Nil Handle = 0

// MaxIndex is the largest slot index a Handle can name.
const MaxIndex = uint64(^Handle(0)) - 1

// HandleOf returns the handle naming slot index.
// index must not exceed MaxIndex.
func HandleOf(index uint64) Handle {
	return Handle(index + 1)
}

// Index returns the slot index named by h. h must not be Nil.
func (h Handle) Index() uint64 {
	return uint64(h) - 1
}

func (h Handle) IsNil() bool {
	return h == Nil
}

// Word is the flat form of a Pair, the value actually held in an atomic.
type Word uint64

// Pair is a handle together with its generation counter.
//
// The zero Pair is {Nil, 0} and encodes to the zero Word.
type Pair struct {
	_       [0]uint64
	Handle  Handle
	Counter uint32
}

// A Pair must be exactly as wide as a Word; either array below has a
// negative length otherwise and the package does not compile.
var (
	_ [unsafe.Sizeof(Pair{}) - unsafe.Sizeof(Word(0))]struct{}
	_ [unsafe.Sizeof(Word(0)) - unsafe.Sizeof(Pair{})]struct{}
)

// Encode reinterprets p as a Word. It is total and loses no bits.
func Encode(p Pair) Word {
	return *(*Word)(unsafe.Pointer(&p))
}

// Decode reinterprets w as a Pair. It is the inverse of Encode.
func Decode(w Word) Pair {
	return *(*Pair)(unsafe.Pointer(&w))
}

// Next returns the pair that replaces p when h becomes the new head.
// The counter wraps on overflow.
func (p Pair) Next(h Handle) Pair {
	return Pair{Handle: h, Counter: p.Counter + 1}
}

func (p Pair) IsNil() bool {
	return p.Handle.IsNil()
}

func (p Pair) String() string {
	if p.Handle.IsNil() {
		return fmt.Sprintf("{nil %d}", p.Counter)
	}
	return fmt.Sprintf("{%d %d}", p.Handle.Index(), p.Counter)
}

func (w Word) String() string {
	return fmt.Sprintf("%#x %s", uint64(w), Decode(w))
}
