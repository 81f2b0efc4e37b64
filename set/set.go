package set

import (
	"bytes"
	"fmt"
	"math/bits"
)

const (
	// platform bit = 2^setBits, (32/64)
	setBits  = 5 + (^uint(0) >> 63)
	platform = 1 << setBits
	setMask  = 1<<setBits - 1
)

// Bits is a set of non-negative integers.
// Its zero value represents the empty set. Bits is not safe for
// concurrent use; give each goroutine its own and merge them afterwards.
//
// x = (2^setBits)*idx + mod, stored as words[idx]&(1<<mod).
type Bits struct {
	words []uint
	n     int
}

// x = 64*idx + mod on 64 bit platforms, 32*idx + mod on 32 bit ones.
func idxMod(x int) (idx int, mod uint) {
	return x >> setBits, uint(x & setMask)
}

// Len returns the number of elements in the set.
func (s *Bits) Len() int {
	return s.n
}

// Has reports whether the set contains the non-negative value x.
func (s *Bits) Has(x int) bool {
	if x < 0 {
		return false
	}
	idx, mod := idxMod(x)
	if idx >= len(s.words) {
		return false
	}
	return (s.words[idx]>>mod)&1 == 1
}

// Add adds the non-negative value x to the set.
// It returns false if x was already present.
func (s *Bits) Add(x int) bool {
	if x < 0 {
		panic(fmt.Sprintf("set: negative value %d", x))
	}
	idx, mod := idxMod(x)
	for idx >= len(s.words) {
		s.words = append(s.words, 0)
	}
	if s.words[idx]&(1<<mod) != 0 {
		return false
	}
	s.words[idx] |= 1 << mod
	s.n++
	return true
}

// Remove removes x from the set. It returns false if x was absent.
func (s *Bits) Remove(x int) bool {
	if !s.Has(x) {
		return false
	}
	idx, mod := idxMod(x)
	s.words[idx] &^= 1 << mod
	s.n--
	return true
}

// Clear removes all elements from the set.
func (s *Bits) Clear() {
	s.words = s.words[:0]
	s.n = 0
}

// UnionWith sets s to the union of s and t.
func (s *Bits) UnionWith(t *Bits) {
	for i, w := range t.words {
		if i < len(s.words) {
			s.words[i] |= w
		} else {
			s.words = append(s.words, w)
		}
	}
	s.recount()
}

// DifferenceWith sets s to the items in s and not in t.
func (s *Bits) DifferenceWith(t *Bits) {
	for i, w := range t.words {
		if i >= len(s.words) {
			break
		}
		s.words[i] &^= w
	}
	s.recount()
}

func (s *Bits) recount() {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount(w)
	}
	s.n = n
}

// Equal reports whether s and t hold the same elements.
func (s *Bits) Equal(t *Bits) bool {
	if s.n != t.n {
		return false
	}
	short, long := s.words, t.words
	if len(short) > len(long) {
		short, long = long, short
	}
	for i := range short {
		if short[i] != long[i] {
			return false
		}
	}
	for _, w := range long[len(short):] {
		if w != 0 {
			return false
		}
	}
	return true
}

// Items returns all elements in increasing order.
func (s *Bits) Items() []int {
	items := make([]int, 0, s.n)
	for i, w := range s.words {
		for w != 0 {
			j := bits.TrailingZeros(w)
			items = append(items, platform*i+j)
			w &^= 1 << uint(j)
		}
	}
	return items
}

// String returns the set as a string of the form "{1 2 3}".
func (s *Bits) String() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, x := range s.Items() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%d", x)
	}
	buf.WriteByte('}')
	return buf.String()
}
