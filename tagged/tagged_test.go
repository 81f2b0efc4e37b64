package tagged_test

import (
	"math"
	"testing"
	"testing/quick"
	"unsafe"

	"github.com/cosmicexplorer/minimal-lock-free-stack/tagged"
)

func TestSize(t *testing.T) {
	if p, w := unsafe.Sizeof(tagged.Pair{}), unsafe.Sizeof(tagged.Word(0)); p != w {
		t.Fatalf("pair size %d != word size %d", p, w)
	}
	if a := unsafe.Alignof(tagged.Pair{}); a != unsafe.Alignof(uint64(0)) {
		t.Fatalf("pair align %d, want %d", a, unsafe.Alignof(uint64(0)))
	}
}

func TestZero(t *testing.T) {
	if w := tagged.Encode(tagged.Pair{}); w != 0 {
		t.Fatalf("zero pair encode want 0, real:%#x", uint64(w))
	}
	p := tagged.Decode(0)
	if !p.IsNil() || p.Counter != 0 {
		t.Fatalf("zero word decode want {nil 0}, real:%v", p)
	}
}

func TestRoundTrip(t *testing.T) {
	handles := []tagged.Handle{tagged.Nil, 1, 2, 1 << 16, math.MaxUint32 - 1, math.MaxUint32}
	counters := []uint32{0, 1, 3, 1 << 31, math.MaxUint32}
	for _, h := range handles {
		for _, c := range counters {
			p := tagged.Pair{Handle: h, Counter: c}
			if q := tagged.Decode(tagged.Encode(p)); q != p {
				t.Fatalf("round trip want:%v, real:%v", p, q)
			}
		}
	}

	pairs := func(h, c uint32) bool {
		p := tagged.Pair{Handle: tagged.Handle(h), Counter: c}
		return tagged.Decode(tagged.Encode(p)) == p
	}
	if err := quick.Check(pairs, nil); err != nil {
		t.Fatal(err)
	}

	words := func(w uint64) bool {
		return tagged.Encode(tagged.Decode(tagged.Word(w))) == tagged.Word(w)
	}
	if err := quick.Check(words, nil); err != nil {
		t.Fatal(err)
	}
}

func TestDistinct(t *testing.T) {
	// same handle, different generation must not compare equal
	a := tagged.Encode(tagged.Pair{Handle: 7, Counter: 1})
	b := tagged.Encode(tagged.Pair{Handle: 7, Counter: 2})
	if a == b {
		t.Fatalf("words equal across generations: %v", a)
	}
	c := tagged.Encode(tagged.Pair{Handle: 8, Counter: 1})
	if a == c {
		t.Fatalf("words equal across handles: %v", a)
	}
}

func TestNext(t *testing.T) {
	p := tagged.Pair{Handle: 3, Counter: 41}
	n := p.Next(9)
	if n.Handle != 9 || n.Counter != 42 {
		t.Fatalf("next want handle 9 counter 42, real:%d %d", n.Handle, n.Counter)
	}

	last := tagged.Pair{Handle: 3, Counter: math.MaxUint32}
	if w := last.Next(tagged.Nil); w.Counter != 0 || !w.IsNil() {
		t.Fatalf("next wrap want {nil 0}, real:%v", w)
	}
}

func TestHandle(t *testing.T) {
	if !tagged.Nil.IsNil() {
		t.Fatal("Nil is not nil")
	}
	for _, i := range []uint64{0, 1, 31, 32, tagged.MaxIndex} {
		h := tagged.HandleOf(i)
		if h.IsNil() {
			t.Fatalf("HandleOf(%d) is nil", i)
		}
		if h.Index() != i {
			t.Fatalf("index want:%d, real:%d", i, h.Index())
		}
	}
	if tagged.HandleOf(tagged.MaxIndex) != math.MaxUint32 {
		t.Fatalf("max handle want %d, real:%d", uint32(math.MaxUint32), tagged.HandleOf(tagged.MaxIndex))
	}
}

func TestString(t *testing.T) {
	if s := (tagged.Pair{}).String(); s != "{nil 0}" {
		t.Fatalf("nil pair string: %q", s)
	}
	if s := (tagged.Pair{Handle: tagged.HandleOf(4), Counter: 2}).String(); s != "{4 2}" {
		t.Fatalf("pair string: %q", s)
	}
}
