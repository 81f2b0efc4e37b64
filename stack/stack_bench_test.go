package stack_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cosmicexplorer/minimal-lock-free-stack/stack"
)

type benchS struct {
	setup func(*testing.B, SInterface)
	perG  func(b *testing.B, pb *testing.PB, r *rand.Rand, m SInterface)
}

func benchSMap(b *testing.B, bench benchS) {
	for _, newStack := range [...]func() SInterface{
		func() SInterface { return stack.New[int]() },
		func() SInterface { return &MutexStack[int]{} },
	} {
		m := newStack()
		b.Run(fmt.Sprintf("%T", m), func(b *testing.B) {
			if bench.setup != nil {
				bench.setup(b, m)
			}
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				r := rand.New(rand.NewSource(rand.Int63()))
				bench.perG(b, pb, r, m)
			})
		})
	}
}

func BenchmarkPush(b *testing.B) {
	benchSMap(b, benchS{
		perG: func(b *testing.B, pb *testing.PB, _ *rand.Rand, m SInterface) {
			for i := 0; pb.Next(); i++ {
				m.Push(i)
			}
		},
	})
}

func BenchmarkPop(b *testing.B) {
	const prevsize = 1 << 20
	benchSMap(b, benchS{
		setup: func(_ *testing.B, m SInterface) {
			for i := 0; i < prevsize; i++ {
				m.Push(i)
			}
		},
		perG: func(b *testing.B, pb *testing.PB, _ *rand.Rand, m SInterface) {
			for pb.Next() {
				m.Pop()
			}
		},
	})
}

func BenchmarkPushPop(b *testing.B) {
	benchSMap(b, benchS{
		perG: func(b *testing.B, pb *testing.PB, _ *rand.Rand, m SInterface) {
			for i := 0; pb.Next(); i++ {
				m.Push(i)
				m.Pop()
			}
		},
	})
}

func BenchmarkMostlyPush(b *testing.B) {
	benchSMap(b, benchS{
		perG: func(b *testing.B, pb *testing.PB, r *rand.Rand, m SInterface) {
			for i := 0; pb.Next(); i++ {
				if r.Intn(4) == 0 {
					m.Pop()
				} else {
					m.Push(i)
				}
			}
		},
	})
}

func BenchmarkMostlyPop(b *testing.B) {
	const prevsize = 1 << 16
	benchSMap(b, benchS{
		setup: func(_ *testing.B, m SInterface) {
			for i := 0; i < prevsize; i++ {
				m.Push(i)
			}
		},
		perG: func(b *testing.B, pb *testing.PB, r *rand.Rand, m SInterface) {
			for i := 0; pb.Next(); i++ {
				if r.Intn(4) == 0 {
					m.Push(i)
				} else {
					m.Pop()
				}
			}
		},
	})
}
