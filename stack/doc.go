/*
Package stack implements an unbounded lock-free LIFO stack.

	type Stack[T any] struct {
		top   atomic.Uint64 // tagged.Word{handle, counter}
		arena arena[T]      // segmented node slab + free list
	}

Nodes live in a per-stack arena and are named by 32-bit handles instead of
pointers. The top of the stack is a tagged word holding the top handle and
a counter that advances on every successful push or pop, so a handle that
was popped, released and pushed again between a load and a
compare-and-swap does not pass as unchanged.

push: take a slot (free list first, then a fresh one), set slot.next to the
current top handle, cas(top, old, {slot, counter+1}). On failure only the
link is rewritten.

pop: load top, return empty on nil, read top.next, cas(top, old, {next,
counter+1}). The winner owns the slot: it moves the value out, clears it
and releases the slot to the free list, which uses the same tagged cas.

The counter is 32 bits and wraps. A stale word can only be mistaken for a
live one after exactly a multiple of 1<<32 successful operations while a
goroutine sits between its load and its cas.

The package builds only where platform.NativeWordCAS is defined, so mips,
mipsle and wasm, whose 64-bit atomics take a lock, are refused at compile
time.
*/
package stack
