package stack_test

import (
	"fmt"

	"github.com/cosmicexplorer/minimal-lock-free-stack/stack"
)

func ExampleStack() {
	var s stack.Stack[string]
	s.Push("a")
	s.Push("b")
	for {
		v, ok := s.Pop()
		if !ok {
			break
		}
		fmt.Println(v)
	}
	_, ok := s.Pop()
	fmt.Println(ok)
	// Output:
	// b
	// a
	// false
}
