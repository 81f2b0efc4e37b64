package stack

import (
	"github.com/brickingsoft/errors"
)

var (
	ErrExhausted = errors.Define("stack: node handle space exhausted")
)

// IsExhausted reports whether err, typically recovered from a panicking
// Push, is caused by running out of node handles.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrExhausted)
}

const (
	errMetaPkgKey   = "pkg"
	errMetaPkgVal   = "stack"
	errMetaSlotsKey = "slots"
)
