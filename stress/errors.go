package stress

import (
	"github.com/brickingsoft/errors"
)

var (
	ErrInvalidOption = errors.Define("stress: invalid option")
	ErrTimeout       = errors.Define("stress: run timed out")
	ErrExecutor      = errors.Define("stress: executor rejected worker")
	ErrMismatch      = errors.Define("stress: popped values do not match pushed values")
)

func IsInvalidOption(err error) bool {
	return errors.Is(err, ErrInvalidOption)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func IsMismatch(err error) bool {
	return errors.Is(err, ErrMismatch)
}

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "stress"
	errMetaOption = "option"
	errMetaWorker = "worker"
	errMetaReport = "report"
)
