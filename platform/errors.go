package platform

import (
	"github.com/brickingsoft/errors"
)

var (
	ErrNotLockFree = errors.Define("platform: 64-bit compare-and-swap is not lock-free")
)

func IsNotLockFree(err error) bool {
	return errors.Is(err, ErrNotLockFree)
}

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "platform"
	errMetaArch   = "arch"
	errMetaOS     = "os"
)
