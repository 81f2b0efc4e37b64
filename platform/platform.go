// Package platform reports whether the atomics the stack relies on are
// lock-free on the running machine.
//
// The build itself already refuses architectures whose 64-bit
// compare-and-swap is emulated by the Go runtime. On 32-bit arm the
// runtime still picks ldrexd/strexd or a spinlock from GOARM and the cpu,
// which only Detect can tell.
package platform

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"unsafe"

	"github.com/brickingsoft/errors"
	"golang.org/x/sys/cpu"

	"github.com/cosmicexplorer/minimal-lock-free-stack/tagged"
)

// Capabilities describes the atomics available to the stack.
type Capabilities struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	// PointerBits is the native pointer width.
	PointerBits int `json:"pointer_bits"`
	// HandleBits is the width of a node handle, WordBits of a tagged word.
	HandleBits int `json:"handle_bits"`
	WordBits   int `json:"word_bits"`
	// PointerLockFree and WordLockFree report whether pointer-wide and
	// tagged-word-wide compare-and-swap are lock-free.
	PointerLockFree bool `json:"pointer_lock_free"`
	WordLockFree    bool `json:"word_lock_free"`
	// WideCAS reports a hardware compare-and-swap twice the pointer
	// width (cmpxchg16b, casp, cdsg). It is informational only.
	WideCAS bool `json:"wide_cas"`
}

// LockFree reports whether both the pointer and tagged-word atomics are
// lock-free.
func (c Capabilities) LockFree() bool {
	return c.PointerLockFree && c.WordLockFree
}

func (c Capabilities) String() string {
	return fmt.Sprintf(
		"%s/%s pointer=%d handle=%d word=%d pointer_lock_free=%t word_lock_free=%t wide_cas=%t",
		c.OS, c.Arch, c.PointerBits, c.HandleBits, c.WordBits,
		c.PointerLockFree, c.WordLockFree, c.WideCAS,
	)
}

// Detect inspects the running machine.
func Detect() Capabilities {
	return Capabilities{
		OS:              runtime.GOOS,
		Arch:            runtime.GOARCH,
		PointerBits:     int(unsafe.Sizeof(uintptr(0))) * 8,
		HandleBits:      int(unsafe.Sizeof(tagged.Handle(0))) * 8,
		WordBits:        int(unsafe.Sizeof(tagged.Word(0))) * 8,
		PointerLockFree: pointerLockFree(runtime.GOARCH),
		WordLockFree:    wordLockFree(runtime.GOARCH),
		WideCAS:         wideCAS(runtime.GOARCH),
	}
}

// LockFree reports whether the stack runs lock-free on this machine.
func LockFree() bool {
	return Detect().LockFree()
}

// Require returns an error matching ErrNotLockFree when c is not lock-free.
// The error carries the os and arch as meta.
func (c Capabilities) Require() error {
	if !c.LockFree() {
		return errors.From(
			ErrNotLockFree,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaArch, c.Arch),
			errors.WithMeta(errMetaOS, c.OS),
		)
	}
	return nil
}

// Require returns an error matching ErrNotLockFree when LockFree is false.
func Require() error {
	return Detect().Require()
}

func pointerLockFree(arch string) bool {
	switch arch {
	case "wasm":
		return false
	default:
		return true
	}
}

func wordLockFree(arch string) bool {
	switch arch {
	case "arm":
		return armWordLockFree(goarm(), cpu.ARM.HasLPAE)
	case "amd64", "arm64", "386", "ppc64", "ppc64le", "s390x", "riscv64", "loong64", "mips64", "mips64le":
		return NativeWordCAS
	default:
		return false
	}
}

func wideCAS(arch string) bool {
	switch arch {
	case "amd64":
		return cpu.X86.HasCX16
	case "arm64":
		return cpu.ARM64.HasATOMICS
	case "s390x":
		return true
	default:
		return false
	}
}

// armWordLockFree reports whether the runtime uses ldrexd/strexd. A
// GOARM>=7 binary always does. Older targets pick them at startup on
// armv7 cores with LPAE and take a spinlock otherwise; x/sys/cpu exposes
// only the LPAE bit, so that case is approximated by it.
func armWordLockFree(goarm int, lpae bool) bool {
	return goarm >= 7 || lpae
}

// goarm returns the GOARM the binary was built with, or 0 if unknown.
func goarm() int {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return 0
	}
	for _, setting := range info.Settings {
		if setting.Key == "GOARM" {
			return parseGOARM(setting.Value)
		}
	}
	return 0
}

// parseGOARM parses values such as "7" or "6,softfloat".
func parseGOARM(value string) int {
	v, _, _ := strings.Cut(value, ",")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
