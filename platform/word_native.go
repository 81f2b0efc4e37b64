//go:build amd64 || arm64 || 386 || arm || ppc64 || ppc64le || s390x || riscv64 || loong64 || mips64 || mips64le

package platform

// NativeWordCAS is only defined where the Go runtime can implement 64-bit
// compare-and-swap with native instructions. On mips, mipsle and wasm the
// runtime emulates it with a lock (or has no threads), so this package
// and every package referencing the constant fail to build there.
//
// On arm the instructions also need GOARM=7 or later, which only Detect
// can tell.
const NativeWordCAS = true
