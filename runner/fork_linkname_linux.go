//go:build linux

package runner

import (
	"syscall"
	_ "unsafe"
)

// These link directly into the private fork/exec hooks the Go runtime
// exposes for package syscall's own ForkExec. Nothing between
// runtimeBeforeFork and runtimeAfterForkInChild may allocate, acquire a
// lock the runtime might already hold, or otherwise call into ordinary Go
// code: the child is a single thread of a forked, not-yet-exec'd process
// image and the rest of the runtime's goroutines do not exist in it.

//go:linkname runtimeBeforeFork syscall.runtime_BeforeFork
func runtimeBeforeFork()

//go:linkname runtimeAfterFork syscall.runtime_AfterFork
func runtimeAfterFork()

//go:linkname runtimeAfterForkInChild syscall.runtime_AfterForkInChild
func runtimeAfterForkInChild()

const sysCloneChildSignal = uintptr(syscall.SIGCHLD)
