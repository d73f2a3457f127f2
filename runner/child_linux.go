//go:build linux

package runner

import (
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// forkLock serializes the forks made by doExecute within this package. It
// is not syscall.ForkLock: code elsewhere in the process that creates file
// descriptors or threads does not take it.
var forkLock sync.RWMutex

// childFailureExitCode is what the child _exit()s with if it cannot reach
// execve. The parent does not look at it: the pre-exec failure is
// recognized, and reported, from the handshake pipe message alone.
const childFailureExitCode = 42

// forkAndExecChild forks the calling (locked-to-its-OS-thread) goroutine
// and, in the child, applies plan and execve's into it. It returns to the
// parent with the child's pid. On any child-side failure before execve,
// the child patches the matching childStepTemplates entry with the errno
// that failed and writes it to pipeFd, then exits with
// childFailureExitCode instead of ever returning.
//
// Nothing below runtimeAfterForkInChild may allocate, take a lock the
// runtime itself might be holding, or call into scheduler-aware Go code:
// the forked child is one raw thread of execution until execve replaces
// its image. Every value forkAndExecChild touches after that point was
// prepared by buildExecPlan back in the parent.
//
//go:noinline
//go:norace
func forkAndExecChild(plan *execPlan, pipeFd int) (pid uintptr, err1 syscall.Errno) {
	var step childStep

	runtimeBeforeFork()
	pid, _, err1 = syscall.RawSyscall6(syscall.SYS_CLONE, uintptr(syscall.SIGCHLD), 0, 0, 0, 0, 0)
	if err1 != 0 || pid != 0 {
		runtimeAfterFork()
		return pid, err1
	}

	runtimeAfterForkInChild()

	_, _, err1 = syscall.RawSyscall(syscall.SYS_SETSID, 0, 0, 0)
	if err1 != 0 && err1 != syscall.EPERM {
		step = childStepSetsid
		goto childerror
	}

	// A killed submission never leaves a core file behind.
	if err1 = setChildRlimit(syscall.RLIMIT_CORE, 0, 0); err1 != 0 {
		step = childStepDisableCoreDump
		goto childerror
	}

	if plan.cpuLimitSeconds > 0 {
		// Both soft and hard rlimit are set to the same cushioned value;
		// this is a last-resort backstop behind the parent's own
		// polling-based time-limit enforcement, which is expected to win.
		if err1 = setChildRlimit(syscall.RLIMIT_CPU, plan.cpuLimitSeconds, plan.cpuLimitSeconds); err1 != 0 {
			step = childStepRlimitCPU
			goto childerror
		}
	}
	if plan.asLimitBytes > 0 {
		if err1 = setChildRlimit(syscall.RLIMIT_AS, plan.asLimitBytes, plan.asLimitBytes); err1 != 0 {
			step = childStepRlimitAS
			goto childerror
		}
	}
	if plan.dataLimitBytes > 0 {
		if err1 = setChildRlimit(syscall.RLIMIT_DATA, plan.dataLimitBytes, plan.dataLimitBytes); err1 != 0 {
			step = childStepRlimitData
			goto childerror
		}
	}
	if plan.stackLimitBytes > 0 {
		if err1 = setChildRlimit(syscall.RLIMIT_STACK, plan.stackLimitBytes, plan.stackLimitBytes); err1 != 0 {
			step = childStepRlimitStack
			goto childerror
		}
	}

	if plan.chdir != nil {
		_, _, err1 = syscall.RawSyscall(syscall.SYS_CHDIR, uintptr(unsafe.Pointer(plan.chdir)), 0, 0)
		if err1 != 0 {
			step = childStepChdir
			goto childerror
		}
	}

	if plan.stdinPath != nil {
		var dupFailed bool
		if err1, dupFailed = redirectStdio(plan.stdinPath, 0, syscall.O_RDONLY, 0); err1 != 0 {
			step = childStepOpenStdin
			if dupFailed {
				step = childStepDupStdin
			}
			goto childerror
		}
	}
	if plan.stdoutPath != nil {
		var dupFailed bool
		if err1, dupFailed = redirectStdio(plan.stdoutPath, 1, syscall.O_WRONLY|syscall.O_CREAT|syscall.O_TRUNC, 0644); err1 != 0 {
			step = childStepOpenStdout
			if dupFailed {
				step = childStepDupStdout
			}
			goto childerror
		}
	}
	if plan.stderrPath != nil {
		var dupFailed bool
		if err1, dupFailed = redirectStdio(plan.stderrPath, 2, syscall.O_WRONLY|syscall.O_CREAT|syscall.O_TRUNC, 0644); err1 != 0 {
			step = childStepOpenStderr
			if dupFailed {
				step = childStepDupStderr
			}
			goto childerror
		}
	}

	_, _, err1 = syscall.RawSyscall(syscall.SYS_EXECVE,
		uintptr(unsafe.Pointer(plan.path)),
		uintptr(unsafe.Pointer(&plan.argv[0])),
		uintptr(unsafe.Pointer(&plan.envp[0])))
	step = childStepExec

childerror:
	buf := childStepTemplates[step]
	writeChildErrno(buf, uint32(err1))
	syscall.RawSyscall(syscall.SYS_WRITE, uintptr(pipeFd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	for {
		syscall.RawSyscall(syscall.SYS_EXIT_GROUP, uintptr(childFailureExitCode), 0, 0)
	}
}

// setChildRlimit uses prlimit64 rather than setrlimit/getrlimit so the same
// code works unmodified on every Linux architecture the runner targets.
//
//go:noinline
//go:norace
//go:nosplit
func setChildRlimit(resource int, cur, max uint64) syscall.Errno {
	rlim := syscall.Rlimit{Cur: cur, Max: max}
	_, _, errno := syscall.RawSyscall6(syscall.SYS_PRLIMIT64, 0, uintptr(resource), uintptr(unsafe.Pointer(&rlim)), 0, 0, 0)
	return errno
}

// redirectStdio opens path and lands the result on targetFd via dup3,
// using openat/dup3 instead of open/dup2 for the same cross-architecture
// reason as setChildRlimit (some arches never had open/dup2 syscall
// numbers to begin with). The fd opened by openat is always closed once
// dup3 has landed it on targetFd (or failed to), so no extra descriptor
// survives into the exec'd child. dupFailed tells the caller whether a
// non-zero errno came from the dup3 step rather than the openat step, so
// it can report the matching childStep.
//
//go:noinline
//go:norace
//go:nosplit
func redirectStdio(path *byte, targetFd int, flags int, mode uint32) (errno syscall.Errno, dupFailed bool) {
	atFdCwd := unix.AT_FDCWD
	fd, _, errno := syscall.RawSyscall6(syscall.SYS_OPENAT, uintptr(atFdCwd), uintptr(unsafe.Pointer(path)), uintptr(flags), uintptr(mode), 0, 0)
	if errno != 0 {
		return errno, false
	}
	if int(fd) == targetFd {
		return 0, false
	}
	_, _, dupErrno := syscall.RawSyscall(syscall.SYS_DUP3, fd, uintptr(targetFd), 0)
	syscall.RawSyscall(syscall.SYS_CLOSE, fd, 0, 0)
	return dupErrno, dupErrno != 0
}
