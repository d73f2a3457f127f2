//go:build linux

package runner

import (
	"runtime"
	"syscall"
	"time"
)

// pollInterval is the supervision loop's sleep granularity: it bounds
// both how far a program can run past an announced limit before
// being killed, and the drift in clockTime.
const pollInterval = time.Millisecond

// doExecute runs one supervised execution of p: builds the fork plan,
// forks and execs the child, performs the handshake read, and then drives
// the polling loop until a terminal verdict is reached. Every error it
// returns is a RunnerError — the caller (Execute) converts it into a
// run-fail Results rather than propagating it.
func doExecute(p *Parameters) (Results, error) {
	plan, err := buildExecPlan(p)
	if err != nil {
		return Results{}, err
	}

	var fds [2]int
	if err := syscall.Pipe2(fds[:], syscall.O_CLOEXEC); err != nil {
		return Results{}, newRunnerError("creating handshake pipe", err)
	}
	readEnd := newFileDescriptorOwner(fds[0])
	writeEnd := newFileDescriptorOwner(fds[1])
	defer readEnd.Close()

	runtime.LockOSThread()
	forkLock.Lock()
	pid, errno := forkAndExecChild(plan, fds[1])
	forkLock.Unlock()
	runtime.UnlockOSThread()

	if errno != 0 {
		writeEnd.Close()
		logWarning("fork failed, errno: {}", errno)
		return Results{}, newRunnerError("fork failed", errno)
	}
	logDebug("forked child, pid: {}", pid)
	// The child has its own copy of the write end; the parent's must be
	// closed so that the child's exec (via CLOEXEC) is what produces EOF,
	// not a write end the parent itself is still holding open.
	writeEnd.Close()

	timer := &Timer{}
	timer.Start()

	lock, err := AcquireActiveChildLock(int(pid))
	if err != nil {
		syscall.Kill(int(pid), syscall.SIGKILL)
		var ws syscall.WaitStatus
		syscall.Wait4(int(pid), &ws, 0, nil)
		return Results{}, err
	}
	defer lock.Release()

	return handleParent(int(pid), fds[0], timer, p)
}

// handleParent performs the handshake read and, if the child execed
// successfully, drives the polling loop to a terminal verdict.
func handleParent(pid int, readFd int, timer *Timer, p *Parameters) (Results, error) {
	if comment, failed, err := readHandshake(readFd); err != nil {
		logWarning("handshake read failed, pid: {}, err: {}", pid, err)
		reapAfterFailure(pid)
		return Results{}, err
	} else if failed {
		logDebug("child reported pre-exec failure, pid: {}, comment: {}", pid, comment)
		reapAfterFailure(pid)
		return Results{Status: StatusRunFail, Comment: comment}, nil
	}
	logDebug("handshake clean, pid: {} is running", pid)

	cg := newCgroupSampler(pid, p.MemoryLimit)
	defer cg.close()

	results := Results{Status: StatusRunning}
	for results.Status == StatusRunning {
		sampleResources(pid, cg, &results)
		results.ClockTime = timer.GetTime()
		classify(p, &results)

		if results.Status.Terminal() {
			logDebug("pid: {} exceeded a limit, status: {}, time: {}, clockTime: {}, memory: {}", pid, results.Status, results.Time, results.ClockTime, results.Memory)
			syscall.Kill(pid, syscall.SIGKILL)
			var ws syscall.WaitStatus
			var ru syscall.Rusage
			syscall.Wait4(pid, &ws, 0, &ru)
			results.ClockTime = timer.GetTime()
			applyRusage(&results, &ru)
			break
		}

		var ws syscall.WaitStatus
		var ru syscall.Rusage
		wpid, err := syscall.Wait4(pid, &ws, syscall.WNOHANG|syscall.WUNTRACED, &ru)
		switch {
		case err != nil:
			syscall.Kill(pid, syscall.SIGKILL)
			syscall.Wait4(pid, &ws, 0, nil)
			return Results{}, newRunnerError("wait4 failed", err)
		case wpid == 0:
			time.Sleep(pollInterval)
			continue
		default:
			results.ClockTime = timer.GetTime()
			if err := interpretTermination(&results, ws, &ru); err != nil {
				logWarning("pid: {} left an unexpected wait status", pid)
				syscall.Kill(pid, syscall.SIGKILL)
				syscall.Wait4(pid, &ws, 0, nil)
				return Results{}, err
			}
			logDebug("pid: {} terminated, exitCode: {}, signal: {}, status: {}", pid, results.ExitCode, results.Signal, results.Status)
			classify(p, &results)
		}
	}
	return results, nil
}

// readHandshake distinguishes the three handshake outcomes: a
// child-failure message (failed=true, comment populated), a clean EOF
// (failed=false), or a protocol error (non-nil error).
func readHandshake(fd int) (comment string, failed bool, err error) {
	var lenBuf [4]byte
	n, rerr := readFull(fd, lenBuf[:])
	if rerr != nil {
		return "", false, newRunnerError("reading handshake length", rerr)
	}
	if n == 0 {
		return "", false, nil // EOF: exec succeeded
	}
	if n != 4 {
		return "", false, newRunnerError("short handshake length read", nil)
	}

	length := nativeEndian.Uint32(lenBuf[:])
	msg := make([]byte, length)
	n, rerr = readFull(fd, msg)
	if rerr != nil {
		return "", false, newRunnerError("reading handshake message", rerr)
	}
	if uint32(n) != length {
		return "", false, newRunnerError("short handshake message read", nil)
	}
	return string(msg), true, nil
}

// readFull reads until buf is full, a read returns 0 (EOF), or a read
// fails; it does not treat a partial-then-EOF read as an error itself,
// leaving that judgment to the caller (which compares n against what it
// expected).
func readFull(fd int, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := syscall.Read(fd, buf[total:])
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		total += n
	}
	return total, nil
}

func reapAfterFailure(pid int) {
	var ws syscall.WaitStatus
	syscall.Wait4(pid, &ws, 0, nil)
}

// applyRusage folds the final rusage into results: time and memory both
// get one last, more precise reading, without touching a status a limit
// already set.
func applyRusage(results *Results, ru *syscall.Rusage) {
	results.Time = float64(ru.Utime.Sec) + float64(ru.Utime.Usec)/1e6 + float64(ru.Stime.Sec) + float64(ru.Stime.Usec)/1e6
	if results.Memory == 0 {
		results.Memory = float64(ru.Maxrss) / 1024
		results.Comment = "memory measurement is not precise!"
	}
}

// interpretTermination handles the case wait4 actually reported exit or
// signal. An unexpected status (stopped/continued slipped
// through despite WUNTRACED, or anything else WIFEXITED/WIFSIGNALED don't
// recognize) is a parent-side protocol failure, not a verdict.
func interpretTermination(results *Results, ws syscall.WaitStatus, ru *syscall.Rusage) error {
	switch {
	case ws.Exited():
		results.ExitCode = ws.ExitStatus()
		if results.ExitCode == 0 {
			results.Status = StatusOK
		} else {
			results.Status = StatusRuntimeError
		}
	case ws.Signaled():
		sig := int(ws.Signal())
		results.Signal = sig
		results.SignalName = signalNameOf(sig)
		results.Status = StatusRuntimeError
	default:
		return newRunnerError("child left stopped or continued instead of terminating", nil)
	}
	applyRusage(results, ru)
	return nil
}
