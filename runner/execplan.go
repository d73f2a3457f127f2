//go:build linux

package runner

import (
	"math"
	"strings"
	"syscall"
)

// execPlan holds every byte the child needs, pre-built in the safe parent
// context. Nothing in it may be constructed after the fork: building a
// []byte or *byte from a string allocates, and allocation between fork and
// exec is unsafe.
type execPlan struct {
	path *byte
	argv []*byte
	envp []*byte

	chdir *byte // nil: stay in the parent's cwd

	stdinPath  *byte // nil: inherit fd 0
	stdoutPath *byte // nil: inherit fd 1
	stderrPath *byte // nil: inherit fd 2

	cpuLimitSeconds uint64
	asLimitBytes    uint64
	dataLimitBytes  uint64
	stackLimitBytes uint64
}

func buildExecPlan(p *Parameters) (*execPlan, error) {
	path, err := syscall.BytePtrFromString(p.Executable)
	if err != nil {
		return nil, newRunnerError("executable path has an embedded NUL", err)
	}

	argvStrings := append([]string{p.Executable}, p.Args...)
	argv, err := bytePtrSliceFromStrings(argvStrings)
	if err != nil {
		return nil, newRunnerError("an argument has an embedded NUL", err)
	}

	envStrings := buildEnvStrings(p)
	envp, err := bytePtrSliceFromStrings(envStrings)
	if err != nil {
		return nil, newRunnerError("an environment entry has an embedded NUL", err)
	}

	// The kernel's own CPU-time kill races the parent's polling classifier,
	// so the rlimit carries a 0.2s cushion to let the poller win. The
	// memory rlimits carry a 2x safety factor over the declared limit
	// (converted from MB to bytes) for the same reason: the poller's
	// classification, not the kernel's SIGSEGV/SIGKILL, should be what
	// decides memory-limit verdicts.
	memLimitBytes := uint64(math.Ceil(p.MemoryLimit * 1048576))

	plan := &execPlan{
		path: path,
		argv: argv,
		envp: envp,

		cpuLimitSeconds: ceilSeconds(p.TimeLimit + 0.2),
		asLimitBytes:    2 * memLimitBytes,
		dataLimitBytes:  2 * memLimitBytes,
		stackLimitBytes: 2 * memLimitBytes,
	}

	if p.WorkingDir != "" {
		b, err := syscall.BytePtrFromString(p.WorkingDir)
		if err != nil {
			return nil, newRunnerError("workingDir path has an embedded NUL", err)
		}
		plan.chdir = b
	}
	if p.StdinRedir != "" {
		b, err := syscall.BytePtrFromString(p.StdinRedir)
		if err != nil {
			return nil, newRunnerError("stdinRedir path has an embedded NUL", err)
		}
		plan.stdinPath = b
	}
	if p.StdoutRedir != "" {
		b, err := syscall.BytePtrFromString(p.StdoutRedir)
		if err != nil {
			return nil, newRunnerError("stdoutRedir path has an embedded NUL", err)
		}
		plan.stdoutPath = b
	}
	if p.StderrRedir != "" {
		b, err := syscall.BytePtrFromString(p.StderrRedir)
		if err != nil {
			return nil, newRunnerError("stderrRedir path has an embedded NUL", err)
		}
		plan.stderrPath = b
	}
	return plan, nil
}

// buildEnvStrings applies the clearEnv/env rules: clearEnv true starts
// from nothing, otherwise from os.Environ(); entries in env are then
// applied on top, one NAME=VALUE per entry, overriding any inherited
// entry of the same name rather than shadowing it with a duplicate.
func buildEnvStrings(p *Parameters) []string {
	var inherited []string
	if !p.ClearEnv {
		inherited = environ()
	}

	base := make([]string, 0, len(inherited)+len(p.Env))
	for _, kv := range inherited {
		name := kv
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			name = kv[:idx]
		}
		if _, overridden := p.Env[name]; overridden {
			continue
		}
		base = append(base, kv)
	}
	for name, value := range p.Env {
		base = append(base, name+"="+value)
	}
	return base
}

func bytePtrSliceFromStrings(ss []string) ([]*byte, error) {
	out := make([]*byte, 0, len(ss)+1)
	for _, s := range ss {
		b, err := syscall.BytePtrFromString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	out = append(out, nil)
	return out, nil
}

func ceilSeconds(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	whole := uint64(seconds)
	if float64(whole) < seconds {
		whole++
	}
	return whole
}
