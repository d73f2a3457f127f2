//go:build linux

package runner

import (
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// fileExists reports whether path is something on the filesystem.
func fileExists(path string) bool {
	var st unix.Stat_t
	return unix.Stat(path, &st) == nil
}

// directoryIsGood reports whether path exists and is a directory.
func directoryIsGood(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFDIR
}

// fileIsExecutable reports whether path is a regular file this process
// may execute.
func fileIsExecutable(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}

// fileIsReadable reports whether path is a file this process may read.
func fileIsReadable(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return false
	}
	return unix.Access(path, unix.R_OK) == nil
}

// setLimit sets both the soft and hard rlimit for resource to value. It is
// exposed for unit tests; the fork path itself sets rlimits inside the raw
// child body in child_linux.go, where calling into this function (which
// may allocate) would be unsafe.
func setLimit(resource int, value uint64) error {
	rlim := unix.Rlimit{Cur: value, Max: value}
	return unix.Setrlimit(resource, &rlim)
}

// signalNameOf renders a signal number as a human name, or "unknown" if
// the OS doesn't recognize it.
// syscall.Signal.String() already falls back to "signal %d" for numbers
// it doesn't have a name table entry for, which is where we detect
// "unknown" rather than leaking the numeric fallback text.
func signalNameOf(sig int) string {
	if sig == 0 {
		return ""
	}
	s := syscall.Signal(sig)
	name := s.String()
	if strings.HasPrefix(name, "signal ") {
		return "unknown"
	}
	return name
}
