package runner

import "github.com/Boxjan/golib/logs"

// pkgLogger is the package-wide logger the supervisor (parent_linux.go)
// narrates itself through, installed by the CLI via SetLogger. A nil
// logger — the default — makes every log call below a no-op, so the
// package works unconfigured (tests, library embedders that don't care).
var pkgLogger *logs.Logger

// SetLogger installs the logger used for the supervisor's trace-level
// diagnostics (fork, handshake outcome, kill, termination).
func SetLogger(l *logs.Logger) {
	pkgLogger = l
}

func logDebug(format string, args ...interface{}) {
	if pkgLogger == nil {
		return
	}
	pkgLogger.Debug(format, args...)
}

func logWarning(format string, args ...interface{}) {
	if pkgLogger == nil {
		return
	}
	pkgLogger.Warning(format, args...)
}
