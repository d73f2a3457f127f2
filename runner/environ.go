package runner

import "os"

// environ is a thin indirection over os.Environ so execplan.go's intent
// (snapshot the parent's environment before building the child's) reads
// clearly at the call site, and so tests can see it's the only place this
// package touches the process environment.
func environ() []string {
	return os.Environ()
}
