//go:build !linux

package runner

// doExecute's fork/exec/supervise implementation is Linux-only: it leans
// on go:linkname into the runtime's fork hooks and /proc for sampling,
// neither of which exist on other POSIX systems. A port to another OS
// would need its own child_<os>.go, parent_<os>.go and sample_<os>.go.
func doExecute(p *Parameters) (Results, error) {
	return Results{}, newRunnerError("this platform has no supervised-child implementation", nil)
}
