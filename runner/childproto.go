package runner

// childStep names the point in the child's pre-exec setup where a failure
// was detected. The child can only report one of the childStepTemplates
// buffers across the handshake pipe — see child_linux.go — with its
// trailing errno digits patched in place.
type childStep int32

const (
	childStepNone childStep = iota
	childStepSetsid
	childStepDisableCoreDump
	childStepRlimitCPU
	childStepRlimitAS
	childStepRlimitData
	childStepRlimitStack
	childStepChdir
	childStepOpenStdin
	childStepOpenStdout
	childStepOpenStderr
	childStepDupStdin
	childStepDupStdout
	childStepDupStderr
	childStepExec
)

var childStepText = [...]string{
	childStepNone:            "none",
	childStepSetsid:          "setsid",
	childStepDisableCoreDump: "disabling core dumps",
	childStepRlimitCPU:       "setting cpu rlimit",
	childStepRlimitAS:        "setting address-space rlimit",
	childStepRlimitData:      "setting data rlimit",
	childStepRlimitStack:     "setting stack rlimit",
	childStepChdir:           "changing to workingDir",
	childStepOpenStdin:       "opening stdinRedir",
	childStepOpenStdout:      "opening stdoutRedir",
	childStepOpenStderr:      "opening stderrRedir",
	childStepDupStdin:        "duplicating stdin",
	childStepDupStdout:       "duplicating stdout",
	childStepDupStderr:       "duplicating stderr",
	childStepExec:            "execve",
}

func (s childStep) String() string {
	if s < 0 || int(s) >= len(childStepText) {
		return "unknown step"
	}
	return childStepText[s]
}
