package runner

// Info is the runner's static self-description, exposed for callers that
// want to report what executed a judging run without hardcoding it
// themselves.
type Info struct {
	Name        string
	Description string
	Author      string
	Version     string
	VersionCode int
	License     string
	Features    []string
}

// RunnerInfo returns the runner's fixed self-description record. The
// feature list is intentionally empty: this runner declares no optional
// capabilities beyond the one execution primitive it implements.
func RunnerInfo() Info {
	return Info{
		Name:        "Taker UNIX Runner",
		Description: "Sandboxed single-process runner enforcing CPU, wall-clock and memory limits",
		Author:      "taker-judge",
		Version:     "1.0.0",
		VersionCode: 100,
		License:     "GPL-3+",
		Features:    []string{},
	}
}
