//go:build linux

package runner

import (
	"fmt"

	"github.com/containerd/cgroups"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

// cgroupSampler is strictly additive precision: when the host exposes
// cgroup v1 memory accounting, it gives a second, kernel-accounted peak
// memory reading alongside the /proc/<pid>/status VmPeak sample. It is
// never the isolation mechanism (the rlimits set in child_linux.go are),
// and every method on it is safe to call on a nil receiver or after setup
// failed: a supervisor that can't touch cgroupfs just falls back to the
// /proc-only sampling path.
type cgroupSampler struct {
	control cgroups.Cgroup
}

// newCgroupSampler creates a throwaway memory cgroup for pid, sized at
// memoryLimitMB plus the same doubling headroom the rlimits use, so it
// never trips before the supervisor's own polling classification does.
// Any failure (no cgroupfs, no privilege, cgroup v2-only host) is treated
// as "enrichment unavailable", not an error.
func newCgroupSampler(pid int, memoryLimitMB float64) *cgroupSampler {
	limit := int64(memoryLimitMB * 1024 * 1024 * 2)
	resources := &specs.LinuxResources{
		Memory: &specs.LinuxMemory{Limit: &limit},
	}
	path := cgroups.StaticPath(fmt.Sprintf("/taker-unixrun/%d", pid))
	control, err := cgroups.New(cgroups.V1, path, resources)
	if err != nil {
		return nil
	}
	if err := control.Add(cgroups.Process{Pid: pid}); err != nil {
		control.Delete()
		return nil
	}
	return &cgroupSampler{control: control}
}

// peakMemoryMB returns the cgroup's reported peak resident memory, if the
// sampler was set up successfully and the host reports it.
func (s *cgroupSampler) peakMemoryMB() (float64, bool) {
	if s == nil || s.control == nil {
		return 0, false
	}
	stats, err := s.control.Stat(cgroups.IgnoreNotExist)
	if err != nil || stats.Memory == nil || stats.Memory.Usage == nil {
		return 0, false
	}
	return float64(stats.Memory.Usage.Max) / (1024 * 1024), true
}

// close tears down the throwaway cgroup; a no-op on a nil or never-set-up
// sampler.
func (s *cgroupSampler) close() {
	if s == nil || s.control == nil {
		return
	}
	s.control.Delete()
}
