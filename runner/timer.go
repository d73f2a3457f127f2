package runner

import "time"

// Timer is a monotonic wall-clock stopwatch, seconds in, seconds out. It
// relies on time.Time's monotonic reading, so it is immune to wall-clock
// adjustments happening mid-run.
type Timer struct {
	start time.Time
}

// Start pins t=0 to now.
func (t *Timer) Start() {
	t.start = time.Now()
}

// GetTime returns the elapsed seconds since Start.
func (t *Timer) GetTime() float64 {
	return time.Since(t.start).Seconds()
}
