package runner

// classify applies the limit-classification ordering. Each check
// overwrites the previous verdict if it trips, so when more than one
// limit is exceeded in the same tick the last check to run — memory,
// then idle, then nothing further — wins. It never resets a status back
// to running: callers start r.Status at StatusRunning and only this
// function (or termination handling) moves it to a terminal value.
func classify(p *Parameters, r *Results) {
	if r.Time > p.TimeLimit {
		r.Status = StatusTimeLimit
	}
	if r.ClockTime > p.IdleLimit {
		r.Status = StatusIdleLimit
	}
	if r.Memory > p.MemoryLimit {
		r.Status = StatusMemoryLimit
	}
}
