package runner

import (
	"testing"
	"time"
)

func TestTimerGetTimeIncreasesMonotonically(t *testing.T) {
	var timer Timer
	timer.Start()

	first := timer.GetTime()
	time.Sleep(5 * time.Millisecond)
	second := timer.GetTime()

	if first < 0 {
		t.Fatalf("GetTime() = %v right after Start, want >= 0", first)
	}
	if second <= first {
		t.Fatalf("GetTime() did not increase: first=%v second=%v", first, second)
	}
}
