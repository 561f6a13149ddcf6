package driver

import (
	"runtime"
	"time"

	"mini-gl/internal/config"
)

// spinMargin is the tail of each wait spent yielding instead of sleeping,
// since sleeps overshoot by roughly that much.
const spinMargin = 200 * time.Microsecond

// FPSLimiter paces the loop to the configured frame cap.
type FPSLimiter struct {
	deadline time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// Wait blocks until the next frame slot. While idle the idle rate applies
// instead of the frame cap. Deadlines advance by whole intervals so short
// hitches are absorbed; falling more than one interval behind starts a new
// schedule from now.
func (f *FPSLimiter) Wait(idle bool) {
	interval := frameInterval(idle)
	if interval == 0 {
		f.deadline = time.Time{}
		return
	}

	now := time.Now()
	if f.deadline.IsZero() || now.Sub(f.deadline) > interval {
		f.deadline = now.Add(interval)
	} else {
		f.deadline = f.deadline.Add(interval)
	}
	sleepUntil(f.deadline)
}

// frameInterval is zero when uncapped.
func frameInterval(idle bool) time.Duration {
	fps := config.GetFPSLimit()
	if idle {
		fps = config.GetIdleFPS()
	}
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

func sleepUntil(deadline time.Time) {
	if d := time.Until(deadline) - spinMargin; d > 0 {
		time.Sleep(d)
	}
	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}
