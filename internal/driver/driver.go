// Package driver runs the frame loop on behalf of the host application.
// The renderer only exposes a step function and a running flag; the driver
// decides when to call it, and stopping is simply no longer calling it.
package driver

import (
	"context"
	"time"

	"mini-gl/internal/graphics"
	"mini-gl/internal/profiling"
)

// Host is the window system side of the loop.
type Host interface {
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
}

// Frame is what the driver steps each tick.
type Frame interface {
	Running() bool
	RenderFrame() error
}

// frameCounter is implemented by frames that count what they draw. A frame
// that drew while events were handled, such as a renderer restarted by a key
// press, is swapped as is instead of being drawn a second time.
type frameCounter interface {
	Frames() int
}

func drawn(frame Frame) int {
	if c, ok := frame.(frameCounter); ok {
		return c.Frames()
	}
	return 0
}

// Options tunes the loop.
type Options struct {
	// BeforeFrame runs on the loop thread before each tick, stopped or not.
	// It is where work handed over from other goroutines is applied.
	BeforeFrame func()
	// SlowFrame is the processing time above which a frame is logged with
	// its slowest sections. Zero disables the check.
	SlowFrame time.Duration
}

// Run ticks until the host asks to close or ctx is done. Each tick polls
// events, runs BeforeFrame, renders and swaps when the frame is running,
// then waits for the next slot. Frame errors are logged, not returned.
func Run(ctx context.Context, host Host, frame Frame, opts Options) error {
	limiter := NewFPSLimiter()
	for !host.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		tick(host, frame, opts)
		limiter.Wait(!frame.Running())
	}
	return nil
}

func tick(host Host, frame Frame, opts Options) {
	profiling.ResetFrame()
	start := time.Now()

	before := drawn(frame)
	func() { defer profiling.Track("host.PollEvents")(); host.PollEvents() }()

	if opts.BeforeFrame != nil {
		opts.BeforeFrame()
	}
	if !frame.Running() {
		return
	}

	if drawn(frame) == before {
		if err := frame.RenderFrame(); err != nil {
			graphics.Logger().Error("frame failed", "err", err)
		}
	}
	func() { defer profiling.Track("host.SwapBuffers")(); host.SwapBuffers() }()

	if d := time.Since(start); opts.SlowFrame > 0 && d > opts.SlowFrame {
		graphics.Logger().Warn("slow frame", "took", d, "top", profiling.TopN(5))
	}
}
