package ports

import "context"

// Pacer creates frame schedulers. Every render gets its own scheduler.
type Pacer interface {
	Pace(fps int) FrameScheduler
}

// FrameScheduler decides when the next frame may be painted.
type FrameScheduler interface {
	// Wait blocks until the next frame is due or ctx is done.
	Wait(ctx context.Context) error

	// Stop releases any timer held by the scheduler.
	Stop()
}
