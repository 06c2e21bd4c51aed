// Package scheduler paces frame painting for the recorder.
package scheduler

import (
	"context"
	"time"

	"github.com/user/placeholder/pkg/ports"
)

// Realtime paces frames on a wall-clock ticker at 1/fps intervals.
type Realtime struct{}

// NewRealtime creates a wall-clock pacer.
func NewRealtime() *Realtime {
	return &Realtime{}
}

// Pace implements ports.Pacer.
func (r *Realtime) Pace(fps int) ports.FrameScheduler {
	if fps <= 0 {
		fps = 1
	}
	return &tickerScheduler{
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
		first:  true,
	}
}

type tickerScheduler struct {
	ticker *time.Ticker
	first  bool
}

// Wait returns immediately for the first frame, then once per tick.
func (s *tickerScheduler) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.first {
		s.first = false
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ticker.C:
		return nil
	}
}

func (s *tickerScheduler) Stop() {
	s.ticker.Stop()
}

// Immediate paints frames as fast as the encoder accepts them. It is used
// when the output only needs the right frame count, not real-time pacing.
type Immediate struct{}

// NewImmediate creates a pacer that never waits.
func NewImmediate() *Immediate {
	return &Immediate{}
}

// Pace implements ports.Pacer.
func (i *Immediate) Pace(fps int) ports.FrameScheduler {
	return immediateScheduler{}
}

type immediateScheduler struct{}

func (immediateScheduler) Wait(ctx context.Context) error {
	return ctx.Err()
}

func (immediateScheduler) Stop() {}

// Ensure implementations satisfy the interfaces
var (
	_ ports.Pacer = (*Realtime)(nil)
	_ ports.Pacer = (*Immediate)(nil)
)
