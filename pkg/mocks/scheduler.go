package mocks

import (
	"context"
	"sync"

	"github.com/user/placeholder/pkg/ports"
)

// Pacer is a mock implementation of ports.Pacer.
// Every call to Pace returns the same Scheduler.
type Pacer struct {
	Scheduler *Scheduler

	// Recorded calls for verification
	PaceCalls []int
}

// NewPacer creates a Pacer whose scheduler never blocks.
func NewPacer() *Pacer {
	return &Pacer{Scheduler: &Scheduler{}}
}

func (m *Pacer) Pace(fps int) ports.FrameScheduler {
	m.PaceCalls = append(m.PaceCalls, fps)
	if m.Scheduler == nil {
		m.Scheduler = &Scheduler{}
	}
	return m.Scheduler
}

var _ ports.Pacer = (*Pacer)(nil)

// Scheduler is a synchronously stepped ports.FrameScheduler.
type Scheduler struct {
	mu sync.Mutex

	// WaitFunc is called with the 0-based index of the wait.
	WaitFunc func(ctx context.Context, n int) error

	Waits   int
	Stopped bool
}

func (m *Scheduler) Wait(ctx context.Context) error {
	m.mu.Lock()
	n := m.Waits
	m.Waits++
	m.mu.Unlock()

	if m.WaitFunc != nil {
		return m.WaitFunc(ctx, n)
	}
	return ctx.Err()
}

func (m *Scheduler) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stopped = true
}

var _ ports.FrameScheduler = (*Scheduler)(nil)
