package delivery

import (
	"errors"
	"sync"

	"github.com/user/placeholder/pkg/pipeline"
)

// ErrBusy is returned by Begin while another render is in progress.
var ErrBusy = errors.New("delivery: a render is already in progress")

// Tracker holds the transient in-progress flag and the progress of the
// current render. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	busy     bool
	progress pipeline.Progress
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin marks a render as started.
func (t *Tracker) Begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.busy {
		return ErrBusy
	}
	t.busy = true
	t.progress = pipeline.Progress{State: pipeline.StateIdle}
	return nil
}

// Update records progress. Updates after Done are ignored.
func (t *Tracker) Update(p pipeline.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.busy {
		t.progress = p
	}
}

// Done resets the tracker to idle. It must be called on every exit path.
func (t *Tracker) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = false
	t.progress = pipeline.Progress{}
}

// InProgress reports whether a render is running.
func (t *Tracker) InProgress() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy
}

// Progress returns the current completion fraction in [0, 1].
func (t *Tracker) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress.Fraction()
}

// Snapshot returns the last reported progress.
func (t *Tracker) Snapshot() pipeline.Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}
