package engine

import (
	"context"
	"sync"
	"time"
)

// Runner drives a Controller from a frame clock. The controller is not
// safe for concurrent use; Runner serializes access while Run is active.
type Runner struct {
	mu   sync.Mutex
	ctrl *Controller
	dt   float64
}

// NewRunner steps ctrl at fps frames per second of simulated time.
func NewRunner(ctrl *Controller, fps int) *Runner {
	if fps <= 0 {
		fps = 60
	}
	return &Runner{ctrl: ctrl, dt: 1.0 / float64(fps)}
}

func (r *Runner) Dt() float64 { return r.dt }

// Do runs fn with exclusive access to the controller.
func (r *Runner) Do(fn func(c *Controller)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.ctrl)
}

func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctrl.Snapshot()
}

// Advance steps n frames immediately.
func (r *Runner) Advance(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < n; i++ {
		r.ctrl.Step(r.dt)
	}
}

// AdvanceUntil steps until done reports true or maxFrames have run, and
// returns the number of frames stepped.
func (r *Runner) AdvanceUntil(done func(c *Controller) bool, maxFrames int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < maxFrames; i++ {
		if done(r.ctrl) {
			return i
		}
		r.ctrl.Step(r.dt)
	}
	return maxFrames
}

// Run steps one frame per tick in real time until ctx ends.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(r.dt * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Advance(1)
		}
	}
}
