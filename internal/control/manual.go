package control

import (
	"sync"

	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
)

// Manual replays flings pushed by a user interface, one per idle frame.
// Push may be called from another goroutine.
type Manual struct {
	mu      sync.Mutex
	pending []dynamo.Vec2
}

func NewManual() *Manual {
	return &Manual{}
}

// Push queues a fling velocity.
func (m *Manual) Push(vx, vy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, dynamo.Vec2{X: vx, Y: vy})
}

func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Next pops the oldest queued fling once the ball is idle.
func (m *Manual) Next(s engine.Snapshot, t float64) (float64, float64, bool) {
	if s.Phase != engine.PhaseIdle {
		return 0, 0, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return 0, 0, false
	}
	v := m.pending[0]
	m.pending = m.pending[1:]
	return v.X, v.Y, true
}
