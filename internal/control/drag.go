package control

import (
	"sync"

	"github.com/san-kum/holesim/internal/dynamo"
)

// DragWindow is how far back, in seconds, Release looks when estimating
// the pointer velocity.
const DragWindow = 0.1

type pointerSample struct {
	p dynamo.Vec2
	t float64
}

// Drag turns a pointer drag into a fling velocity. Samples older than
// DragWindow are dropped as new ones arrive.
type Drag struct {
	mu      sync.Mutex
	active  bool
	samples []pointerSample
}

func NewDrag() *Drag {
	return &Drag{samples: make([]pointerSample, 0, 16)}
}

func (d *Drag) Begin(p dynamo.Vec2, t float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = true
	d.samples = append(d.samples[:0], pointerSample{p, t})
}

func (d *Drag) Move(p dynamo.Vec2, t float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return
	}
	d.samples = append(d.samples, pointerSample{p, t})
	cut := 0
	for cut < len(d.samples)-2 && t-d.samples[cut].t > DragWindow {
		cut++
	}
	d.samples = d.samples[cut:]
}

func (d *Drag) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Release ends the drag and returns the average velocity over the last
// DragWindow. A drag with no movement or no elapsed time yields zero.
func (d *Drag) Release(t float64) dynamo.Vec2 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return dynamo.Vec2{}
	}
	d.active = false

	var first *pointerSample
	for i := range d.samples {
		if t-d.samples[i].t <= DragWindow {
			first = &d.samples[i]
			break
		}
	}
	if first == nil || len(d.samples) < 2 {
		return dynamo.Vec2{}
	}
	last := d.samples[len(d.samples)-1]
	dt := last.t - first.t
	if dt <= 0 {
		return dynamo.Vec2{}
	}
	return last.p.Sub(first.p).Scale(1 / dt)
}
