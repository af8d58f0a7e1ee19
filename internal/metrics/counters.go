package metrics

import "github.com/san-kum/holesim/internal/engine"

// Counter counts events of one kind.
type Counter struct {
	name  string
	kind  engine.EventKind
	count int
}

func newCounter(name string, kind engine.EventKind) *Counter {
	return &Counter{name: name, kind: kind}
}

func NewCaptures() *Counter   { return newCounter("captures", engine.EventCaptured) }
func NewBounces() *Counter    { return newCounter("bounces", engine.EventHandoff) }
func NewRejections() *Counter { return newCounter("rejections", engine.EventGestureRejected) }

func (c *Counter) Name() string { return c.name }

func (c *Counter) OnEvent(e engine.Event) {
	if e.Kind == c.kind {
		c.count++
	}
}

func (c *Counter) OnFrame(s engine.Snapshot) {}

func (c *Counter) Value() float64 { return float64(c.count) }

func (c *Counter) Reset() { c.count = 0 }
