package metrics

import "github.com/san-kum/holesim/internal/engine"

// TimeToCapture is the mean time from the first fling of a cycle to its
// capture. Cycles that never end in a capture do not count.
type TimeToCapture struct {
	name    string
	start   float64
	armed   bool
	sum     float64
	samples int
}

func NewTimeToCapture() *TimeToCapture {
	return &TimeToCapture{name: "time_to_capture"}
}

func (m *TimeToCapture) Name() string { return m.name }

func (m *TimeToCapture) OnEvent(e engine.Event) {
	switch e.Kind {
	case engine.EventFlingStarted:
		if !m.armed {
			m.start = e.Time
			m.armed = true
		}
	case engine.EventCaptured:
		if m.armed {
			m.sum += e.Time - m.start
			m.samples++
			m.armed = false
		}
	case engine.EventReset:
		m.armed = false
	}
}

func (m *TimeToCapture) OnFrame(s engine.Snapshot) {}

func (m *TimeToCapture) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *TimeToCapture) Samples() int { return m.samples }

func (m *TimeToCapture) Reset() {
	m.start = 0
	m.armed = false
	m.sum = 0
	m.samples = 0
}
