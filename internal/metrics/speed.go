package metrics

import (
	"math"

	"github.com/san-kum/holesim/internal/engine"
)

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) OnEvent(e engine.Event) {
	if e.Kind == engine.EventFlingStarted {
		p.peak = math.Max(p.peak, e.Velocity.Len())
	}
}

func (p *PeakSpeed) OnFrame(s engine.Snapshot) {
	p.peak = math.Max(p.peak, s.Speed())
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }
