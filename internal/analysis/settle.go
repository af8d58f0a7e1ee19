package analysis

import (
	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/control"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/experiment"
)

// SettleTime is the time of the first sample after which speed stays
// below threshold, or -1 if the trace never settles.
func SettleTime(trace experiment.Trace, threshold float64) float64 {
	settled := -1.0
	for _, s := range trace {
		if s.Speed() < threshold {
			if settled < 0 {
				settled = s.Time
			}
			continue
		}
		settled = -1
	}
	return settled
}

// Reversals counts velocity sign changes on one axis column of the trace.
func Reversals(velocities []float64) int {
	n := 0
	prev := 0.0
	for _, v := range velocities {
		if v == 0 {
			continue
		}
		if prev != 0 && (v > 0) != (prev > 0) {
			n++
		}
		prev = v
	}
	return n
}

// LandingSensitivity flings the ball from start with v and with v scaled
// by (1+delta) on an empty surface, and returns the distance between the
// two resting points divided by the change in launch speed.
func LandingSensitivity(cfg *config.Config, start, v dynamo.Vec2, delta float64) (float64, error) {
	a, err := restingPoint(cfg, start, v)
	if err != nil {
		return 0, err
	}
	b, err := restingPoint(cfg, start, v.Scale(1+delta))
	if err != nil {
		return 0, err
	}
	dv := v.Len() * delta
	if dv == 0 {
		return 0, nil
	}
	return b.Sub(a).Len() / dv, nil
}

func restingPoint(cfg *config.Config, start, v dynamo.Vec2) (dynamo.Vec2, error) {
	empty := cfg.Clone()
	empty.Holes = nil
	ctrl, err := engine.New(*empty, nil)
	if err != nil {
		return dynamo.Vec2{}, err
	}
	ctrl.Measure(empty.Surface)
	ctrl.Place(start)

	manual := control.NewManual()
	manual.Push(v.X, v.Y)
	dt := empty.FrameDt()
	maxFrames := int(config.DefaultMaxSessionSeconds / dt)
	for i := 0; i < maxFrames; i++ {
		s := ctrl.Snapshot()
		if vx, vy, ok := manual.Next(s, s.Time); ok {
			ctrl.GestureDown()
			ctrl.OnFlingGesture(vx, vy)
		} else if s.Phase == engine.PhaseIdle && manual.Pending() == 0 && i > 0 {
			break
		}
		ctrl.Step(dt)
	}
	return ctrl.Snapshot().Position, nil
}
