package control

import (
	"math"

	"github.com/san-kum/holesim/internal/capture"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/motion"
	"github.com/san-kum/holesim/internal/physics"
)

// Aim flings so that the ball comes to rest centered on the nearest hole.
// It inverts the drag model per axis: a fling from v0 travels
// (v0 - rest) / (4.2 * friction) before stopping.
type Aim struct {
	drag *physics.Drag
	rest float64
}

func NewAim(friction, restVelocity float64) *Aim {
	if restVelocity <= 0 {
		restVelocity = motion.DefaultFlingRestVelocity
	}
	return &Aim{drag: physics.NewDrag(friction), rest: restVelocity}
}

func (a *Aim) Next(s engine.Snapshot, t float64) (float64, float64, bool) {
	if s.Phase != engine.PhaseIdle || !s.Measured || len(s.Zones) == 0 {
		return 0, 0, false
	}
	zone := nearest(s.Zones, s.Center())
	target := a.Target(s, zone)
	vx := a.axisVelocity(target.X - s.Position.X)
	vy := a.axisVelocity(target.Y - s.Position.Y)
	if vx == 0 && vy == 0 {
		// Already centered: fling just above rest so a report reaches the capture check.
		vx = a.rest * 1.05
	}
	return vx, vy, true
}

// Target is the ball position that centers it on zone, kept inside the surface.
func (a *Aim) Target(s engine.Snapshot, zone capture.Zone) dynamo.Vec2 {
	c := zone.Rect.Center()
	p := dynamo.Vec2{X: c.X - s.BallSize.X/2, Y: c.Y - s.BallSize.Y/2}
	p.X = motion.BoundsFor(s.Surface.X, s.BallSize.X).Clamp(p.X)
	p.Y = motion.BoundsFor(s.Surface.Y, s.BallSize.Y).Clamp(p.Y)
	return p
}

func (a *Aim) axisVelocity(d float64) float64 {
	if math.Abs(d) < 0.5 {
		return 0
	}
	return a.drag.LaunchVelocity(d, a.rest)
}

func nearest(zones []capture.Zone, p dynamo.Vec2) capture.Zone {
	best := zones[0]
	bestDist := math.Inf(1)
	for _, z := range zones {
		if d := z.Rect.Center().Sub(p).Len(); d < bestDist {
			best, bestDist = z, d
		}
	}
	return best
}
