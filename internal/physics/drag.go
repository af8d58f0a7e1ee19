package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/holesim/internal/dynamo"
)

// DragMultiplier scales a friction coefficient into an exponential decay rate.
const DragMultiplier = 4.2

// Drag is the fling ODE: dx/dt = v, dv/dt = -4.2·friction·v.
type Drag struct {
	Friction float64
}

func NewDrag(friction float64) *Drag {
	return &Drag{Friction: friction}
}

func (d *Drag) StateDim() int { return 2 }

func (d *Drag) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -d.Rate() * x[1]}
}

// Rate is the exponential decay rate of velocity per second.
func (d *Drag) Rate() float64 { return DragMultiplier * d.Friction }

// Velocity returns the closed-form velocity after t seconds.
func (d *Drag) Velocity(v0, t float64) float64 {
	return v0 * math.Exp(-d.Rate()*t)
}

// Distance returns the signed travel from v0 until |v| falls to rest.
func (d *Drag) Distance(v0, rest float64) float64 {
	speed := math.Abs(v0)
	if speed <= rest {
		return 0
	}
	return math.Copysign((speed-rest)/d.Rate(), v0)
}

// LaunchVelocity is the inverse of Distance: the start velocity that
// travels the signed distance before dropping below rest.
func (d *Drag) LaunchVelocity(distance, rest float64) float64 {
	if distance == 0 {
		return 0
	}
	return math.Copysign(math.Abs(distance)*d.Rate()+rest, distance)
}

func (d *Drag) GetParams() map[string]float64 {
	return map[string]float64{"friction": d.Friction}
}

func (d *Drag) SetParam(name string, value float64) error {
	switch name {
	case "friction":
		if value <= 0 {
			return &dynamo.ParamError{Name: name, Value: value, Wrapped: dynamo.ErrParameterBounds}
		}
		d.Friction = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
