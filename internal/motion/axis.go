package motion

import (
	"math"

	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/physics"
)

// DefaultFlingRestVelocity is the speed below which a fling stops.
const DefaultFlingRestVelocity = 62.5

// Owner receives what an axis does. Report is called on every step of an
// active mechanism, including its last one; Ended follows when the
// mechanism stops on its own. Cancel never triggers either.
//
// Frozen blocks every mechanism start. Stopped only blocks the spring a
// fling hands off to when it ends at a bound.
type Owner interface {
	Frozen() bool
	Stopped() bool
	Report(axis Axis, src Source, value, velocity float64)
	Ended(axis Axis, src Source, value, velocity float64)
	HandedOff(axis Axis, velocity, target float64)
}

// Params configures an axis. Frictions and spring constants must be positive.
type Params struct {
	DefaultFriction   float64
	BrakeFriction     float64
	FlingRestVelocity float64
	Stiffness         float64
	DampingRatio      float64
}

// AxisMotion is one axis of ball motion. At most one mechanism is active.
type AxisMotion struct {
	axis     Axis
	owner    Owner
	value    float64
	velocity float64
	elapsed  float64

	mech   Mechanism
	target float64
	bounds Bounds

	friction  Friction
	frictions [2]float64
	rest      float64

	spring *physics.Spring
	drag   *physics.Drag
	integ  dynamo.Integrator

	// generation changes whenever a mechanism starts or is canceled, so a
	// step can tell its owner callback canceled it.
	generation uint64
}

// NewAxisMotion builds the spring before the fling, since fling completion
// hands off into the spring.
func NewAxisMotion(axis Axis, p Params, integ dynamo.Integrator, owner Owner) (*AxisMotion, error) {
	spring, err := physics.NewSpring(p.Stiffness, p.DampingRatio)
	if err != nil {
		return nil, err
	}
	if p.DefaultFriction <= 0 {
		return nil, &dynamo.ParamError{Name: "default_friction", Value: p.DefaultFriction, Wrapped: dynamo.ErrParameterBounds}
	}
	if p.BrakeFriction < p.DefaultFriction {
		return nil, &dynamo.ParamError{Name: "brake_friction", Value: p.BrakeFriction, Wrapped: dynamo.ErrParameterBounds}
	}
	rest := p.FlingRestVelocity
	if rest <= 0 {
		rest = DefaultFlingRestVelocity
	}

	return &AxisMotion{
		axis:      axis,
		owner:     owner,
		frictions: [2]float64{p.DefaultFriction, p.BrakeFriction},
		rest:      rest,
		spring:    spring,
		drag:      physics.NewDrag(p.DefaultFriction),
		integ:     integ,
	}, nil
}

func (a *AxisMotion) Axis() Axis           { return a.axis }
func (a *AxisMotion) Value() float64       { return a.value }
func (a *AxisMotion) Velocity() float64    { return a.velocity }
func (a *AxisMotion) Mechanism() Mechanism { return a.mech }
func (a *AxisMotion) IsRunning() bool      { return a.mech != Idle }
func (a *AxisMotion) Bounds() Bounds       { return a.bounds }
func (a *AxisMotion) Friction() Friction   { return a.friction }
func (a *AxisMotion) Target() float64      { return a.target }

// FrictionCoefficient is the coefficient the next fling will use.
func (a *AxisMotion) FrictionCoefficient() float64 { return a.frictions[a.friction] }

// SetValue places the axis. Ignored while a mechanism is running.
func (a *AxisMotion) SetValue(v float64) {
	if a.mech == Idle {
		a.value = v
	}
}

func (a *AxisMotion) SetBounds(b Bounds) { a.bounds = b }

// SetFriction selects the coefficient for the next StartFling. A fling
// already in flight keeps its coefficient.
func (a *AxisMotion) SetFriction(f Friction) { a.friction = f }

// StartFling begins decelerating motion from the current value. It does
// nothing when the owner is frozen or v0 is zero.
func (a *AxisMotion) StartFling(v0 float64) bool {
	if a.owner.Frozen() || v0 == 0 || math.IsNaN(v0) {
		return false
	}
	a.drag.Friction = a.frictions[a.friction]
	a.begin(Flinging, v0)
	return true
}

// StartSpring animates toward final starting at v0. It does nothing when
// the owner is frozen.
func (a *AxisMotion) StartSpring(v0, final float64) bool {
	if a.owner.Frozen() {
		return false
	}
	a.target = final
	a.begin(Springing, v0)
	return true
}

func (a *AxisMotion) begin(m Mechanism, v0 float64) {
	a.generation++
	a.mech = m
	a.velocity = v0
	a.elapsed = 0
}

// Cancel halts the active mechanism without a further report.
func (a *AxisMotion) Cancel() {
	a.generation++
	a.mech = Idle
	a.velocity = 0
}

// Step advances the active mechanism by dt seconds.
func (a *AxisMotion) Step(dt float64) {
	switch a.mech {
	case Flinging:
		a.stepFling(dt)
	case Springing:
		a.stepSpring(dt)
	}
}

func (a *AxisMotion) stepFling(dt float64) {
	x := a.integ.Step(a.drag, dynamo.State{a.value, a.velocity}, a.elapsed, dt)
	a.value, a.velocity = x[0], x[1]
	a.elapsed += dt

	done, atBound, hit := false, false, 0.0
	switch {
	case a.value < a.bounds.Min:
		a.value, hit = a.bounds.Min, a.bounds.Min
		done, atBound = true, true
	case a.value > a.bounds.Max:
		a.value, hit = a.bounds.Max, a.bounds.Max
		done, atBound = true, true
	case math.Abs(a.velocity) < a.rest:
		a.velocity = 0
		done = true
	}

	if !a.report(Flinging) || !done {
		return
	}

	residual := a.velocity
	a.finish(FlingX + Source(a.axis))
	if atBound && residual != 0 {
		a.handoff(residual, hit)
	}
}

// handoff springs toward the bound the fling was clamped to.
func (a *AxisMotion) handoff(residual, bound float64) {
	if a.owner.Stopped() {
		return
	}
	if a.StartSpring(residual, bound) {
		a.owner.HandedOff(a.axis, residual, bound)
	}
}

func (a *AxisMotion) stepSpring(dt float64) {
	a.value, a.velocity = a.spring.Step(a.value, a.velocity, a.target, dt)
	a.elapsed += dt

	done := a.spring.AtRest(a.value, a.velocity, a.target)
	if done {
		a.value = a.target
		a.velocity = 0
	}

	if !a.report(Springing) || !done {
		return
	}
	a.finish(SpringX + Source(a.axis))
}

// report hands the step to the owner and reports whether the mechanism
// survived the callback.
func (a *AxisMotion) report(m Mechanism) bool {
	gen := a.generation
	a.owner.Report(a.axis, SourceOf(a.axis, m), a.value, a.velocity)
	return gen == a.generation
}

func (a *AxisMotion) finish(src Source) {
	velocity := a.velocity
	a.mech = Idle
	a.velocity = 0
	a.owner.Ended(a.axis, src, a.value, velocity)
}
