package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/holesim/internal/capture"
	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/integrators"
	"github.com/san-kum/holesim/internal/logging"
	"github.com/san-kum/holesim/internal/motion"
	"github.com/san-kum/holesim/internal/sequence"
)

// Controller is the motion and capture state machine for one ball.
//
// Latches:
//   - frozen: set when a capture is dispatched, cleared when the reappear
//     script completes. Rejects gestures and every mechanism start.
//   - capturing: set in the same instant as frozen so a second report in
//     the same frame cannot dispatch a second capture.
//   - stopped: set with frozen, cleared only by GestureDown. Blocks the
//     edge-bounce spring.
type Controller struct {
	cfg     config.Config
	zones   *capture.ZoneSet
	axes    [2]*motion.AxisMotion
	tracker *motion.Tracker
	seq     *sequence.Sequencer
	log     *slog.Logger

	observers []Observer

	ballSize    dynamo.Vec2
	surface     dynamo.Vec2
	measured    bool
	boundsValid bool

	frozen    bool
	capturing bool
	stopped   bool

	time     float64
	frame    int
	captures int
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Controller) { c.AddObserver(o) }
}

// New builds the controller. When zones is nil the configured holes are
// used. Both axes are built here, each with its spring ahead of its fling.
func New(cfg config.Config, zones *capture.ZoneSet, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	stiffness, err := cfg.Stiffness()
	if err != nil {
		return nil, err
	}
	damping, err := cfg.DampingRatio()
	if err != nil {
		return nil, err
	}
	if zones == nil {
		zones = capture.NewZoneSet(cfg.Holes...)
	}

	c := &Controller{
		cfg:      cfg,
		zones:    zones,
		tracker:  motion.NewTracker(cfg.Physics.VelocityThreshold),
		ballSize: cfg.Ball.Size,
		log:      logging.Discard().Logger,
		seq: sequence.New(sequence.Options{
			CaptureDuration:  cfg.Sequence.CaptureDuration,
			ReappearDuration: cfg.Sequence.ReappearDuration,
			Ease:             sequence.EasingByName(cfg.Sequence.Easing),
		}),
	}

	params := motion.Params{
		DefaultFriction:   cfg.Physics.DefaultFriction,
		BrakeFriction:     cfg.Physics.BrakeFriction,
		FlingRestVelocity: cfg.Physics.FlingRestVelocity,
		Stiffness:         stiffness,
		DampingRatio:      damping,
	}
	for _, axis := range []motion.Axis{motion.AxisX, motion.AxisY} {
		integ, _ := integrators.ByName(cfg.Integrator)
		a, err := motion.NewAxisMotion(axis, params, integ, axisOwner{c})
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", axis, err)
		}
		c.axes[axis] = a
	}
	c.axes[motion.AxisX].SetValue(cfg.Ball.Start.X)
	c.axes[motion.AxisY].SetValue(cfg.Ball.Start.Y)

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) AddObserver(o Observer) {
	if o != nil {
		c.observers = append(c.observers, o)
	}
}

// Measure records the surface size. Bounds are recomputed at the next fling.
func (c *Controller) Measure(surface dynamo.Vec2) {
	c.surface = surface
	c.measured = surface.X > 0 && surface.Y > 0
	c.boundsValid = false
	c.log.Debug("surface measured", "width", surface.X, "height", surface.Y)
}

// Attach is called when the surface is attached again after a teardown.
// A script in flight at teardown is considered lost, so held latches are
// cleared.
func (c *Controller) Attach() {
	if c.frozen || c.capturing {
		c.ForceReset()
	}
}

// ForceReset clears every latch, halts motion and scripts, and restores
// the identity transform. It is the recovery path for a capture cycle
// whose completion never arrived.
func (c *Controller) ForceReset() {
	c.log.Warn("forcing controller reset",
		"phase", c.Phase().String(), "frozen", c.frozen, "capturing", c.capturing)
	for _, a := range c.axes {
		a.Cancel()
		a.SetFriction(motion.FrictionDefault)
	}
	c.seq.Reset()
	c.tracker.ResetAll()
	c.frozen = false
	c.capturing = false
	c.stopped = false
	c.emit(c.event(EventReset))
}

// GestureDown clears the stopped latch left by the previous capture.
func (c *Controller) GestureDown() {
	c.stopped = false
}

// OnFlingGesture starts both flings. It returns false, leaving latches and
// friction untouched, when the controller is frozen, something is still
// moving, the surface is unmeasured, or both velocities are zero.
func (c *Controller) OnFlingGesture(vx, vy float64) bool {
	switch {
	case c.frozen:
		return c.reject(vx, vy, RejectFrozen)
	case c.IsAnythingMoving():
		return c.reject(vx, vy, RejectMoving)
	}
	if err := c.ensureBounds(); err != nil {
		c.log.Warn("gesture rejected", "vx", vx, "vy", vy, "error", err)
		return c.reject(vx, vy, RejectUnmeasured)
	}

	if !flingable(vx) && !flingable(vy) {
		return c.reject(vx, vy, RejectStill)
	}

	for _, a := range c.axes {
		a.SetFriction(motion.FrictionDefault)
	}
	c.capturing = false

	c.axes[motion.AxisX].StartFling(vx)
	c.axes[motion.AxisY].StartFling(vy)

	e := c.event(EventFlingStarted)
	e.Velocity = dynamo.Vec2{X: vx, Y: vy}
	c.log.Debug("fling started", "vx", vx, "vy", vy, "x", e.Position.X, "y", e.Position.Y)
	c.emit(e)
	return true
}

func flingable(v float64) bool { return v != 0 && !math.IsNaN(v) }

func (c *Controller) reject(vx, vy float64, reason string) bool {
	e := c.event(EventGestureRejected)
	e.Velocity = dynamo.Vec2{X: vx, Y: vy}
	e.Reason = reason
	c.log.Debug("gesture ignored", "reason", reason)
	c.emit(e)
	return false
}

func (c *Controller) ensureBounds() error {
	if !c.measured {
		return dynamo.ErrSurfaceUnmeasured
	}
	if c.boundsValid {
		return nil
	}
	sizes := [2]float64{c.ballSize.X, c.ballSize.Y}
	extents := [2]float64{c.surface.X, c.surface.Y}
	for i, a := range c.axes {
		b := motion.BoundsFor(extents[i], sizes[i])
		a.SetBounds(b)
		if !a.IsRunning() {
			a.SetValue(b.Clamp(a.Value()))
		}
	}
	c.boundsValid = true
	return nil
}

// Place moves the ball while nothing is moving and the controller is not
// frozen. It reports whether the ball moved. Once the surface is measured
// the position is clamped to the bounds.
func (c *Controller) Place(p dynamo.Vec2) bool {
	if c.frozen || c.IsAnythingMoving() {
		return false
	}
	c.axes[motion.AxisX].SetValue(p.X)
	c.axes[motion.AxisY].SetValue(p.Y)
	if c.measured {
		c.boundsValid = false
		c.ensureBounds()
	}
	return true
}

func (c *Controller) IsAnythingMoving() bool {
	return c.axes[motion.AxisX].IsRunning() || c.axes[motion.AxisY].IsRunning()
}

func (c *Controller) Frozen() bool    { return c.frozen }
func (c *Controller) Capturing() bool { return c.capturing }
func (c *Controller) Stopped() bool   { return c.stopped }
func (c *Controller) Captures() int   { return c.captures }
func (c *Controller) Time() float64   { return c.time }

func (c *Controller) Zones() *capture.ZoneSet  { return c.zones }
func (c *Controller) Tracker() *motion.Tracker { return c.tracker }

// Axis exposes one axis for inspection. Callers must not start or cancel it.
func (c *Controller) Axis(a motion.Axis) *motion.AxisMotion { return c.axes[a] }

func (c *Controller) Phase() Phase {
	switch {
	case c.frozen || c.capturing:
		if c.seq.Active() == sequence.ScriptReappear {
			return PhaseReappearing
		}
		return PhaseCapturing
	case c.IsAnythingMoving():
		return PhaseMoving
	}
	return PhaseIdle
}

// Step advances one frame: the X axis, the Y axis, then the visual script.
func (c *Controller) Step(dt float64) {
	if dt <= 0 {
		return
	}
	c.time += dt
	c.frame++

	wasMoving := c.IsAnythingMoving()
	for _, a := range c.axes {
		a.Step(dt)
	}
	if wasMoving && !c.IsAnythingMoving() && !c.frozen {
		c.log.Debug("ball settled", "x", c.axes[0].Value(), "y", c.axes[1].Value())
		c.emit(c.event(EventSettled))
	}

	c.seq.Advance(dt)

	if len(c.observers) > 0 {
		s := c.Snapshot()
		for _, o := range c.observers {
			o.OnFrame(s)
		}
	}
}

func (c *Controller) position() dynamo.Vec2 {
	return dynamo.Vec2{X: c.axes[motion.AxisX].Value(), Y: c.axes[motion.AxisY].Value()}
}

func (c *Controller) velocity() dynamo.Vec2 {
	return dynamo.Vec2{X: c.axes[motion.AxisX].Velocity(), Y: c.axes[motion.AxisY].Velocity()}
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Time:       c.time,
		Frame:      c.frame,
		Phase:      c.Phase(),
		Position:   c.position(),
		Velocity:   c.velocity(),
		BallSize:   c.ballSize,
		Surface:    c.surface,
		Measured:   c.measured,
		Frozen:     c.frozen,
		Capturing:  c.capturing,
		Visual:     c.seq.Visual(),
		Zones:      c.zones.Zones(),
		Mechanisms: [2]motion.Mechanism{c.axes[0].Mechanism(), c.axes[1].Mechanism()},
		Tracker:    c.tracker.Velocities(),
	}
}

func (c *Controller) checkCapture() {
	if c.capturing || c.frozen {
		return
	}
	if !c.tracker.IsCaptureEligible() {
		return
	}
	zone, ok := c.zones.FirstContaining(capture.BallCenter(c.position(), c.ballSize))
	if !ok {
		return
	}
	c.dispatchCapture(zone)
}

func (c *Controller) dispatchCapture(zone capture.Zone) {
	c.capturing = true
	c.frozen = true
	c.stopped = true

	e := c.event(EventCaptured)
	e.Velocity = c.velocity()
	e.Zone = zone.Index

	for _, a := range c.axes {
		a.Cancel()
		a.SetFriction(motion.FrictionBrake)
	}
	c.captures++

	c.log.Debug("ball captured",
		"zone", zone.Index, "x", e.Position.X, "y", e.Position.Y,
		"tracker", c.tracker.Velocities())
	c.seq.Capture(zone.Rect.Min().Sub(e.Position), c.onCaptured)
	c.emit(e)
}

func (c *Controller) onCaptured() {
	c.seq.ResetTransform()
	for _, a := range c.axes {
		a.SetFriction(motion.FrictionDefault)
	}
	c.log.Debug("ball reappearing")
	c.seq.Reappear(c.onReappeared)
	c.emit(c.event(EventReappearing))
}

func (c *Controller) onReappeared() {
	c.frozen = false
	c.capturing = false
	for _, a := range c.axes {
		a.SetFriction(motion.FrictionDefault)
	}
	c.tracker.ResetAll()
	c.log.Debug("ball reappeared")
	c.emit(c.event(EventReappeared))
}

func (c *Controller) event(kind EventKind) Event {
	return Event{
		Kind:     kind,
		Time:     c.time,
		Frame:    c.frame,
		Position: c.position(),
		Zone:     -1,
	}
}

func (c *Controller) emit(e Event) {
	for _, o := range c.observers {
		o.OnEvent(e)
	}
}

// axisOwner keeps the motion.Owner callbacks off the Controller's API.
type axisOwner struct {
	c *Controller
}

func (o axisOwner) Frozen() bool  { return o.c.frozen }
func (o axisOwner) Stopped() bool { return o.c.stopped }

func (o axisOwner) Report(axis motion.Axis, src motion.Source, value, velocity float64) {
	o.c.tracker.Report(src, velocity)
	o.c.checkCapture()
}

func (o axisOwner) Ended(axis motion.Axis, src motion.Source, value, velocity float64) {
	o.c.tracker.Reset(src)
}

func (o axisOwner) HandedOff(axis motion.Axis, velocity, target float64) {
	e := o.c.event(EventHandoff)
	e.Axis = axis
	e.Target = target
	if axis == motion.AxisX {
		e.Velocity.X = velocity
	} else {
		e.Velocity.Y = velocity
	}
	o.c.log.Debug("edge bounce", "axis", axis.String(), "velocity", velocity, "target", target)
	o.c.emit(e)
}
