package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/motion"
	"github.com/san-kum/holesim/internal/sequence"
)

const frame = 1.0 / 60

type recorder struct {
	events []engine.Event
	frames int
}

func (r *recorder) OnEvent(e engine.Event)    { r.events = append(r.events, e) }
func (r *recorder) OnFrame(s engine.Snapshot) { r.frames++ }

func (r *recorder) count(kind engine.EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) first(kind engine.EventKind) (engine.Event, int) {
	for i, e := range r.events {
		if e.Kind == kind {
			return e, i
		}
	}
	return engine.Event{}, -1
}

func newController(rec *recorder, holes ...dynamo.Rect) *engine.Controller {
	cfg := config.DefaultConfig()
	cfg.Holes = holes
	cfg.Ball.Size = dynamo.Vec2{X: 10, Y: 10}
	ctrl, err := engine.New(*cfg, nil, engine.WithObserver(rec))
	Expect(err).NotTo(HaveOccurred())
	return ctrl
}

func stepUntil(ctrl *engine.Controller, done func() bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		if done() {
			return i
		}
		ctrl.Step(frame)
	}
	Fail("condition not reached in time")
	return maxFrames
}

var _ = Describe("Controller", func() {
	var (
		rec  *recorder
		ctrl *engine.Controller
		hole = dynamo.Rect{X: 100, Y: 100, Width: 20, Height: 20}
	)

	BeforeEach(func() {
		rec = &recorder{}
	})

	Describe("construction", func() {
		It("rejects a configuration that could not converge", func() {
			cfg := config.DefaultConfig()
			cfg.Physics.DefaultFriction = 0
			_, err := engine.New(*cfg, nil)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("uses the configured holes when no zone set is given", func() {
			cfg := config.DefaultConfig()
			ctrl, err := engine.New(*cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.Zones().Len()).To(Equal(len(cfg.Holes)))
		})

		It("starts idle with no latches held", func() {
			ctrl = newController(rec)
			Expect(ctrl.Phase()).To(Equal(engine.PhaseIdle))
			Expect(ctrl.Frozen()).To(BeFalse())
			Expect(ctrl.Capturing()).To(BeFalse())
			Expect(ctrl.IsAnythingMoving()).To(BeFalse())
		})
	})

	Describe("gestures", func() {
		BeforeEach(func() {
			ctrl = newController(rec)
		})

		It("rejects a gesture before the surface is measured", func() {
			Expect(ctrl.OnFlingGesture(500, 0)).To(BeFalse())
			e, _ := rec.first(engine.EventGestureRejected)
			Expect(e.Reason).To(Equal(engine.RejectUnmeasured))
			Expect(ctrl.IsAnythingMoving()).To(BeFalse())
		})

		It("rejects a still gesture", func() {
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})
			Expect(ctrl.OnFlingGesture(0, 0)).To(BeFalse())
			e, _ := rec.first(engine.EventGestureRejected)
			Expect(e.Reason).To(Equal(engine.RejectStill))
		})

		It("leaves friction alone when rejecting a still gesture", func() {
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})
			ctrl.Axis(motion.AxisX).SetFriction(motion.FrictionBrake)

			Expect(ctrl.OnFlingGesture(0, 0)).To(BeFalse())
			e, _ := rec.first(engine.EventGestureRejected)
			Expect(e.Reason).To(Equal(engine.RejectStill))
			Expect(ctrl.Axis(motion.AxisX).Friction()).To(Equal(motion.FrictionBrake))
			Expect(ctrl.Capturing()).To(BeFalse())
			Expect(rec.count(engine.EventFlingStarted)).To(BeZero())
		})

		It("clamps a placement outside the surface before flinging", func() {
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})
			Expect(ctrl.Place(dynamo.Vec2{X: 260, Y: 50})).To(BeTrue())
			Expect(ctrl.Snapshot().Position).To(Equal(dynamo.Vec2{X: 190, Y: 50}))

			Expect(ctrl.OnFlingGesture(-500, 0)).To(BeTrue())
			for i := 0; i < 600 && ctrl.IsAnythingMoving(); i++ {
				ctrl.Step(frame)
				x := ctrl.Snapshot().Position.X
				Expect(x).To(BeNumerically(">=", 0))
				Expect(x).To(BeNumerically("<=", 190))
			}
			Expect(ctrl.IsAnythingMoving()).To(BeFalse())
			Expect(rec.count(engine.EventHandoff)).To(BeZero())
			Expect(ctrl.Snapshot().Position.X).To(BeNumerically("~", 95, 5))
		})

		It("clamps a placement made before the surface is measured", func() {
			Expect(ctrl.Place(dynamo.Vec2{X: -40, Y: 250})).To(BeTrue())
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})

			Expect(ctrl.OnFlingGesture(0, 500)).To(BeTrue())
			ctrl.Step(frame)
			s := ctrl.Snapshot()
			Expect(s.Position.X).To(Equal(0.0))
			Expect(s.Position.Y).To(Equal(190.0))

			e, _ := rec.first(engine.EventHandoff)
			Expect(e.Axis).To(Equal(motion.AxisY))
			Expect(e.Target).To(Equal(190.0))
		})

		It("rejects overlapping gestures until all motion ends", func() {
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})
			Expect(ctrl.Place(dynamo.Vec2{X: 20, Y: 20})).To(BeTrue())
			Expect(ctrl.OnFlingGesture(500, 0)).To(BeTrue())
			ctrl.Step(frame)

			Expect(ctrl.IsAnythingMoving()).To(BeTrue())
			Expect(ctrl.Phase()).To(Equal(engine.PhaseMoving))
			Expect(ctrl.OnFlingGesture(100, 100)).To(BeFalse())
			e, _ := rec.first(engine.EventGestureRejected)
			Expect(e.Reason).To(Equal(engine.RejectMoving))
			Expect(ctrl.Place(dynamo.Vec2{})).To(BeFalse())

			stepUntil(ctrl, func() bool { return !ctrl.IsAnythingMoving() }, 600)
			Expect(rec.count(engine.EventSettled)).To(Equal(1))
			Expect(ctrl.OnFlingGesture(100, 100)).To(BeTrue())
		})

		It("keeps the fling inside the surface", func() {
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})
			Expect(ctrl.OnFlingGesture(2500, -1800)).To(BeTrue())
			for i := 0; i < 900 && ctrl.IsAnythingMoving(); i++ {
				ctrl.Step(frame)
				s := ctrl.Snapshot()
				if s.Mechanisms[0] == motion.Flinging {
					Expect(s.Position.X).To(BeNumerically(">=", 0))
					Expect(s.Position.X).To(BeNumerically("<=", 190))
				}
				if s.Mechanisms[1] == motion.Flinging {
					Expect(s.Position.Y).To(BeNumerically(">=", 0))
					Expect(s.Position.Y).To(BeNumerically("<=", 190))
				}
			}
			Expect(ctrl.IsAnythingMoving()).To(BeFalse())
			Expect(rec.count(engine.EventHandoff)).To(Equal(2))
		})
	})

	Describe("capture", func() {
		BeforeEach(func() {
			ctrl = newController(rec, hole)
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})
			Expect(ctrl.Place(dynamo.Vec2{X: 105, Y: 105})).To(BeTrue())
		})

		It("captures a slow ball resting in a hole exactly once and recovers", func() {
			ctrl.GestureDown()
			Expect(ctrl.OnFlingGesture(-50, -50)).To(BeTrue())
			ctrl.Step(frame)

			Expect(rec.count(engine.EventCaptured)).To(Equal(1))
			Expect(ctrl.Frozen()).To(BeTrue())
			Expect(ctrl.Capturing()).To(BeTrue())
			Expect(ctrl.Phase()).To(Equal(engine.PhaseCapturing))
			Expect(ctrl.IsAnythingMoving()).To(BeFalse())
			Expect(ctrl.Axis(motion.AxisX).Friction()).To(Equal(motion.FrictionBrake))

			Expect(ctrl.OnFlingGesture(300, 300)).To(BeFalse())
			e, _ := rec.first(engine.EventGestureRejected)
			Expect(e.Reason).To(Equal(engine.RejectFrozen))

			stepUntil(ctrl, func() bool { return ctrl.Phase() == engine.PhaseReappearing }, 120)
			Expect(ctrl.Frozen()).To(BeTrue())
			v := ctrl.Snapshot().Visual
			Expect(v.Translate).To(Equal(dynamo.Vec2{}))
			Expect(v.Scale).To(Equal(dynamo.Vec2{X: 1, Y: 1}))

			stepUntil(ctrl, func() bool { return ctrl.Phase() == engine.PhaseIdle }, 120)
			Expect(ctrl.Frozen()).To(BeFalse())
			Expect(ctrl.Capturing()).To(BeFalse())
			Expect(ctrl.Axis(motion.AxisX).Friction()).To(Equal(motion.FrictionDefault))
			Expect(ctrl.Snapshot().Visual).To(Equal(sequence.Identity()))
			Expect(rec.count(engine.EventCaptured)).To(Equal(1))
			Expect(rec.count(engine.EventReappeared)).To(Equal(1))

			ctrl.GestureDown()
			Expect(ctrl.OnFlingGesture(-50, -50)).To(BeTrue())
		})

		It("orders the cycle events", func() {
			ctrl.OnFlingGesture(-50, -50)
			stepUntil(ctrl, func() bool { return rec.count(engine.EventReappeared) == 1 }, 240)

			_, started := rec.first(engine.EventFlingStarted)
			_, captured := rec.first(engine.EventCaptured)
			_, reappearing := rec.first(engine.EventReappearing)
			_, reappeared := rec.first(engine.EventReappeared)
			Expect(started).To(BeNumerically("<", captured))
			Expect(captured).To(BeNumerically("<", reappearing))
			Expect(reappearing).To(BeNumerically("<", reappeared))
			Expect(rec.count(engine.EventSettled)).To(BeZero())
		})

		It("translates only the visual toward the hole corner", func() {
			ctrl.OnFlingGesture(-50, -50)
			ctrl.Step(frame)
			logical := ctrl.Snapshot().Position

			for i := 0; i < 20; i++ {
				ctrl.Step(frame)
			}
			s := ctrl.Snapshot()
			Expect(s.Position).To(Equal(logical))
			Expect(s.VisualPosition().X).To(BeNumerically("~", hole.X, 1e-9))
			Expect(s.VisualPosition().Y).To(BeNumerically("~", hole.Y, 1e-9))
			Expect(s.Visual.Alpha).To(BeNumerically("<", 1))
		})

		It("picks the lowest-index hole when holes overlap", func() {
			rec = &recorder{}
			ctrl = newController(rec,
				dynamo.Rect{X: 100, Y: 100, Width: 20, Height: 20},
				dynamo.Rect{X: 95, Y: 95, Width: 30, Height: 30},
			)
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})
			ctrl.Place(dynamo.Vec2{X: 105, Y: 105})
			ctrl.OnFlingGesture(-50, -50)
			ctrl.Step(frame)

			e, _ := rec.first(engine.EventCaptured)
			Expect(e.Zone).To(Equal(0))
		})

		It("settles through an edge bounce into a hole at the bound", func() {
			rec = &recorder{}
			ctrl = newController(rec, dynamo.Rect{X: 180, Y: 90, Width: 30, Height: 30})
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})
			ctrl.Place(dynamo.Vec2{X: 150, Y: 100})

			Expect(ctrl.OnFlingGesture(2000, 0)).To(BeTrue())
			stepUntil(ctrl, func() bool { return ctrl.Frozen() }, 600)

			_, handoff := rec.first(engine.EventHandoff)
			captured, at := rec.first(engine.EventCaptured)
			Expect(handoff).To(BeNumerically(">=", 0))
			Expect(handoff).To(BeNumerically("<", at))
			Expect(captured.Zone).To(Equal(0))
			Expect(rec.count(engine.EventCaptured)).To(Equal(1))
		})
	})

	Describe("capture after an edge spring", func() {
		BeforeEach(func() {
			ctrl = newController(rec, hole)
			ctrl.Measure(dynamo.Vec2{X: 110, Y: 200})
			Expect(ctrl.Place(dynamo.Vec2{X: 40, Y: 105})).To(BeTrue())
		})

		It("captures once the spring slows inside the hole", func() {
			Expect(ctrl.OnFlingGesture(2000, 0)).To(BeTrue())
			stepUntil(ctrl, func() bool { return ctrl.Frozen() }, 600)

			h, handoff := rec.first(engine.EventHandoff)
			captured, at := rec.first(engine.EventCaptured)
			Expect(handoff).To(BeNumerically(">=", 0))
			Expect(h.Axis).To(Equal(motion.AxisX))
			Expect(h.Target).To(Equal(100.0))
			Expect(handoff).To(BeNumerically("<", at))
			Expect(captured.Zone).To(Equal(0))
			Expect(hole.Contains(captured.Position.Add(dynamo.Vec2{X: 5, Y: 5}))).To(BeTrue())
			Expect(ctrl.IsAnythingMoving()).To(BeFalse())

			stepUntil(ctrl, func() bool { return rec.count(engine.EventReappeared) == 1 }, 240)
			Expect(ctrl.Frozen()).To(BeFalse())
			Expect(rec.count(engine.EventCaptured)).To(Equal(1))
			Expect(rec.count(engine.EventSettled)).To(BeZero())
		})
	})

	Describe("latches", func() {
		BeforeEach(func() {
			ctrl = newController(rec, hole)
			ctrl.Measure(dynamo.Vec2{X: 200, Y: 200})
			ctrl.Place(dynamo.Vec2{X: 105, Y: 105})
			ctrl.OnFlingGesture(-50, -50)
			ctrl.Step(frame)
			Expect(ctrl.Frozen()).To(BeTrue())
		})

		It("recovers a cycle whose completion never arrives on attach", func() {
			ctrl.Attach()

			Expect(ctrl.Frozen()).To(BeFalse())
			Expect(ctrl.Capturing()).To(BeFalse())
			Expect(ctrl.Phase()).To(Equal(engine.PhaseIdle))
			Expect(ctrl.Snapshot().Visual).To(Equal(sequence.Identity()))
			Expect(rec.count(engine.EventReset)).To(Equal(1))

			ctrl.GestureDown()
			Expect(ctrl.OnFlingGesture(800, 0)).To(BeTrue())
		})

		It("leaves a healthy controller alone on attach", func() {
			stepUntil(ctrl, func() bool { return ctrl.Phase() == engine.PhaseIdle }, 240)
			ctrl.Attach()
			Expect(rec.count(engine.EventReset)).To(BeZero())
		})

		It("blocks edge bounces until the next gesture down", func() {
			stepUntil(ctrl, func() bool { return ctrl.Phase() == engine.PhaseIdle }, 240)
			Expect(ctrl.Stopped()).To(BeTrue())

			Expect(ctrl.OnFlingGesture(3000, 0)).To(BeTrue())
			stepUntil(ctrl, func() bool { return !ctrl.IsAnythingMoving() }, 600)
			Expect(rec.count(engine.EventHandoff)).To(BeZero())
			Expect(ctrl.Snapshot().Position.X).To(Equal(190.0))

			ctrl.GestureDown()
			Expect(ctrl.OnFlingGesture(-3000, 0)).To(BeTrue())
			stepUntil(ctrl, func() bool { return rec.count(engine.EventHandoff) > 0 }, 600)
			e, _ := rec.first(engine.EventHandoff)
			Expect(e.Axis).To(Equal(motion.AxisX))
			Expect(e.Target).To(Equal(0.0))
			Expect(e.Velocity.X).To(BeNumerically("<", 0))
		})
	})
})
