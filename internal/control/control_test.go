package control

import (
	"math"
	"testing"

	"github.com/san-kum/holesim/internal/capture"
	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
)

func idleController(t *testing.T, holes ...dynamo.Rect) *engine.Controller {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Holes = holes
	ctrl, err := engine.New(*cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctrl.Measure(cfg.Surface)
	return ctrl
}

func TestNoneNeverFlings(t *testing.T) {
	if _, _, ok := NewNone().Next(engine.Snapshot{}, 0); ok {
		t.Error("None produced a gesture")
	}
}

func TestManualQueue(t *testing.T) {
	m := NewManual()
	m.Push(10, 20)
	m.Push(30, 40)

	if _, _, ok := m.Next(engine.Snapshot{Phase: engine.PhaseMoving}, 0); ok {
		t.Error("manual fling released while moving")
	}
	vx, vy, ok := m.Next(engine.Snapshot{Phase: engine.PhaseIdle}, 0)
	if !ok || vx != 10 || vy != 20 {
		t.Errorf("first = (%v, %v, %v)", vx, vy, ok)
	}
	if m.Pending() != 1 {
		t.Errorf("pending = %d", m.Pending())
	}
}

func TestRandomIsSeeded(t *testing.T) {
	a := NewRandom(7, 200, 1500)
	b := NewRandom(7, 1500, 200)
	idle := engine.Snapshot{Phase: engine.PhaseIdle}
	for i := 0; i < 20; i++ {
		ax, ay, _ := a.Next(idle, 0)
		bx, by, _ := b.Next(idle, 0)
		if ax != bx || ay != by {
			t.Fatalf("draw %d differs: (%v,%v) vs (%v,%v)", i, ax, ay, bx, by)
		}
		speed := math.Hypot(ax, ay)
		if speed < 200-1e-9 || speed > 1500+1e-9 {
			t.Errorf("speed %v outside range", speed)
		}
	}
}

func TestAimLandsOnTarget(t *testing.T) {
	ctrl := idleController(t)
	ctrl.Place(dynamo.Vec2{X: 20, Y: 20})

	hole := dynamo.Rect{X: 150, Y: 290, Width: 60, Height: 60}
	s := ctrl.Snapshot()
	s.Zones = []capture.Zone{{Index: 0, Rect: hole}}

	aim := NewAim(config.DefaultFriction, config.FlingRestVelocity)
	vx, vy, ok := aim.Next(s, 0)
	if !ok {
		t.Fatal("aim produced no gesture")
	}
	want := aim.Target(s, s.Zones[0])

	if !ctrl.OnFlingGesture(vx, vy) {
		t.Fatal("gesture rejected")
	}
	for i := 0; i < 600 && ctrl.IsAnythingMoving(); i++ {
		ctrl.Step(1.0 / 60)
	}
	got := ctrl.Snapshot().Position
	if d := got.Sub(want).Len(); d > 2 {
		t.Errorf("landed at %v, want within 2 of %v (off by %.3f)", got, want, d)
	}
}

func TestAimCapturesInLayout(t *testing.T) {
	cfg := config.GetPreset("classic")
	ctrl, err := engine.New(*cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctrl.Measure(cfg.Surface)
	ctrl.Place(dynamo.Vec2{X: 10, Y: 500})

	aim := NewAim(cfg.Physics.DefaultFriction, cfg.Physics.FlingRestVelocity)
	vx, vy, ok := aim.Next(ctrl.Snapshot(), 0)
	if !ok || !ctrl.OnFlingGesture(vx, vy) {
		t.Fatal("no fling")
	}
	for i := 0; i < 600 && !ctrl.Frozen(); i++ {
		ctrl.Step(1.0 / 60)
	}
	if ctrl.Captures() != 1 {
		t.Errorf("captures = %d, want 1", ctrl.Captures())
	}
}

func TestAimIdleOnly(t *testing.T) {
	aim := NewAim(1.1, 62.5)
	s := engine.Snapshot{Phase: engine.PhaseMoving, Measured: true, Zones: []capture.Zone{{}}}
	if _, _, ok := aim.Next(s, 0); ok {
		t.Error("aimed while moving")
	}
}

func TestDragVelocity(t *testing.T) {
	tests := []struct {
		name    string
		samples []dynamo.Vec2
		step    float64
		release float64
		want    dynamo.Vec2
	}{
		{"steady", []dynamo.Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 10}}, 0.02, 0.04, dynamo.Vec2{X: 500, Y: 250}},
		{"stale samples ignored", []dynamo.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 0}}, 0.05, 0.15, dynamo.Vec2{}},
		{"single sample", []dynamo.Vec2{{X: 5, Y: 5}}, 0.02, 0.0, dynamo.Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDrag()
			d.Begin(tt.samples[0], 0)
			for i, p := range tt.samples[1:] {
				d.Move(p, float64(i+1)*tt.step)
			}
			got := d.Release(tt.release)
			if math.Abs(got.X-tt.want.X) > 1e-6 || math.Abs(got.Y-tt.want.Y) > 1e-6 {
				t.Errorf("velocity = %v, want %v", got, tt.want)
			}
			if d.Active() {
				t.Error("drag still active after release")
			}
		})
	}
}

func TestDragMoveWithoutBeginIgnored(t *testing.T) {
	d := NewDrag()
	d.Move(dynamo.Vec2{X: 10}, 0.01)
	if v := d.Release(0.02); v != (dynamo.Vec2{}) {
		t.Errorf("velocity = %v", v)
	}
}
