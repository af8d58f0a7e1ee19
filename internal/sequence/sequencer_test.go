package sequence

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/holesim/internal/dynamo"
)

const frame = 1.0 / 60

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEasingEndpoints(t *testing.T) {
	curves := map[string]Easing{
		"linear":       EaseLinear,
		"in_out":       EaseInOut,
		"in_out_cubic": EaseInOutCubic,
		"out_cubic":    EaseOutCubic,
	}
	for name, ease := range curves {
		if !near(ease(0), 0) || !near(ease(1), 1) {
			t.Errorf("%s: ease(0)=%v ease(1)=%v, want 0 and 1", name, ease(0), ease(1))
		}
		if !near(ease(0.5), 0.5) && name != "out_cubic" {
			t.Errorf("%s: ease(0.5)=%v, want symmetric midpoint", name, ease(0.5))
		}
	}
}

func TestCaptureScriptOrder(t *testing.T) {
	s := New(DefaultOptions())
	done := 0
	s.Capture(dynamo.Vec2{X: -30, Y: 12}, func() { done++ })

	// halfway through the translate step nothing has faded yet
	for i := 0; i < 9; i++ {
		s.Advance(frame)
	}
	v := s.Visual()
	if v.Alpha != 1 || v.Scale.X != 1 {
		t.Errorf("mid-translate visual = %+v, want alpha 1 scale 1", v)
	}
	if v.Translate.X >= 0 || v.Translate.X <= -30 {
		t.Errorf("mid-translate x = %v, want strictly between 0 and -30", v.Translate.X)
	}

	for i := 0; i < 40 && s.Running(); i++ {
		s.Advance(frame)
	}
	if s.Running() {
		t.Fatal("capture script still running after 0.8s")
	}
	v = s.Visual()
	if v.Translate != (dynamo.Vec2{X: -30, Y: 12}) {
		t.Errorf("final translate = %v, want (-30, 12)", v.Translate)
	}
	if v.Alpha != 0 || v.Scale != (dynamo.Vec2{X: CaptureScale, Y: CaptureScale}) {
		t.Errorf("final visual = %+v, want alpha 0 scale 0.5", v)
	}
	if done != 1 {
		t.Errorf("completion fired %d times, want 1", done)
	}
}

func TestCallbackMayChainScript(t *testing.T) {
	s := New(Options{CaptureDuration: 100 * time.Millisecond, ReappearDuration: 100 * time.Millisecond})
	var order []string
	s.Capture(dynamo.Vec2{}, func() {
		order = append(order, "captured")
		s.ResetTransform()
		s.Reappear(func() { order = append(order, "reappeared") })
	})

	for i := 0; i < 60 && len(order) < 2; i++ {
		s.Advance(frame)
	}
	if len(order) != 2 || order[0] != "captured" || order[1] != "reappeared" {
		t.Fatalf("order = %v", order)
	}
	if s.Visual() != Identity() {
		t.Errorf("visual after reappear = %+v, want identity", s.Visual())
	}
}

func TestAbortSkipsCallback(t *testing.T) {
	s := New(DefaultOptions())
	fired := false
	s.Reappear(func() { fired = true })
	s.Advance(frame)
	s.Abort()
	for i := 0; i < 60; i++ {
		s.Advance(frame)
	}
	if fired {
		t.Error("aborted script fired its callback")
	}
	if s.Running() {
		t.Error("sequencer running after abort")
	}
}

func TestLargeStepCompletesWholeScript(t *testing.T) {
	s := New(DefaultOptions())
	fired := false
	s.Capture(dynamo.Vec2{X: 5, Y: 5}, func() { fired = true })
	s.Advance(10)
	if !fired {
		t.Error("a step longer than the script did not complete it")
	}
}
