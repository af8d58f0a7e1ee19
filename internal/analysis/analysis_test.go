package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/experiment"
	"github.com/san-kum/holesim/internal/motion"
)

func TestDominantFrequencyOfSine(t *testing.T) {
	const dt = 1.0 / 64
	samples := make([]float64, 256)
	for i := range samples {
		samples[i] = 3 + math.Sin(2*math.Pi*4*float64(i)*dt)
	}
	f, p := DominantFrequency(samples, dt)
	if math.Abs(f-4) > 1e-9 {
		t.Errorf("frequency = %v, want 4", f)
	}
	if p <= 0 {
		t.Errorf("power = %v", p)
	}
}

func TestSpectrumDegenerate(t *testing.T) {
	if Spectrum([]float64{1}, 0.1) != nil || Spectrum([]float64{1, 2}, 0) != nil {
		t.Error("expected nil spectrum")
	}
}

func TestSpringFrequency(t *testing.T) {
	f := SpringFrequency(200, 0.2)
	want := math.Sqrt(200) * math.Sqrt(0.96) / (2 * math.Pi)
	if math.Abs(f-want) > 1e-12 {
		t.Errorf("got %v want %v", f, want)
	}
	if SpringFrequency(200, 1) != 0 {
		t.Error("critically damped spring rings")
	}
}

func TestSettleTimeAndReversals(t *testing.T) {
	tr := experiment.Trace{
		{Time: 0, VX: 500},
		{Time: 1, VX: -200},
		{Time: 2, VX: 5},
		{Time: 3, VX: 400},
		{Time: 4, VX: 2},
		{Time: 5, VX: 0},
	}
	if got := SettleTime(tr, 10); got != 4 {
		t.Errorf("settle = %v, want 4", got)
	}
	if got := SettleTime(tr[:4], 10); got != -1 {
		t.Errorf("unsettled trace = %v", got)
	}
	if got := Reversals(tr.Column("vx")); got != 2 {
		t.Errorf("reversals = %d, want 2", got)
	}
}

func TestPhasePortrait(t *testing.T) {
	tr := experiment.Trace{{X: 1, VX: 2, Y: 3, VY: 4}, {X: 2, VX: 0, Y: 5, VY: -1}}
	p := PhasePortrait(tr, motion.AxisY)
	if len(p.Points) != 2 || p.Points[0] != (Point{3, 4}) {
		t.Errorf("points = %v", p.Points)
	}
	art := PhasePortraitToASCII(p, 20, 8)
	if strings.Count(art, "\n") != 8 || !strings.Contains(art, "•") {
		t.Errorf("ascii:\n%s", art)
	}
	if PhasePortraitToASCII(nil, 10, 10) != "" {
		t.Error("nil portrait rendered")
	}
}

func TestLandingSensitivityMatchesDrag(t *testing.T) {
	cfg := config.DefaultConfig()
	s, err := LandingSensitivity(cfg, dynamo.Vec2{X: 20, Y: 20}, dynamo.Vec2{X: 600, Y: 0}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	want := 1 / (4.2 * cfg.Physics.DefaultFriction)
	if math.Abs(s-want) > 0.01 {
		t.Errorf("sensitivity = %v, want about %v", s, want)
	}
}
