package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/holesim/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

// linearDrag is dx/dt = v, dv/dt = -k v.
type linearDrag struct{ k float64 }

func (d *linearDrag) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -d.k * x[1]}
}

func (d *linearDrag) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestIntegratorsDecayDrag(t *testing.T) {
	k := 4.62
	v0 := 1000.0
	dt := 1.0 / 60

	tests := []struct {
		name string
		tol  float64
	}{
		{"euler", 0.25},
		{"rk4", 1e-3},
		{"verlet", 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, ok := ByName(tt.name)
			if !ok {
				t.Fatalf("ByName(%q) not found", tt.name)
			}
			x := dynamo.State{0, v0}
			for i := 0; i < 60; i++ {
				x = integ.Step(&linearDrag{k: k}, x, float64(i)*dt, dt)
			}

			wantV := v0 * math.Exp(-k)
			if rel := math.Abs(x[1]-wantV) / wantV; rel > tt.tol {
				t.Errorf("velocity after 1s = %.4f, want %.4f (rel err %.2e)", x[1], wantV, rel)
			}
			wantX := v0 / k * (1 - math.Exp(-k))
			if rel := math.Abs(x[0]-wantX) / wantX; rel > tt.tol {
				t.Errorf("position after 1s = %.4f, want %.4f (rel err %.2e)", x[0], wantX, rel)
			}
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, ok := ByName("rk45"); ok {
		t.Error("expected unknown integrator to be rejected")
	}
}
