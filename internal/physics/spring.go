package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/holesim/internal/dynamo"
)

// Named spring stiffness levels.
const (
	StiffnessHigh    = 10000.0
	StiffnessMedium  = 1500.0
	StiffnessLow     = 200.0
	StiffnessVeryLow = 50.0
)

// Named spring damping ratio levels. Lower ratios bounce more.
const (
	DampingHighBouncy   = 0.2
	DampingMediumBouncy = 0.5
	DampingLowBouncy    = 0.75
	DampingNoBouncy     = 1.0
)

// Spring rest thresholds for one-unit visible change.
const (
	DefaultRestDisplacement = 0.75
	DefaultRestVelocity     = DefaultRestDisplacement * 62.5
)

var stiffnessLevels = map[string]float64{
	"high":     StiffnessHigh,
	"medium":   StiffnessMedium,
	"low":      StiffnessLow,
	"very_low": StiffnessVeryLow,
}

var dampingLevels = map[string]float64{
	"high_bouncy":   DampingHighBouncy,
	"medium_bouncy": DampingMediumBouncy,
	"low_bouncy":    DampingLowBouncy,
	"no_bouncy":     DampingNoBouncy,
}

func StiffnessLevel(name string) (float64, error) {
	v, ok := stiffnessLevels[name]
	if !ok {
		return 0, fmt.Errorf("stiffness %q: %w", name, dynamo.ErrUnknownLevel)
	}
	return v, nil
}

func DampingLevel(name string) (float64, error) {
	v, ok := dampingLevels[name]
	if !ok {
		return 0, fmt.Errorf("damping %q: %w", name, dynamo.ErrUnknownLevel)
	}
	return v, nil
}

func StiffnessLevels() []string { return sortedKeys(stiffnessLevels) }
func DampingLevels() []string   { return sortedKeys(dampingLevels) }

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Spring is a unit-mass damped spring. Stepping is exact for a fixed
// frame interval; the harmonica coefficients are rebuilt when dt changes.
type Spring struct {
	Stiffness        float64
	DampingRatio     float64
	RestVelocity     float64
	RestDisplacement float64

	dt float64
	h  harmonica.Spring
}

func NewSpring(stiffness, dampingRatio float64) (*Spring, error) {
	if stiffness <= 0 {
		return nil, &dynamo.ParamError{Name: "stiffness", Value: stiffness, Wrapped: dynamo.ErrParameterBounds}
	}
	if dampingRatio <= 0 {
		return nil, &dynamo.ParamError{Name: "damping_ratio", Value: dampingRatio, Wrapped: dynamo.ErrParameterBounds}
	}
	return &Spring{
		Stiffness:        stiffness,
		DampingRatio:     dampingRatio,
		RestVelocity:     DefaultRestVelocity,
		RestDisplacement: DefaultRestDisplacement,
	}, nil
}

// AngularFrequency is sqrt(k/m) with m = 1.
func (s *Spring) AngularFrequency() float64 { return math.Sqrt(s.Stiffness) }

// Step advances (pos, vel) toward target by dt seconds.
func (s *Spring) Step(pos, vel, target, dt float64) (float64, float64) {
	if dt <= 0 {
		return pos, vel
	}
	if dt != s.dt {
		s.h = harmonica.NewSpring(dt, s.AngularFrequency(), s.DampingRatio)
		s.dt = dt
	}
	return s.h.Update(pos, vel, target)
}

// AtRest reports whether the spring is close enough to target to stop.
func (s *Spring) AtRest(pos, vel, target float64) bool {
	return math.Abs(vel) < s.RestVelocity && math.Abs(pos-target) < s.RestDisplacement
}
