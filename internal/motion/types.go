package motion

import "fmt"

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Mechanism is what currently writes an axis value.
type Mechanism int

const (
	Idle Mechanism = iota
	Flinging
	Springing
)

func (m Mechanism) String() string {
	switch m {
	case Idle:
		return "idle"
	case Flinging:
		return "fling"
	case Springing:
		return "spring"
	}
	return fmt.Sprintf("mechanism(%d)", int(m))
}

// Source identifies one of the four velocity producers.
type Source int

const (
	FlingX Source = iota
	FlingY
	SpringX
	SpringY
	numSources
)

var sourceNames = [numSources]string{"fling_x", "fling_y", "spring_x", "spring_y"}

func (s Source) String() string {
	if s < 0 || s >= numSources {
		return fmt.Sprintf("source(%d)", int(s))
	}
	return sourceNames[s]
}

// Sources lists every source in tracker order.
func Sources() []Source {
	return []Source{FlingX, FlingY, SpringX, SpringY}
}

// SourceOf maps an axis and an active mechanism to its tracker source.
func SourceOf(axis Axis, m Mechanism) Source {
	if m == Springing {
		return SpringX + Source(axis)
	}
	return FlingX + Source(axis)
}

// Friction selects one of the two fling friction coefficients.
type Friction int

const (
	FrictionDefault Friction = iota
	FrictionBrake
)

func (f Friction) String() string {
	if f == FrictionBrake {
		return "brake"
	}
	return "default"
}

// Bounds is the inclusive range a fling may travel in.
type Bounds struct {
	Min float64
	Max float64
}

// BoundsFor derives the travel range of a ball of size ball on a surface
// of size surface. The range is degenerate when the surface has not been
// measured yet; callers must not use it before measurement.
func BoundsFor(surface, ball float64) Bounds {
	return Bounds{Min: 0, Max: surface - ball}
}

func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}
