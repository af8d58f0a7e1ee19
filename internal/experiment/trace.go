package experiment

import (
	"math"

	"github.com/san-kum/holesim/internal/engine"
)

// Sample is the ball at the end of one frame.
type Sample struct {
	Time  float64      `json:"t"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	VX    float64      `json:"vx"`
	VY    float64      `json:"vy"`
	Phase engine.Phase `json:"phase"`
	Alpha float64      `json:"alpha"`
	Scale float64      `json:"scale"`
}

type Trace []Sample

func SampleOf(s engine.Snapshot) Sample {
	return Sample{
		Time:  s.Time,
		X:     s.Position.X,
		Y:     s.Position.Y,
		VX:    s.Velocity.X,
		VY:    s.Velocity.Y,
		Phase: s.Phase,
		Alpha: s.Visual.Alpha,
		Scale: s.Visual.Scale.X,
	}
}

// Column extracts one series by name: t, x, y, vx, vy, speed, alpha or scale.
func (tr Trace) Column(name string) []float64 {
	out := make([]float64, 0, len(tr))
	for _, s := range tr {
		var v float64
		switch name {
		case "t":
			v = s.Time
		case "x":
			v = s.X
		case "y":
			v = s.Y
		case "vx":
			v = s.VX
		case "vy":
			v = s.VY
		case "speed":
			v = s.Speed()
		case "alpha":
			v = s.Alpha
		case "scale":
			v = s.Scale
		default:
			return nil
		}
		out = append(out, v)
	}
	return out
}

func (s Sample) Speed() float64 {
	return math.Hypot(s.VX, s.VY)
}

// Columns lists the names Column understands.
func Columns() []string {
	return []string{"t", "x", "y", "vx", "vy", "speed", "alpha", "scale"}
}
