package analysis

import (
	"strings"

	"github.com/san-kum/holesim/internal/experiment"
	"github.com/san-kum/holesim/internal/motion"
)

type Point struct {
	X, Y float64
}

// PhasePortrait2D holds position against velocity for one axis.
type PhasePortrait2D struct {
	Axis   motion.Axis
	Points []Point
}

// PhasePortrait extracts the (position, velocity) trajectory of one axis.
func PhasePortrait(trace experiment.Trace, axis motion.Axis) *PhasePortrait2D {
	portrait := &PhasePortrait2D{Axis: axis, Points: make([]Point, 0, len(trace))}
	for _, s := range trace {
		p := Point{X: s.X, Y: s.VX}
		if axis == motion.AxisY {
			p = Point{X: s.Y, Y: s.VY}
		}
		portrait.Points = append(portrait.Points, p)
	}
	return portrait
}

type extent struct {
	min, max float64
}

func (e *extent) grow(v float64) {
	if v < e.min {
		e.min = v
	}
	if v > e.max {
		e.max = v
	}
}

// padded widens the extent by 10% on each side and never returns a zero span.
func (e extent) padded() (float64, float64) {
	span := e.max - e.min
	if span == 0 {
		span = 1
	}
	return e.min - span*0.1, span * 1.2
}

// PhasePortraitToASCII plots the portrait on a width by height character grid.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	ex := extent{portrait.Points[0].X, portrait.Points[0].X}
	ey := extent{portrait.Points[0].Y, portrait.Points[0].Y}
	for _, p := range portrait.Points {
		ex.grow(p.X)
		ey.grow(p.Y)
	}
	minX, spanX := ex.padded()
	minY, spanY := ey.padded()

	col := func(x float64) int { return int((x - minX) / spanX * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/spanY*float64(height-1)) }

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	// The zero-velocity line is where every fling and spring comes to rest.
	if r := row(0); r >= 0 && r < height {
		for c := range grid[r] {
			grid[r][c] = '─'
		}
	}
	for _, p := range portrait.Points {
		r, c := row(p.Y), col(p.X)
		if r >= 0 && r < height && c >= 0 && c < width {
			grid[r][c] = '•'
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
