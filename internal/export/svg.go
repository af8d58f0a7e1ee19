package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/experiment"
)

var phaseStroke = map[engine.Phase]string{
	engine.PhaseIdle:        "#5c6370",
	engine.PhaseMoving:      "#61afef",
	engine.PhaseCapturing:   "#e06c75",
	engine.PhaseReappearing: "#98c379",
}

// Scene is what TraceToSVG draws: the surface, its holes and the ball size
// used to turn logical positions into ball centers.
type Scene struct {
	Surface  dynamo.Vec2
	BallSize dynamo.Vec2
	Holes    []dynamo.Rect
}

// TraceToSVG draws the path of the ball center over the surface, one
// polyline per run of frames in the same phase. scale maps surface units
// to SVG pixels.
func TraceToSVG(trace experiment.Trace, scene Scene, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	w, h := scene.Surface.X*scale, scene.Surface.Y*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#282c34"/>
`, w, h, w, h)

	sb.WriteString(`<g fill="#0a0a0a" stroke="#3e4451">` + "\n")
	for _, hole := range scene.Holes {
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f"/>`+"\n",
			hole.X*scale, hole.Y*scale, hole.Width*scale, hole.Height*scale, hole.Width*scale/2)
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g fill="none" stroke-width="1.5">` + "\n")
	for _, run := range phaseRuns(trace) {
		if len(run) < 2 {
			continue
		}
		pts := make([]string, len(run))
		for i, s := range run {
			c := center(s, scene.BallSize)
			pts[i] = fmt.Sprintf("%.1f,%.1f", c.X*scale, c.Y*scale)
		}
		fmt.Fprintf(&sb, `<polyline stroke="%s" points="%s"/>`+"\n", phaseStroke[run[0].Phase], strings.Join(pts, " "))
	}
	sb.WriteString("</g>\n")

	if len(trace) > 0 {
		last := center(trace[len(trace)-1], scene.BallSize)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#e5c07b"/>`+"\n",
			last.X*scale, last.Y*scale, scene.BallSize.X*scale/2)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func center(s experiment.Sample, ball dynamo.Vec2) dynamo.Vec2 {
	return dynamo.Vec2{X: s.X + ball.X/2, Y: s.Y + ball.Y/2}
}

// phaseRuns splits the trace wherever the phase changes. Consecutive runs
// share their boundary sample so the drawn path has no gaps.
func phaseRuns(trace experiment.Trace) []experiment.Trace {
	var runs []experiment.Trace
	start := 0
	for i := 1; i <= len(trace); i++ {
		if i == len(trace) || trace[i].Phase != trace[start].Phase {
			end := i
			if i < len(trace) {
				end = i + 1
			}
			runs = append(runs, trace[start:end])
			start = i
		}
	}
	return runs
}
