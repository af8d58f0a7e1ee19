package export

import (
	"strings"
	"testing"

	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/experiment"
)

func TestTraceToSVG(t *testing.T) {
	trace := experiment.Trace{
		{X: 0, Y: 0, Phase: engine.PhaseMoving},
		{X: 10, Y: 0, Phase: engine.PhaseMoving},
		{X: 20, Y: 5, Phase: engine.PhaseMoving},
		{X: 20, Y: 5, Phase: engine.PhaseCapturing},
		{X: 20, Y: 5, Phase: engine.PhaseIdle},
	}
	scene := Scene{
		Surface:  dynamo.Vec2{X: 100, Y: 50},
		BallSize: dynamo.Vec2{X: 10, Y: 10},
		Holes:    []dynamo.Rect{{X: 20, Y: 5, Width: 10, Height: 10}},
	}

	svg := TraceToSVG(trace, scene, 2)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(svg, `width="200" height="100"`) {
		t.Error("surface not scaled")
	}
	if n := strings.Count(svg, "<polyline"); n != 2 {
		t.Errorf("polylines = %d, want 2", n)
	}
	if !strings.Contains(svg, `points="10.0,10.0 30.0,10.0 50.0,20.0 50.0,20.0"`) {
		t.Errorf("moving run points missing:\n%s", svg)
	}
	if strings.Count(svg, "<rect") != 2 {
		t.Error("hole not drawn")
	}
}

func TestPhaseRuns(t *testing.T) {
	trace := experiment.Trace{
		{Phase: engine.PhaseIdle},
		{Phase: engine.PhaseMoving},
		{Phase: engine.PhaseMoving},
	}
	runs := phaseRuns(trace)
	if len(runs) != 2 || len(runs[0]) != 2 || len(runs[1]) != 2 {
		t.Errorf("runs = %v", runs)
	}
	if phaseRuns(nil) != nil {
		t.Error("empty trace produced runs")
	}
}
