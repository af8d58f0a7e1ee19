package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
)

func (a *App) screen(p dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(p.X)*a.Scale, float32(p.Y)*a.Scale+hudHeight)
}

func (a *App) drawSurface(snap engine.Snapshot) {
	rl.DrawRectangle(0, hudHeight, int32(snap.Surface.X*float64(a.Scale)), int32(snap.Surface.Y*float64(a.Scale)), ColSurface)
	for _, z := range snap.Zones {
		c := a.screen(z.Rect.Center())
		r := float32(z.Rect.Width/2) * a.Scale
		rl.DrawCircleV(c, r, ColHole)
		rl.DrawCircleLines(int32(c.X), int32(c.Y), r, ColRim)
	}
}

func (a *App) drawTrail() {
	for i := 1; i < len(a.Trail); i++ {
		alpha := float32(i) / float32(len(a.Trail))
		rl.DrawLineEx(a.screen(a.Trail[i-1]), a.screen(a.Trail[i]), 2, rl.Fade(ColTrail, alpha*0.6))
	}
}

// drawBall applies the capture animation transform on top of the logical
// position; the scale shrinks the ball about its own center.
func (a *App) drawBall(snap engine.Snapshot) {
	v := snap.Visual
	if v.Alpha <= 0 {
		return
	}
	p := snap.VisualPosition()
	c := a.screen(dynamo.Vec2{X: p.X + snap.BallSize.X/2, Y: p.Y + snap.BallSize.Y/2})
	r := float32(snap.BallSize.X/2*v.Scale.X) * a.Scale
	rl.DrawCircleV(c, r, rl.Fade(ColBall, float32(v.Alpha)))
}
