package gui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/holesim/internal/audio"
	"github.com/san-kum/holesim/internal/control"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/logging"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColSurface = rl.NewColor(24, 40, 28, 255)
	ColHole    = rl.NewColor(2, 2, 2, 255)
	ColRim     = rl.NewColor(70, 70, 70, 255)
	ColBall    = rl.NewColor(235, 235, 235, 255)
	ColTrail   = rl.NewColor(120, 160, 200, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

const (
	hudHeight   = 60
	maxTrail    = 90
	dragMinimum = 1.0
)

// App is the windowed front end: drag the ball area and release to fling.
type App struct {
	Ctrl     *engine.Controller
	Aim      *control.Aim
	Drag     *control.Drag
	Audio    *audio.Processor
	Surface  dynamo.Vec2
	Scale    float32
	Dt       float64
	FPS      int
	Paused   bool
	Autoplay bool
	Trail    []dynamo.Vec2
	LastKind string

	log *slog.Logger
}

type Options struct {
	Scale  float32
	FPS    int
	Audio  bool
	Logger *logging.Logger
}

// NewApp measures ctrl against surface and subscribes the HUD and, when
// enabled, the chime processor to its events.
func NewApp(ctrl *engine.Controller, aim *control.Aim, surface dynamo.Vec2, opts Options) *App {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	a := &App{
		Ctrl:    ctrl,
		Aim:     aim,
		Drag:    control.NewDrag(),
		Surface: surface,
		Scale:   opts.Scale,
		Dt:      1.0 / float64(opts.FPS),
		FPS:     opts.FPS,
		Trail:   make([]dynamo.Vec2, 0, maxTrail),
		log:     opts.Logger.With("component", "gui").Logger,
	}
	ctrl.Measure(surface)
	ctrl.AddObserver(engine.ObserverFuncs{Event: func(e engine.Event) {
		a.LastKind = e.Kind.String()
	}})
	if opts.Audio {
		a.Audio = audio.NewProcessor(a.log)
		ctrl.AddObserver(a.Audio)
	}
	return a
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() {
	w := int32(a.Surface.X * float64(a.Scale))
	h := int32(a.Surface.Y*float64(a.Scale)) + hudHeight
	rl.InitWindow(w, h, "holesim")
	rl.SetTargetFPS(int32(a.FPS))
	rl.SetExitKey(0)
	defer rl.CloseWindow()

	if a.Audio != nil {
		if err := a.Audio.Start(); err != nil {
			a.log.Warn("audio unavailable", "error", err)
			a.Audio = nil
		} else {
			defer a.Audio.Stop()
		}
	}

	a.Ctrl.Attach()
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// toSurface converts a window position into surface units.
func (a *App) toSurface(p rl.Vector2) dynamo.Vec2 {
	return dynamo.Vec2{X: float64(p.X / a.Scale), Y: float64((p.Y - hudHeight) / a.Scale)}
}

// Update handles input and advances one frame. It reports whether the
// user asked to quit.
func (a *App) Update() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeySpace):
		a.Paused = !a.Paused
	case rl.IsKeyPressed(rl.KeyR):
		a.Ctrl.ForceReset()
		a.Trail = a.Trail[:0]
	case rl.IsKeyPressed(rl.KeyA):
		a.Autoplay = !a.Autoplay
	}

	now := rl.GetTime()
	mouse := a.toSurface(rl.GetMousePosition())
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Ctrl.GestureDown()
		a.Drag.Begin(mouse, now)
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.Drag.Move(mouse, now)
	} else if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		v := a.Drag.Release(now)
		if v.Len() >= dragMinimum {
			a.Ctrl.OnFlingGesture(v.X, v.Y)
		}
	}

	if a.Paused {
		return false
	}
	if a.Autoplay && a.Aim != nil {
		snap := a.Ctrl.Snapshot()
		if vx, vy, ok := a.Aim.Next(snap, snap.Time); ok {
			a.Ctrl.GestureDown()
			a.Ctrl.OnFlingGesture(vx, vy)
		}
	}
	a.Ctrl.Step(a.Dt)

	snap := a.Ctrl.Snapshot()
	if snap.Phase == engine.PhaseMoving {
		a.Trail = append(a.Trail, snap.Center())
		if len(a.Trail) > maxTrail {
			a.Trail = a.Trail[1:]
		}
	} else if snap.Phase == engine.PhaseIdle && len(a.Trail) > 0 {
		a.Trail = a.Trail[1:]
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	snap := a.Ctrl.Snapshot()
	a.drawSurface(snap)
	a.drawTrail()
	a.drawBall(snap)
	a.drawHUD(snap)
	rl.EndDrawing()
}

func (a *App) drawHUD(snap engine.Snapshot) {
	rl.DrawText("holesim", 16, 12, 24, ColSelect)
	status := snap.Phase.String()
	col := ColText
	if a.Paused {
		status, col = "paused", ColTextDim
	}
	if a.Autoplay {
		status += " / auto"
	}
	rl.DrawText(status, 16, 38, 14, col)

	right := int32(a.Surface.X*float64(a.Scale)) - 170
	rl.DrawText(fmt.Sprintf("captures %d", a.Ctrl.Captures()), right, 12, 14, ColText)
	rl.DrawText(fmt.Sprintf("speed %.0f", snap.Speed()), right, 28, 14, ColText)
	if a.LastKind != "" {
		rl.DrawText(a.LastKind, right, 44, 12, ColTextDim)
	}
}
