// Package control provides gesture sources that decide when and how hard
// to fling the ball.
//
// Sources implement [GestureSource]; the driver asks for the next gesture
// every frame and forwards it to [engine.Controller.OnFlingGesture]:
//
//   - [None]: never flings
//   - [Manual]: replays velocities queued by a user interface
//   - [Aim]: flings toward the nearest hole using the drag model
//   - [Random]: seeded random direction and speed
//
// # Usage
//
//	src := control.NewAim(config.DefaultFriction, config.FlingRestVelocity)
//	if vx, vy, ok := src.Next(ctrl.Snapshot(), t); ok {
//		ctrl.GestureDown()
//		ctrl.OnFlingGesture(vx, vy)
//	}
package control

import "github.com/san-kum/holesim/internal/engine"

// GestureSource proposes a fling for the current frame. ok is false when
// the source has nothing to do.
type GestureSource interface {
	Next(s engine.Snapshot, t float64) (vx, vy float64, ok bool)
}
