// Package dynamo provides the core primitives shared by the motion engine.
//
// The package defines the small set of value types and interfaces the
// rest of the module is built on:
//
//   - [State]: vector representing the state of an ODE system
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Vec2]: 2D position, size or velocity in surface-local units
//   - [Rect]: axis-aligned rectangle used for the surface and capture zones
//
// # Example
//
//	drag := physics.NewDrag(1.1)
//	integ := integrators.NewRK4()
//	x := dynamo.State{0, 900}
//	x = integ.Step(drag, x, 0, 1.0/60)
//
// # Thread Safety
//
// None of the types here carry locks. The engine is single-threaded and
// frame driven; callers that share values across goroutines must copy them.
package dynamo
