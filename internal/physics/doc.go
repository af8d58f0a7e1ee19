// Package physics provides the two motion models that drive a ball axis.
//
//   - [Drag]: decelerating fling motion, implemented as a [dynamo.System]
//     so any stepper from the integrators package can advance it
//   - [Spring]: damped spring used to resolve a bounce off a surface edge
//
// # Drag
//
// Fling velocity decays exponentially, v(t) = v0·exp(-4.2·friction·t).
// The 4.2 multiplier matches the drag model of common fling animators so
// friction values carry over between implementations:
//
//	drag := physics.NewDrag(1.1)
//	x := dynamo.State{pos, vel}
//	x = integ.Step(drag, x, t, dt)
//
// # Spring
//
// Springs are mass-1 oscillators stepped in closed form through harmonica;
// stiffness and damping ratio come from the named levels in this package.
package physics
