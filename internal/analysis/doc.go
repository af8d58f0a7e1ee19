// Package analysis characterizes recorded ball motion.
//
//   - [Spectrum], [DominantFrequency]: frequency content of a velocity
//     series, used to measure the spring rattle after an edge bounce
//   - [PhasePortrait]: position against velocity for one axis
//   - [SettleTime], [Reversals]: when the ball stops and how often it
//     turned around on the way
//   - [LandingSensitivity]: how far the resting point moves when the
//     fling velocity is nudged
//
// # Rattle
//
// An edge bounce hands off to a lightly damped spring whose ringing
// frequency is sqrt(stiffness)/(2*pi) scaled by the damping:
//
//	f, _ := analysis.DominantFrequency(trace.Column("vx"), dt)
package analysis
