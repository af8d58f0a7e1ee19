// Package motion drives one axis of the ball through fling and spring
// motion and fuses the per-source velocities into a capture decision.
//
// An [AxisMotion] owns the coordinate of a single axis. A fling decays
// under drag until it rests or reaches a bound; reaching a bound with
// residual velocity hands that velocity to a spring aimed at the bound,
// which produces the visible bounce. Both mechanisms report every step to
// an [Owner], which is expected to feed a [Tracker].
//
// A [Tracker] keeps the last reported velocity of each of the four
// sources (fling and spring on each axis). The ball is slow enough to be
// captured only when all four are below the threshold at once.
package motion
