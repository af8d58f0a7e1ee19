package motion

import "math"

// DefaultVelocityThreshold is the speed, in units per second, every source
// must stay under for the ball to be captured.
const DefaultVelocityThreshold = 300.0

// Tracker holds the last reported velocity of each source. Each source has
// exactly one slot and only that source writes it.
type Tracker struct {
	threshold  float64
	velocities [numSources]float64
}

func NewTracker(threshold float64) *Tracker {
	return &Tracker{threshold: threshold}
}

func (t *Tracker) Threshold() float64 { return t.threshold }

func (t *Tracker) Report(src Source, velocity float64) {
	t.velocities[src] = velocity
}

func (t *Tracker) Reset(src Source) {
	t.velocities[src] = 0
}

func (t *Tracker) ResetAll() {
	t.velocities = [numSources]float64{}
}

func (t *Tracker) Velocity(src Source) float64 {
	return t.velocities[src]
}

// Velocities returns a copy of all four slots in Sources order.
func (t *Tracker) Velocities() [4]float64 {
	return t.velocities
}

// IsCaptureEligible reports whether every source is strictly below the threshold.
func (t *Tracker) IsCaptureEligible() bool {
	for _, v := range t.velocities {
		if math.Abs(v) >= t.threshold {
			return false
		}
	}
	return true
}
