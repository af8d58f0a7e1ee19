package control

import (
	"math"
	"math/rand"

	"github.com/san-kum/holesim/internal/engine"
)

// Random flings in a uniformly random direction with a uniformly random
// speed in [MinSpeed, MaxSpeed]. The same seed replays the same flings.
type Random struct {
	MinSpeed float64
	MaxSpeed float64
	rng      *rand.Rand
}

func NewRandom(seed int64, minSpeed, maxSpeed float64) *Random {
	if maxSpeed < minSpeed {
		minSpeed, maxSpeed = maxSpeed, minSpeed
	}
	return &Random{
		MinSpeed: minSpeed,
		MaxSpeed: maxSpeed,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) Next(s engine.Snapshot, t float64) (float64, float64, bool) {
	if s.Phase != engine.PhaseIdle {
		return 0, 0, false
	}
	angle := r.rng.Float64() * 2 * math.Pi
	speed := r.MinSpeed + r.rng.Float64()*(r.MaxSpeed-r.MinSpeed)
	return speed * math.Cos(angle), speed * math.Sin(angle), true
}
