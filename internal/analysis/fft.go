package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Bin is one frequency of a spectrum.
type Bin struct {
	Freq  float64
	Power float64
}

// Spectrum returns the one-sided magnitude spectrum of samples taken every
// dt seconds. The mean is removed first so the DC bin does not dominate.
func Spectrum(samples []float64, dt float64) []Bin {
	n := len(samples)
	if n < 2 || dt <= 0 {
		return nil
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range samples {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	bins := make([]Bin, n/2+1)
	for k := range bins {
		bins[k] = Bin{
			Freq:  float64(k) / (float64(n) * dt),
			Power: cmplx.Abs(coeffs[k]) / float64(n),
		}
	}
	return bins
}

// DominantFrequency returns the strongest non-zero frequency in samples.
func DominantFrequency(samples []float64, dt float64) (float64, float64) {
	bins := Spectrum(samples, dt)
	best := Bin{}
	for _, b := range bins {
		if b.Freq == 0 {
			continue
		}
		if b.Power > best.Power {
			best = b
		}
	}
	return best.Freq, best.Power
}

// SpringFrequency is the ringing frequency in Hz of a unit-mass spring.
func SpringFrequency(stiffness, dampingRatio float64) float64 {
	if dampingRatio >= 1 {
		return 0
	}
	return math.Sqrt(stiffness) * math.Sqrt(1-dampingRatio*dampingRatio) / (2 * math.Pi)
}
