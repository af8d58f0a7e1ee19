package sequence

import "math"

// Easing maps linear progress t ∈ [0, 1] to eased progress.
type Easing func(t float64) float64

func EaseLinear(t float64) float64 {
	return t
}

// EaseInOut accelerates then decelerates along a half cosine. It is the
// default curve for both scripted sequences.
func EaseInOut(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

// EaseInOutCubic starts slow, speeds up through the middle and ends slow.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutCubic starts fast and ends slow.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EasingByName resolves a configured curve name; unknown names fall back to EaseInOut.
func EasingByName(name string) Easing {
	switch name {
	case "linear":
		return EaseLinear
	case "in_out_cubic":
		return EaseInOutCubic
	case "out_cubic":
		return EaseOutCubic
	}
	return EaseInOut
}
