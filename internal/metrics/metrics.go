package metrics

import "github.com/san-kum/holesim/internal/engine"

// Metric accumulates one number over a session by observing the engine.
type Metric interface {
	engine.Observer
	Name() string
	Value() float64
	Reset()
}

// Default returns a fresh instance of every session metric.
func Default() []Metric {
	return []Metric{
		NewCaptures(),
		NewBounces(),
		NewRejections(),
		NewPeakSpeed(),
		NewTimeToCapture(),
	}
}

// Collect maps each metric's name to its current value.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
