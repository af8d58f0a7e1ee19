package control

import "github.com/san-kum/holesim/internal/engine"

type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Next(s engine.Snapshot, t float64) (float64, float64, bool) {
	return 0, 0, false
}
