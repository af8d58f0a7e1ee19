package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/holesim/internal/automation"
	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/experiment"
)

// Objective scores one point of the grid.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	// Maximize selects the highest score instead of the lowest.
	Maximize bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Point is one evaluated grid point.
type Point struct {
	Params map[string]float64
	Score  float64
}

// Search evaluates every point of the grid and returns the best one along
// with every point evaluated. Points whose objective fails are skipped.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (Point, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Point{}, nil, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Point{Score: math.Inf(1)}
	if g.Maximize {
		best.Score = math.Inf(-1)
	}
	var all []Point

	g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &all)
	if err := ctx.Err(); err != nil {
		return best, all, err
	}
	if best.Params == nil {
		return best, all, fmt.Errorf("no grid point could be evaluated")
	}
	return best, all, nil
}

func (g *GridSearch) better(a, b float64) bool {
	if g.Maximize {
		return a > b
	}
	return a < b
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *Point,
	all *[]Point,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		score, err := objective(ctx, current)
		if err != nil {
			return
		}
		*all = append(*all, Point{Params: current, Score: score})
		if g.better(score, best.Score) {
			*best = Point{Params: current, Score: score}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, objective, best, all)
	}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// CaptureRate scores a grid point by the capture rate of a random-fling
// ensemble run with the point's physics constants applied to base.
func CaptureRate(base *config.Config, ens automation.EnsembleConfig, registry *experiment.Registry) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := base.Clone()
		for name, v := range params {
			if err := automation.ApplyParam(cfg, name, v); err != nil {
				return 0, err
			}
		}
		if err := cfg.Validate(); err != nil {
			return 0, err
		}
		e := ens
		e.Base = cfg
		stats, err := automation.RunEnsemble(ctx, e, registry)
		if err != nil {
			return 0, err
		}
		return stats.CaptureRate, nil
	}
}
