package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/control"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/integrators"
	"github.com/san-kum/holesim/internal/metrics"
)

// Registry maps names used on the command line and in scenario files to
// the things they build.
type Registry struct {
	sources map[string]func(cfg *config.Config, params map[string]float64) control.GestureSource
}

func NewRegistry() *Registry {
	r := &Registry{
		sources: make(map[string]func(*config.Config, map[string]float64) control.GestureSource),
	}

	r.sources["none"] = func(*config.Config, map[string]float64) control.GestureSource {
		return control.NewNone()
	}
	r.sources["manual"] = func(*config.Config, map[string]float64) control.GestureSource {
		return control.NewManual()
	}
	r.sources["aim"] = func(cfg *config.Config, _ map[string]float64) control.GestureSource {
		return control.NewAim(cfg.Physics.DefaultFriction, cfg.Physics.FlingRestVelocity)
	}
	r.sources["random"] = func(cfg *config.Config, params map[string]float64) control.GestureSource {
		lo, hi := params["min_speed"], params["max_speed"]
		if hi == 0 {
			lo, hi = 200, 2500
		}
		return control.NewRandom(cfg.Seed, lo, hi)
	}

	return r
}

func (r *Registry) GetSource(name string, cfg *config.Config, params map[string]float64) (control.GestureSource, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown gesture source: %s", name)
	}
	return fn(cfg, params), nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	integ, ok := integrators.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return integ, nil
}

func (r *Registry) ListSources() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListIntegrators() []string {
	return integrators.Names()
}

func (r *Registry) ListLayouts() []string {
	return config.ListLayouts()
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return metrics.Default()
}

// Build sets up an experiment from names, ready to Run.
func (r *Registry) Build(cfg Config) (*Experiment, error) {
	if cfg.Engine == nil {
		cfg.Engine = config.DefaultConfig()
	}
	if cfg.Gesture == "" {
		cfg.Gesture = "random"
	}
	src, err := r.GetSource(cfg.Gesture, cfg.Engine, cfg.Params)
	if err != nil {
		return nil, err
	}
	exp := New(cfg)
	if err := exp.Setup(src, r.DefaultMetrics()); err != nil {
		return nil, err
	}
	return exp, nil
}
