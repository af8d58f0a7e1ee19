package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/experiment"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted list of sessions.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Sessions    []Session `yaml:"sessions"`
}

// Session is one headless run inside a scenario.
type Session struct {
	Name        string             `yaml:"name"`
	Preset      string             `yaml:"preset"`
	Layout      string             `yaml:"layout"`
	Gesture     string             `yaml:"gesture"`
	Duration    float64            `yaml:"duration"`
	MaxCaptures int                `yaml:"max_captures"`
	Seed        int64              `yaml:"seed"`
	Start       *dynamo.Vec2       `yaml:"start"`
	Physics     map[string]float64 `yaml:"physics"`
	Params      map[string]float64 `yaml:"params"`
	SaveAs      string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Sessions) == 0 {
		return nil, fmt.Errorf("scenario %q has no sessions", scenario.Name)
	}
	return &scenario, nil
}

// EngineConfig resolves the preset, layout and physics overrides of s.
func (s Session) EngineConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Layout != "" {
		if _, ok := config.Layouts[s.Layout]; !ok {
			return nil, fmt.Errorf("unknown layout: %s", s.Layout)
		}
		config.WithLayout(cfg, s.Layout)
	}
	for name, v := range s.Physics {
		if err := ApplyParam(cfg, name, v); err != nil {
			return nil, err
		}
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return cfg, cfg.Validate()
}

// RunScenario executes every session in order.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, log *slog.Logger) ([]*experiment.Result, error) {
	results := make([]*experiment.Result, 0, len(scenario.Sessions))

	for i, sess := range scenario.Sessions {
		log.Info("running session", "step", i+1, "of", len(scenario.Sessions), "name", sess.Name)

		cfg, err := sess.EngineConfig()
		if err != nil {
			return results, fmt.Errorf("session %d: %w", i+1, err)
		}
		duration := sess.Duration
		if duration <= 0 {
			duration = config.DefaultMaxSessionSeconds
		}

		exp, err := registry.Build(experiment.Config{
			Name:        sess.Name,
			Engine:      cfg,
			Gesture:     sess.Gesture,
			Params:      sess.Params,
			Duration:    duration,
			MaxCaptures: sess.MaxCaptures,
			Start:       sess.Start,
		})
		if err != nil {
			return results, fmt.Errorf("session %d setup: %w", i+1, err)
		}
		exp.SetLogger(log)

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("session %d run: %w", i+1, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// ApplyParam sets a named physics constant on cfg.
func ApplyParam(cfg *config.Config, name string, value float64) error {
	switch name {
	case "default_friction":
		cfg.Physics.DefaultFriction = value
	case "brake_friction":
		cfg.Physics.BrakeFriction = value
	case "velocity_threshold":
		cfg.Physics.VelocityThreshold = value
	case "fling_rest_velocity":
		cfg.Physics.FlingRestVelocity = value
	case "frame_rate":
		cfg.FrameRate = int(value)
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// Params lists the names ApplyParam understands.
func Params() []string {
	return []string{"default_friction", "brake_friction", "velocity_threshold", "fling_rest_velocity", "frame_rate"}
}
