package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/integrators"
	"github.com/san-kum/holesim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFriction          = 1.1
	BrakeFriction            = 5.0
	VelocityThreshold        = 300.0
	FlingRestVelocity        = 62.5
	DefaultStiffness         = "low"
	DefaultDamping           = "high_bouncy"
	DefaultCaptureDuration   = 300 * time.Millisecond
	DefaultReappearDuration  = 300 * time.Millisecond
	DefaultFrameRate         = 60
	DefaultIntegrator        = "rk4"
	DefaultEasing            = "in_out"
	DefaultSurfaceWidth      = 360.0
	DefaultSurfaceHeight     = 640.0
	DefaultBallSize          = 40.0
	DefaultHoleSize          = 60.0
	DefaultLayout            = "octo"
	DefaultMaxSessionSeconds = 60.0
)

type Config struct {
	Layout     string         `yaml:"layout"`
	Integrator string         `yaml:"integrator"`
	FrameRate  int            `yaml:"frame_rate"`
	Seed       int64          `yaml:"seed"`
	Physics    PhysicsConfig  `yaml:"physics"`
	Sequence   SequenceConfig `yaml:"sequence"`
	Surface    dynamo.Vec2    `yaml:"surface"`
	Ball       BallConfig     `yaml:"ball"`
	Holes      []dynamo.Rect  `yaml:"holes"`
}

type PhysicsConfig struct {
	DefaultFriction   float64 `yaml:"default_friction"`
	BrakeFriction     float64 `yaml:"brake_friction"`
	VelocityThreshold float64 `yaml:"velocity_threshold"`
	FlingRestVelocity float64 `yaml:"fling_rest_velocity"`
	Stiffness         string  `yaml:"stiffness"`
	Damping           string  `yaml:"damping"`
}

type SequenceConfig struct {
	CaptureDuration  time.Duration `yaml:"capture_duration"`
	ReappearDuration time.Duration `yaml:"reappear_duration"`
	Easing           string        `yaml:"easing"`
}

type BallConfig struct {
	Size  dynamo.Vec2 `yaml:"size"`
	Start dynamo.Vec2 `yaml:"start"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		Layout:     DefaultLayout,
		Integrator: DefaultIntegrator,
		FrameRate:  DefaultFrameRate,
		Physics: PhysicsConfig{
			DefaultFriction:   DefaultFriction,
			BrakeFriction:     BrakeFriction,
			VelocityThreshold: VelocityThreshold,
			FlingRestVelocity: FlingRestVelocity,
			Stiffness:         DefaultStiffness,
			Damping:           DefaultDamping,
		},
		Sequence: SequenceConfig{
			CaptureDuration:  DefaultCaptureDuration,
			ReappearDuration: DefaultReappearDuration,
			Easing:           DefaultEasing,
		},
		Surface: dynamo.Vec2{X: DefaultSurfaceWidth, Y: DefaultSurfaceHeight},
		Ball: BallConfig{
			Size: dynamo.Vec2{X: DefaultBallSize, Y: DefaultBallSize},
		},
	}
	cfg.Holes = LayoutHoles(DefaultLayout, cfg.Surface)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Holes = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Holes) == 0 {
		cfg.Holes = LayoutHoles(cfg.Layout, cfg.Surface)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects constants that would keep motion from converging.
func (c *Config) Validate() error {
	p := c.Physics
	if p.DefaultFriction <= 0 {
		return fmt.Errorf("physics.default_friction %v: %w", p.DefaultFriction, dynamo.ErrParameterBounds)
	}
	if p.BrakeFriction < p.DefaultFriction {
		return fmt.Errorf("physics.brake_friction %v below default %v: %w", p.BrakeFriction, p.DefaultFriction, dynamo.ErrParameterBounds)
	}
	if p.VelocityThreshold <= 0 {
		return fmt.Errorf("physics.velocity_threshold %v: %w", p.VelocityThreshold, dynamo.ErrParameterBounds)
	}
	if p.FlingRestVelocity <= 0 {
		return fmt.Errorf("physics.fling_rest_velocity %v: %w", p.FlingRestVelocity, dynamo.ErrParameterBounds)
	}
	if _, err := c.Stiffness(); err != nil {
		return err
	}
	if _, err := c.DampingRatio(); err != nil {
		return err
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate %d: %w", c.FrameRate, dynamo.ErrParameterBounds)
	}
	if c.Ball.Size.X <= 0 || c.Ball.Size.Y <= 0 {
		return fmt.Errorf("ball.size %v: %w", c.Ball.Size, dynamo.ErrParameterBounds)
	}
	if c.Sequence.CaptureDuration < 0 || c.Sequence.ReappearDuration < 0 {
		return fmt.Errorf("sequence durations: %w", dynamo.ErrParameterBounds)
	}
	if _, ok := integrators.ByName(c.Integrator); !ok {
		return fmt.Errorf("unknown integrator: %s", c.Integrator)
	}
	return nil
}

// Stiffness resolves the named stiffness level.
func (c *Config) Stiffness() (float64, error) {
	return physics.StiffnessLevel(c.Physics.Stiffness)
}

// DampingRatio resolves the named damping ratio level.
func (c *Config) DampingRatio() (float64, error) {
	return physics.DampingLevel(c.Physics.Damping)
}

// FrameDt is the fixed frame interval in seconds.
func (c *Config) FrameDt() float64 {
	if c.FrameRate <= 0 {
		return 1.0 / DefaultFrameRate
	}
	return 1.0 / float64(c.FrameRate)
}

// Clone returns a deep copy so callers may tweak one run without touching another.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Holes = append([]dynamo.Rect(nil), c.Holes...)
	return &cp
}
