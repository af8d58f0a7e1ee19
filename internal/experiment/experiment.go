package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/control"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/logging"
	"github.com/san-kum/holesim/internal/metrics"
)

// Config describes one headless session.
type Config struct {
	Name     string
	Engine   *config.Config
	Gesture  string
	Params   map[string]float64
	Duration float64
	// MaxCaptures ends the session once this many captures have fully
	// reappeared. Zero means run for Duration.
	MaxCaptures int
	Start       *dynamo.Vec2
}

type Result struct {
	Name     string
	Trace    Trace
	Events   []engine.Event
	Metrics  map[string]float64
	Frames   int
	Captures int
	Duration float64
}

// Experiment runs a Controller frame by frame, feeding it gestures from a
// source and recording what happens.
type Experiment struct {
	cfg     Config
	ctrl    *engine.Controller
	source  control.GestureSource
	metrics []metrics.Metric
	log     *slog.Logger
	events  []engine.Event
}

func New(cfg Config) *Experiment {
	if cfg.Engine == nil {
		cfg.Engine = config.DefaultConfig()
	}
	return &Experiment{cfg: cfg, log: logging.Discard().Logger}
}

func (e *Experiment) SetLogger(l *slog.Logger) {
	if l != nil {
		e.log = l
	}
}

func (e *Experiment) Setup(source control.GestureSource, ms []metrics.Metric) error {
	recorder := engine.ObserverFuncs{Event: func(ev engine.Event) { e.events = append(e.events, ev) }}
	opts := []engine.Option{engine.WithLogger(e.log), engine.WithObserver(recorder)}
	for _, m := range ms {
		m.Reset()
		opts = append(opts, engine.WithObserver(m))
	}

	ctrl, err := engine.New(*e.cfg.Engine, nil, opts...)
	if err != nil {
		return err
	}
	ctrl.Measure(e.cfg.Engine.Surface)
	if e.cfg.Start != nil {
		ctrl.Place(*e.cfg.Start)
	}

	e.ctrl = ctrl
	e.source = source
	e.metrics = ms
	return nil
}

// Controller returns the controller built by Setup, for adding observers.
func (e *Experiment) Controller() *engine.Controller {
	return e.ctrl
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.ctrl == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if e.cfg.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", e.cfg.Duration)
	}

	dt := e.cfg.Engine.FrameDt()
	frames := int(math.Ceil(e.cfg.Duration / dt))
	result := &Result{
		Name:  e.cfg.Name,
		Trace: make(Trace, 0, frames+1),
	}
	result.Trace = append(result.Trace, SampleOf(e.ctrl.Snapshot()))

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return e.finish(result), ctx.Err()
		default:
		}

		s := e.ctrl.Snapshot()
		if vx, vy, ok := e.source.Next(s, s.Time); ok {
			e.ctrl.GestureDown()
			e.ctrl.OnFlingGesture(vx, vy)
		}
		e.ctrl.Step(dt)
		result.Frames++
		result.Trace = append(result.Trace, SampleOf(e.ctrl.Snapshot()))

		if e.cfg.MaxCaptures > 0 && e.ctrl.Captures() >= e.cfg.MaxCaptures && e.ctrl.Phase() == engine.PhaseIdle {
			break
		}
	}

	e.log.Debug("session finished", "name", e.cfg.Name, "frames", result.Frames, "captures", e.ctrl.Captures())
	return e.finish(result), nil
}

func (e *Experiment) finish(r *Result) *Result {
	r.Events = e.events
	r.Captures = e.ctrl.Captures()
	r.Duration = e.ctrl.Time()
	r.Metrics = metrics.Collect(e.metrics)
	return r
}
