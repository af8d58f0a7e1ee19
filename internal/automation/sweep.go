package automation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/experiment"
	"golang.org/x/sync/errgroup"
)

// EnsembleConfig runs Trials independent sessions that differ only in seed.
type EnsembleConfig struct {
	Base     *config.Config
	Gesture  string
	Params   map[string]float64
	Trials   int
	Duration float64
	Seed     int64
	Workers  int
}

// EnsembleStats summarizes an ensemble. Each session ends at its first
// capture, so CaptureRate is the fraction of sessions that captured.
type EnsembleStats struct {
	Trials            int
	Captured          int
	CaptureRate       float64
	MeanTimeToCapture float64
	MeanBounces       float64
	MeanRejections    float64
}

// RunEnsemble executes the sessions in parallel, at most Workers at a time.
func RunEnsemble(ctx context.Context, cfg EnsembleConfig, registry *experiment.Registry) (*EnsembleStats, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}
	if cfg.Base == nil {
		cfg.Base = config.DefaultConfig()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*experiment.Result, cfg.Trials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for trial := 0; trial < cfg.Trials; trial++ {
		g.Go(func() error {
			engineCfg := cfg.Base.Clone()
			engineCfg.Seed = cfg.Seed + int64(trial)

			exp, err := registry.Build(experiment.Config{
				Name:        fmt.Sprintf("trial-%d", trial),
				Engine:      engineCfg,
				Gesture:     cfg.Gesture,
				Params:      cfg.Params,
				Duration:    cfg.Duration,
				MaxCaptures: 1,
			})
			if err != nil {
				return err
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			results[trial] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summarize(results), nil
}

func summarize(results []*experiment.Result) *EnsembleStats {
	stats := &EnsembleStats{Trials: len(results)}
	var ttc float64
	for _, r := range results {
		stats.MeanBounces += r.Metrics["bounces"]
		stats.MeanRejections += r.Metrics["rejections"]
		if r.Captures > 0 {
			stats.Captured++
			ttc += r.Metrics["time_to_capture"]
		}
	}
	n := float64(stats.Trials)
	stats.CaptureRate = float64(stats.Captured) / n
	stats.MeanBounces /= n
	stats.MeanRejections /= n
	if stats.Captured > 0 {
		stats.MeanTimeToCapture = ttc / float64(stats.Captured)
	}
	return stats
}

// ParameterSweep runs an ensemble at evenly spaced values of one parameter.
type ParameterSweep struct {
	Ensemble  EnsembleConfig
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Stats      EnsembleStats
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	base := sweep.Ensemble.Base
	if base == nil {
		base = config.DefaultConfig()
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := base.Clone()
		if err := ApplyParam(cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		ens := sweep.Ensemble
		ens.Base = cfg
		stats, err := RunEnsemble(ctx, ens, registry)
		if err != nil {
			return nil, err
		}
		results = append(results, SweepResult{ParamValue: paramVal, Stats: *stats})
	}
	return results, nil
}
