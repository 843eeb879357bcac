// Package sim drives repeated advancement of an nbody.System and
// collects diagnostics. The loop is strictly sequential: the reduction
// order inside a step is part of the core's reproducibility contract,
// so there is nothing to parallelize without changing results.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orrery/internal/nbody"
)

type Runner struct {
	metrics   []Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances sys cfg.Steps times with timestep cfg.Dt. Every frame is
// derived from the system value of the previous step; sys itself is
// never mutated. Cancellation is checked between steps only, so a
// returned Result always holds a consistent snapshot.
func (r *Runner) Run(ctx context.Context, sys nbody.System, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	sampleEvery := cfg.SampleEvery
	if sampleEvery <= 0 {
		sampleEvery = 1
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Frames:        make([]Frame, 0, cfg.Steps/sampleEvery+2),
		Metrics:       make(map[string]float64),
		InitialEnergy: sys.Energy(),
		Errors:        make([]error, 0),
	}
	result.Frames = append(result.Frames, Frame{Energy: result.InitialEnergy, System: sys})

	t := 0.0
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result, sys)
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(sys, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(sys, i, t)
		}

		sys = sys.Advance(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !sys.IsValid() {
			err := StepError{Step: i, Time: t, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		if (i+1)%sampleEvery == 0 || i == cfg.Steps-1 {
			result.Frames = append(result.Frames, Frame{
				Step:   i + 1,
				Time:   t,
				Energy: sys.Energy(),
				System: sys,
			})
		}
	}

	r.finish(result, sys)
	return result, nil
}

func (r *Runner) finish(result *Result, sys nbody.System) {
	result.Final = sys
	result.FinalEnergy = sys.Energy()
	if result.InitialEnergy != 0 {
		result.EnergyDrift = math.Abs(result.FinalEnergy-result.InitialEnergy) / math.Abs(result.InitialEnergy)
	}
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	return nil
}
