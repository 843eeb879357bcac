package sim

import (
	"fmt"

	"github.com/san-kum/orrery/internal/nbody"
)

// Metric accumulates a scalar diagnostic over the course of a run.
type Metric interface {
	Name() string
	Observe(s nbody.System, t float64)
	Value() float64
	Reset()
}

// Observer is notified with each pre-step snapshot.
type Observer interface {
	OnStep(s nbody.System, step int, t float64)
}

type Config struct {
	Dt          float64
	Steps       int
	SampleEvery int
	// ValidateState stops the run when a NaN/Inf component appears. It
	// never alters the numeric results of steps already taken.
	ValidateState bool
}

// Frame is a sampled snapshot of the run.
type Frame struct {
	Step   int
	Time   float64
	Energy float64
	System nbody.System
}

type Result struct {
	Final         nbody.System
	Frames        []Frame
	Metrics       map[string]float64
	InitialEnergy float64
	FinalEnergy   float64
	EnergyDrift   float64
	StepsTaken    int
	Errors        []error
}

type StepError struct {
	Step    int
	Time    float64
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
