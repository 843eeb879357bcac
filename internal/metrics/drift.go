// Package metrics provides conservation diagnostics implementing
// sim.Metric.
package metrics

import (
	"math"

	"github.com/san-kum/orrery/internal/nbody"
)

// EnergyDrift tracks the maximum relative deviation of total energy
// from its value at the first observation.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s nbody.System, t float64) {
	energy := s.Energy()

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum magnitude of total momentum. The
// barycentric construction zeroes momentum at t=0, so any growth is
// integration error.
type MomentumDrift struct {
	name string
	max  float64
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(s nbody.System, t float64) {
	m.max = math.Max(m.max, s.Momentum().Magnitude())
}

func (m *MomentumDrift) Value() float64 {
	return m.max
}

func (m *MomentumDrift) Reset() {
	m.max = 0
}
