package metrics

import (
	"testing"

	"github.com/san-kum/orrery/internal/nbody"
)

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()

	sys := nbody.New()
	m.Observe(sys, 0)

	if m.Value() != 0 {
		t.Errorf("expected zero drift at first observation, got %e", m.Value())
	}

	for i := 0; i < 100; i++ {
		sys = sys.Advance(0.01)
		m.Observe(sys, float64(i+1)*0.01)
	}

	drift := m.Value()
	if drift <= 0 {
		t.Error("expected positive drift after integration")
	}
	if drift > 1e-3 {
		t.Errorf("drift unexpectedly large: %e", drift)
	}
}

func TestEnergyDriftIsMonotone(t *testing.T) {
	m := NewEnergyDrift()

	sys := nbody.New()
	prev := 0.0
	for i := 0; i < 50; i++ {
		m.Observe(sys, float64(i)*0.01)
		if m.Value() < prev {
			t.Fatal("max drift decreased")
		}
		prev = m.Value()
		sys = sys.Advance(0.01)
	}
}

func TestEnergyDriftReset(t *testing.T) {
	m := NewEnergyDrift()

	sys := nbody.New()
	m.Observe(sys, 0)
	m.Observe(sys.Advance(0.1), 0.1)

	if m.Value() == 0 {
		t.Error("expected non-zero drift before reset")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()

	sys := nbody.New()
	m.Observe(sys, 0)

	// Barycentric construction: momentum starts at rounding noise.
	if m.Value() > 1e-12 {
		t.Errorf("expected near-zero momentum at t=0, got %e", m.Value())
	}

	for i := 0; i < 100; i++ {
		sys = sys.Advance(0.01)
		m.Observe(sys, float64(i+1)*0.01)
	}

	// The per-body force loop is not exactly symmetric in fp, but the
	// residual should stay tiny.
	if m.Value() > 1e-9 {
		t.Errorf("momentum drift unexpectedly large: %e", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}
