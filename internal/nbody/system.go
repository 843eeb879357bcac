// Package nbody implements the gravitational N-body core: immutable
// point masses, the canonical outer-planets catalog, and a whole-state
// semi-implicit Euler step with a total-energy diagnostic.
//
// Every operation is a pure function over immutable values. Advance
// reads one frozen snapshot and returns a fresh System; no body's update
// can observe another body's already-updated state within a step. Body
// order is part of the contract: floating-point summation runs in slice
// order, so reproducing reference outputs bit-for-bit requires the same
// ordering.
package nbody

import "github.com/san-kum/orrery/internal/vec3"

// System is the simulated universe at one instant.
type System struct {
	Bodies []Body
}

// New builds the canonical five-body outer-planets system in the fixed
// order [sun, jupiter, saturn, uranus, neptune], with the sun's velocity
// corrected so total momentum is exactly zero.
func New() System {
	return FromBodies([]Body{Sun, Jupiter, Saturn, Uranus, Neptune})
}

// FromBodies builds a system from an ordered body list, adjusting the
// first body's velocity so the total momentum vanishes (barycentric
// frame). The slice is copied; callers keep ownership of theirs.
func FromBodies(bodies []Body) System {
	bs := make([]Body, len(bodies))
	copy(bs, bodies)
	if len(bs) == 0 {
		return System{Bodies: bs}
	}

	var px, py, pz float64
	for _, b := range bs[1:] {
		px += b.Vel.X * b.Mass
		py += b.Vel.Y * b.Mass
		pz += b.Vel.Z * b.Mass
	}

	anchor := bs[0]
	bs[0] = anchor.With(anchor.Pos, vec3.Vec{
		X: -px / anchor.Mass,
		Y: -py / anchor.Mass,
		Z: -pz / anchor.Mass,
	})

	return System{Bodies: bs}
}

// Advance performs one semi-implicit Euler step and returns the
// resulting system. For each body the velocity kick is the ordered sum
// of pairwise inverse-square contributions from every other body, all
// evaluated against the pre-step snapshot; the position then moves with
// the new velocity. Coincident bodies yield a zero distance and the
// step degenerates to Inf/NaN per IEEE-754; that singularity is not
// guarded.
func (s System) Advance(dt float64) System {
	next := make([]Body, len(s.Bodies))
	for i, b := range s.Bodies {
		dv := vec3.Zero
		for j, other := range s.Bodies {
			if j == i {
				continue
			}
			dist := vec3.Distance(b.Pos, other.Pos)
			mag := dt / (dist * dist * dist)
			dv = dv.Add(other.Pos.Sub(b.Pos).Scale(other.Mass * mag))
		}
		vel := b.Vel.Add(dv)
		pos := b.Pos.Add(vel.Scale(dt))
		next[i] = b.With(pos, vel)
	}
	return System{Bodies: next}
}

// Energy returns the total mechanical energy, kinetic minus potential,
// of the current snapshot. Summation order is fixed by body order.
func (s System) Energy() float64 {
	e := 0.0
	for i, b := range s.Bodies {
		e += 0.5 * b.Mass * b.Vel.NormSq()
		for _, other := range s.Bodies[i+1:] {
			e -= b.Mass * other.Mass / vec3.Distance(b.Pos, other.Pos)
		}
	}
	return e
}

// Momentum returns the vector sum of mass-weighted velocities. Zero
// (within rounding) after construction, and conserved by Advance up to
// integration error.
func (s System) Momentum() vec3.Vec {
	ps := make([]vec3.Vec, len(s.Bodies))
	for i, b := range s.Bodies {
		ps[i] = b.Vel.Scale(b.Mass)
	}
	return vec3.Sum(ps)
}

// Names returns the body names in system order.
func (s System) Names() []string {
	names := make([]string, len(s.Bodies))
	for i, b := range s.Bodies {
		names[i] = b.Name
	}
	return names
}

// IsValid reports whether every position and velocity component is
// finite.
func (s System) IsValid() bool {
	for _, b := range s.Bodies {
		if !b.Pos.IsValid() || !b.Vel.IsValid() {
			return false
		}
	}
	return true
}
