package nbody_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/nbody"
	"github.com/san-kum/orrery/internal/vec3"
)

// Reference scalars for the canonical outer-planets setup, computed
// with the exact operation order of this implementation.
const (
	refInitialEnergy   = -0.16907516382852447
	refOneStepEnergy   = -0.16907495402506745
	refThousandStepped = -0.16908760523460659
)

var _ = Describe("New", func() {
	It("orders the bodies sun-first, outward", func() {
		sys := nbody.New()
		Expect(sys.Names()).To(Equal([]string{"sun", "jupiter", "saturn", "uranus", "neptune"}))
	})

	It("zeroes total momentum within rounding", func() {
		p := nbody.New().Momentum()
		Expect(math.Abs(p.X)).To(BeNumerically("<", 1e-12))
		Expect(math.Abs(p.Y)).To(BeNumerically("<", 1e-12))
		Expect(math.Abs(p.Z)).To(BeNumerically("<", 1e-12))
	})

	It("reproduces the benchmark's initial energy", func() {
		Expect(nbody.New().Energy()).To(BeNumerically("~", refInitialEnergy, 1e-6))
	})

	It("corrects the sun without touching the catalog singleton", func() {
		sys := nbody.New()
		Expect(sys.Bodies[0].Vel).NotTo(Equal(vec3.Zero))
		Expect(nbody.Sun.Vel).To(Equal(vec3.Zero))
	})
})

var _ = Describe("FromBodies", func() {
	It("corrects the first body's velocity against the rest", func() {
		a := nbody.Body{Name: "a", Mass: 2}
		b := nbody.Body{Name: "b", Mass: 1, Pos: vec3.Vec{X: 1}, Vel: vec3.Vec{X: 4}}

		sys := nbody.FromBodies([]nbody.Body{a, b})
		Expect(sys.Bodies[0].Vel.X).To(Equal(-2.0))
		Expect(sys.Momentum().Magnitude()).To(BeNumerically("<", 1e-15))
	})

	It("copies the input slice", func() {
		bodies := []nbody.Body{
			{Name: "a", Mass: 1},
			{Name: "b", Mass: 1, Pos: vec3.Vec{X: 1}, Vel: vec3.Vec{X: 1}},
		}
		nbody.FromBodies(bodies)
		Expect(bodies[0].Vel).To(Equal(vec3.Zero))
	})
})

var _ = Describe("Advance", func() {
	It("preserves body order", func() {
		sys := nbody.New().Advance(0.01)
		Expect(sys.Names()).To(Equal([]string{"sun", "jupiter", "saturn", "uranus", "neptune"}))
	})

	It("is bit-for-bit deterministic", func() {
		base := nbody.New()
		first := base.Advance(0.01)
		second := base.Advance(0.01)
		for i := range first.Bodies {
			Expect(first.Bodies[i]).To(Equal(second.Bodies[i]))
		}
	})

	It("does not mutate its input", func() {
		sys := nbody.New()
		jupiterBefore := sys.Bodies[1]
		sys.Advance(0.01)
		Expect(sys.Bodies[1]).To(Equal(jupiterBefore))
	})

	It("is the identity for dt=0", func() {
		sys := nbody.New()
		stepped := sys.Advance(0)
		for i := range sys.Bodies {
			Expect(stepped.Bodies[i].Pos).To(Equal(sys.Bodies[i].Pos))
			Expect(stepped.Bodies[i].Vel).To(Equal(sys.Bodies[i].Vel))
		}
	})

	It("matches the single-step reference energy", func() {
		e := nbody.New().Advance(0.01).Energy()
		Expect(e).To(BeNumerically("~", refOneStepEnergy, math.Abs(refOneStepEnergy)*1e-9))
	})

	It("matches the 1000-step reference energy", func() {
		sys := nbody.New()
		for i := 0; i < 1000; i++ {
			sys = sys.Advance(0.01)
		}
		Expect(sys.Energy()).To(BeNumerically("~", refThousandStepped, math.Abs(refThousandStepped)*1e-9))
	})

	It("propagates the coincident-body singularity as non-finite state", func() {
		sys := nbody.FromBodies([]nbody.Body{
			{Name: "a", Mass: 1},
			{Name: "b", Mass: 1},
		})
		Expect(sys.Advance(0.01).IsValid()).To(BeFalse())
	})
})

var _ = Describe("Energy", func() {
	It("is invariant under body reordering, within tolerance", func() {
		sys := nbody.New()
		swapped := nbody.System{Bodies: append([]nbody.Body(nil), sys.Bodies...)}
		swapped.Bodies[1], swapped.Bodies[3] = swapped.Bodies[3], swapped.Bodies[1]

		Expect(swapped.Energy()).To(BeNumerically("~", sys.Energy(), 1e-12))
	})

	It("is zero for an empty system", func() {
		Expect(nbody.System{}.Energy()).To(Equal(0.0))
	})

	It("reduces to kinetic energy for a single body", func() {
		sys := nbody.System{Bodies: []nbody.Body{
			{Name: "solo", Mass: 2, Vel: vec3.Vec{X: 3}},
		}}
		Expect(sys.Energy()).To(Equal(9.0))
	})
})

var _ = Describe("Body.With", func() {
	It("replaces pos and vel and copies the rest", func() {
		b := nbody.Jupiter
		updated := b.With(vec3.Vec{X: 1}, vec3.Vec{Y: 2})

		Expect(updated.Name).To(Equal(b.Name))
		Expect(updated.Mass).To(Equal(b.Mass))
		Expect(updated.Pos).To(Equal(vec3.Vec{X: 1}))
		Expect(updated.Vel).To(Equal(vec3.Vec{Y: 2}))
		Expect(b).To(Equal(nbody.Jupiter))
	})
})
