// Package vec3 provides an immutable 3D vector value type used by the
// gravitational simulation core. Every operation returns a new value;
// nothing is mutated in place.
package vec3

import "math"

type Vec struct {
	X, Y, Z float64
}

// Zero is the additive identity.
var Zero = Vec{}

func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s, v.Z * s}
}

// NormSq returns the squared Euclidean norm. The energy diagnostic uses
// this directly to avoid a sqrt followed by a square.
func (v Vec) NormSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec) Magnitude() float64 {
	return math.Sqrt(v.NormSq())
}

func (v Vec) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func Distance(a, b Vec) float64 {
	return a.Sub(b).Magnitude()
}

// Sum left-folds Add over vs, seeded at Zero. Floating-point addition is
// not associative, so the fold runs in slice order; callers relying on
// bit-reproducible results must preserve input order.
func Sum(vs []Vec) Vec {
	acc := Zero
	for _, v := range vs {
		acc = acc.Add(v)
	}
	return acc
}
