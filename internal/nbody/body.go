package nbody

import "github.com/san-kum/orrery/internal/vec3"

// Body is an immutable point mass. Name is a label for reporting only;
// the simulation never uses it for identity (two bodies may not share a
// name, but distinctness checks compare slice indices, not names).
type Body struct {
	Name string
	Mass float64
	Pos  vec3.Vec
	Vel  vec3.Vec
}

// With returns a copy of b with position and velocity replaced. This is
// the only update primitive in the core; the receiver is never altered.
func (b Body) With(pos, vel vec3.Vec) Body {
	b.Pos = pos
	b.Vel = vel
	return b
}
