package physics

import (
	"errors"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"particle-sim/internal/quadtree"
)

// Particle is a 2D point mass with a collision radius. Kinematics are
// mutated in place by integration and merging; the ID stays stable until the
// particle is removed as the lesser party of a merge.
type Particle struct {
	ID           uint64
	Position     mgl32.Vec2
	Velocity     mgl32.Vec2
	Acceleration mgl32.Vec2
	Mass         float32
	Radius       float32
}

// lastID is the source of particle handles. IDs only need local uniqueness;
// 0 is reserved for tree aggregates.
var lastID uint64

// NewParticle returns a particle with a fresh id and zero velocity and
// acceleration. Mass and radius must be positive; a zero mass would make
// center-of-mass updates undefined, so it is rejected here.
func NewParticle(pos mgl32.Vec2, mass, radius float32) (*Particle, error) {
	if mass <= 0 {
		return nil, errors.New("physics: particle mass must be positive")
	}
	if radius <= 0 {
		return nil, errors.New("physics: particle radius must be positive")
	}
	return &Particle{
		ID:       atomic.AddUint64(&lastID, 1),
		Position: pos,
		Mass:     mass,
		Radius:   radius,
	}, nil
}

// Overlaps reports whether the two particles' circles touch or intersect:
// center distance minus the sum of radii is zero or negative.
func (p *Particle) Overlaps(o *Particle) bool {
	d := math32.Hypot(o.Position.X()-p.Position.X(), o.Position.Y()-p.Position.Y())
	return d-(p.Radius+o.Radius) <= 0
}

// body returns the particle as a quadtree body for indexing.
func (p *Particle) body() quadtree.Body {
	return quadtree.Body{ID: p.ID, Pos: p.Position, Mass: p.Mass, Radius: p.Radius}
}

// Instance is a renderer-facing record: a circle center in normalized device
// coordinates with the radius scaled by the same world-to-NDC factor.
type Instance struct {
	Position mgl32.Vec2
	Radius   float32
}
