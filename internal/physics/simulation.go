package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"

	"particle-sim/internal/quadtree"
)

const (
	// speedFloorSq is the squared speed below which a wall-slowed particle
	// is sped back up so it does not stall against the boundary.
	speedFloorSq = 300
	// bounceAngle is the fixed rotation applied to the velocity of a
	// particle whose leading edge crosses the world boundary. Deliberately
	// not a true reflection.
	bounceAngle = 3.84
)

// Config holds the simulation parameters. The world is the square
// [WorldMin,WorldMax] on both axes; the tree root box, the boundary bounce
// and the NDC transform all derive from it.
type Config struct {
	TimeStep float32
	Theta    float32
	WorldMin float32
	WorldMax float32
	// OverwriteAcceleration reproduces the legacy behavior where each
	// traversal hit replaces the particle's acceleration instead of adding
	// to it, so only the last source visited takes effect. Off by default:
	// contributions are summed (superposition).
	OverwriteAcceleration bool
}

// DefaultConfig returns the standard parameters: dt 0.1, theta 0.5, world
// [0,1000] on both axes, accumulating acceleration.
func DefaultConfig() Config {
	return Config{TimeStep: 0.1, Theta: 0.5, WorldMin: 0, WorldMax: 1000}
}

// Simulation owns the particle set and advances it: per step it rebuilds the
// spatial index, accumulates gravity via the opening-angle traversal,
// integrates motion, and detects and merges collisions. The set is exposed
// only as snapshots, never as live aliases.
type Simulation struct {
	cfg       Config
	particles []*Particle
}

// New returns a simulation with the given time step and opening angle and
// default world bounds.
func New(timeStep, theta float32) *Simulation {
	cfg := DefaultConfig()
	cfg.TimeStep = timeStep
	cfg.Theta = theta
	return NewWithConfig(cfg)
}

// NewWithConfig returns an empty simulation using cfg.
func NewWithConfig(cfg Config) *Simulation {
	return &Simulation{cfg: cfg}
}

// TimeStep returns the current integration time step.
func (s *Simulation) TimeStep() float32 {
	return s.cfg.TimeStep
}

// WorldBounds returns the min and max of the square world on both axes.
func (s *Simulation) WorldBounds() (min, max float32) {
	return s.cfg.WorldMin, s.cfg.WorldMax
}

// Count returns the number of particles in the set.
func (s *Simulation) Count() int {
	return len(s.particles)
}

// tree builds a fresh spatial index from the current particle snapshot.
// Nothing persists between rebuilds.
func (s *Simulation) tree() *quadtree.Tree {
	t := quadtree.New(quadtree.NewBoundingBox(s.cfg.WorldMin, s.cfg.WorldMax))
	for _, p := range s.particles {
		t.Insert(p.body())
	}
	return t
}

// Step rebuilds the spatial index and updates every particle's acceleration
// from the force sources the opening-angle traversal yields. Each source
// contributes (mass/|r|²)·r̂ toward its aggregate position. Particles outside
// the world bounds are invisible to this step's index.
func (s *Simulation) Step() {
	tree := s.tree()
	for _, p := range s.particles {
		if !s.cfg.OverwriteAcceleration {
			p.Acceleration = mgl32.Vec2{}
		}
		tree.ForEachSource(p.Position, s.cfg.Theta, func(src quadtree.Body) {
			r := src.Pos.Sub(p.Position)
			a := r.Normalize().Mul(src.Mass / r.Dot(r))
			if s.cfg.OverwriteAcceleration {
				p.Acceleration = a
			} else {
				p.Acceleration = p.Acceleration.Add(a)
			}
		})
	}
}

// Integrate advances velocity and position by semi-implicit Euler. When a
// particle's leading edge crosses the world boundary its velocity is halved
// (re-doubled when the squared speed drops under the stall floor) and
// rotated by a fixed angle.
func (s *Simulation) Integrate() {
	dt := s.cfg.TimeStep
	for _, p := range s.particles {
		p.Velocity = p.Velocity.Add(p.Acceleration.Mul(dt))
		p.Position = p.Position.Add(p.Velocity.Mul(dt))

		if p.Velocity.Len() == 0 {
			continue
		}
		edge := p.Position.Add(p.Velocity.Normalize().Mul(p.Radius))
		if edge.X() < s.cfg.WorldMin || edge.X() > s.cfg.WorldMax ||
			edge.Y() < s.cfg.WorldMin || edge.Y() > s.cfg.WorldMax {
			v := p.Velocity.Mul(0.5)
			if v.Dot(v) < speedFloorSq {
				v = v.Mul(2)
			}
			p.Velocity = mgl32.Rotate2D(bounceAngle).Mul2x1(v)
		}
	}
}

// ResolveCollisions rebuilds the spatial index, gathers collision candidates
// for every particle from the subtree around its own leaf (broad phase),
// runs the exact circle-overlap test on each candidate (narrow phase) and
// merges overlapping pairs. Returns the number of merges performed.
func (s *Simulation) ResolveCollisions() int {
	tree := s.tree()
	merged := 0

	snapshot := make([]uint64, len(s.particles))
	for i, p := range s.particles {
		snapshot[i] = p.ID
	}
	for _, id := range snapshot {
		p := s.find(id)
		if p == nil {
			// Already consumed by an earlier merge this pass.
			continue
		}
		tree.ForEachNeighbor(p.ID, p.Position, func(b quadtree.Body) {
			other := s.find(b.ID)
			if other == nil || s.find(p.ID) == nil {
				return
			}
			if p.Overlaps(other) {
				s.merge(p, other)
				merged++
			}
		})
	}
	return merged
}

// merge folds the lesser particle (by mass) into the greater and removes the
// lesser from the set. The mass gain scales with the already updated radius,
// and the velocity weighting uses the greater's pre-merge mass; the
// operation order is observable and must not be rearranged.
func (s *Simulation) merge(a, b *Particle) {
	lesser, greater := a, b
	if lesser.Mass > greater.Mass {
		lesser, greater = greater, lesser
	}
	preMass := greater.Mass
	greater.Radius += lesser.Radius / 10
	greater.Mass += lesser.Mass * greater.Radius
	greater.Velocity = greater.Velocity.Mul(preMass).
		Add(lesser.Velocity.Mul(lesser.Mass)).
		Mul(1 / preMass)
	s.remove(lesser.ID)
}

// find returns the live particle with the given id, or nil.
func (s *Simulation) find(id uint64) *Particle {
	for _, p := range s.particles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// remove deletes the particle with the given id from the set.
func (s *Simulation) remove(id uint64) {
	for i, p := range s.particles {
		if p.ID == id {
			s.particles = append(s.particles[:i], s.particles[i+1:]...)
			return
		}
	}
}

// AddParticle creates a particle, appends it to the set and immediately
// resolves collisions, so no two particles overlap after any insertion.
// Returns the new particle's id.
func (s *Simulation) AddParticle(pos mgl32.Vec2, mass, radius float32, vel, acc mgl32.Vec2) (uint64, error) {
	p, err := NewParticle(pos, mass, radius)
	if err != nil {
		return 0, err
	}
	p.Velocity = vel
	p.Acceleration = acc
	s.particles = append(s.particles, p)
	s.ResolveCollisions()
	return p.ID, nil
}

// Reset clears the particle set. Parameters are kept.
func (s *Simulation) Reset() {
	s.particles = nil
}

// ChangeTimeStep adds delta to the time step. A change that would drive the
// time step to zero or below is rejected and the prior value kept.
func (s *Simulation) ChangeTimeStep(delta float32) {
	if next := s.cfg.TimeStep + delta; next > 0 {
		s.cfg.TimeStep = next
	}
}

// Particles returns a deep copy of the particle set. Mutating the returned
// slice never touches live simulation state.
func (s *Simulation) Particles() []Particle {
	var out []Particle
	_ = copier.Copy(&out, s.particles)
	return out
}

// Instances maps every particle into normalized device coordinates for the
// renderer: ndc = -1 + (v - worldMin)·2/(worldMax - worldMin) on each axis,
// with the radius scaled by the same factor. Downstream rendering assumes
// exactly this affine transform.
func (s *Simulation) Instances() []Instance {
	scale := 2 / (s.cfg.WorldMax - s.cfg.WorldMin)
	out := make([]Instance, 0, len(s.particles))
	for _, p := range s.particles {
		out = append(out, Instance{
			Position: mgl32.Vec2{
				-1 + (p.Position.X()-s.cfg.WorldMin)*scale,
				-1 + (p.Position.Y()-s.cfg.WorldMin)*scale,
			},
			Radius: p.Radius * scale,
		})
	}
	return out
}
