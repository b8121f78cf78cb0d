package scenario

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"

	"particle-sim/internal/physics"
)

// Def is the YAML definition of a simulation start state (e.g.
// assets/scenarios/default.yaml): world parameters plus explicit bodies
// and/or seeded random clouds.
type Def struct {
	Name     string     `yaml:"name"`
	TimeStep float32    `yaml:"time_step,omitempty"`
	Theta    float32    `yaml:"theta,omitempty"`
	World    WorldDef   `yaml:"world,omitempty"`
	Bodies   []BodyDef  `yaml:"bodies,omitempty"`
	Clouds   []CloudDef `yaml:"clouds,omitempty"`
}

// WorldDef bounds the square world on both axes.
type WorldDef struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// BodyDef is one explicit particle.
type BodyDef struct {
	Pos    [2]float32 `yaml:"pos"`
	Vel    [2]float32 `yaml:"vel,omitempty"`
	Mass   float32    `yaml:"mass"`
	Radius float32    `yaml:"radius"`
}

// CloudDef is a seeded random cluster of particles, uniformly spread in a
// square of side 2*Spread around Center. Mass and Radius are [min,max]
// ranges. The same seed always produces the same cloud.
type CloudDef struct {
	Count  int        `yaml:"count"`
	Seed   uint64     `yaml:"seed"`
	Center [2]float32 `yaml:"center"`
	Spread float32    `yaml:"spread"`
	Mass   [2]float32 `yaml:"mass"`
	Radius [2]float32 `yaml:"radius"`
}

// Default returns the fallback scenario: an empty world with the standard
// parameters, ready for click-spawned particles.
func Default() Def {
	cfg := physics.DefaultConfig()
	return Def{
		Name:     "empty",
		TimeStep: cfg.TimeStep,
		Theta:    cfg.Theta,
		World:    WorldDef{Min: cfg.WorldMin, Max: cfg.WorldMax},
	}
}

// Load reads a scenario definition from a YAML file. A missing file is not
// an error; Default() is returned so the viewer can still start.
func Load(path string) (Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), err
	}
	def := Default()
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Default(), fmt.Errorf("scenario %s: %w", path, err)
	}
	return def, nil
}

// SimConfig converts the scenario's world parameters into a simulation
// config, filling gaps from the defaults.
func (d Def) SimConfig() physics.Config {
	cfg := physics.DefaultConfig()
	if d.TimeStep > 0 {
		cfg.TimeStep = d.TimeStep
	}
	if d.Theta > 0 {
		cfg.Theta = d.Theta
	}
	if d.World.Max > d.World.Min {
		cfg.WorldMin = d.World.Min
		cfg.WorldMax = d.World.Max
	}
	return cfg
}

// Populate adds the scenario's explicit bodies and generated clouds to sim,
// in definition order.
func (d Def) Populate(sim *physics.Simulation) error {
	for i, b := range d.Bodies {
		_, err := sim.AddParticle(
			mgl32.Vec2{b.Pos[0], b.Pos[1]},
			b.Mass, b.Radius,
			mgl32.Vec2{b.Vel[0], b.Vel[1]},
			mgl32.Vec2{},
		)
		if err != nil {
			return fmt.Errorf("scenario body %d: %w", i, err)
		}
	}
	for i, c := range d.Clouds {
		if err := c.populate(sim); err != nil {
			return fmt.Errorf("scenario cloud %d: %w", i, err)
		}
	}
	return nil
}

func (c CloudDef) populate(sim *physics.Simulation) error {
	rnd := rand.New(rand.NewSource(c.Seed))
	for i := 0; i < c.Count; i++ {
		pos := mgl32.Vec2{
			c.Center[0] + (rnd.Float32()*2-1)*c.Spread,
			c.Center[1] + (rnd.Float32()*2-1)*c.Spread,
		}
		mass := lerp(c.Mass[0], c.Mass[1], rnd.Float32())
		radius := lerp(c.Radius[0], c.Radius[1], rnd.Float32())
		if _, err := sim.AddParticle(pos, mass, radius, mgl32.Vec2{}, mgl32.Vec2{}); err != nil {
			return err
		}
	}
	return nil
}

func lerp(min, max, t float32) float32 {
	if max <= min {
		return min
	}
	return min + (max-min)*t
}
