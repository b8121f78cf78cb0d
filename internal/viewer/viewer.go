package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"particle-sim/internal/eventlog"
	"particle-sim/internal/physics"
	"particle-sim/internal/simconfig"
)

const (
	// timeStepNudge is the amount the +/- keys add to the time step.
	timeStepNudge = 0.05
	// spawnMass and spawnRadius are used for click-spawned particles.
	spawnMass   = 50
	spawnRadius = 5
)

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	// hudUpdateInterval: only refresh HUD text every N frames to reduce
	// allocations.
	hudUpdateInterval = 30
)

// Viewer drives the simulation from the frame loop and draws it: input
// bindings, one simulation step per unpaused frame, particles from the NDC
// instance snapshot, and a HUD overlay.
type Viewer struct {
	sim    *physics.Simulation
	log    *eventlog.Log
	prefs  simconfig.Prefs
	paused bool

	frameCount    uint32
	lastStatsText string
}

// New returns a viewer over sim. Pause state starts from the preferences.
func New(sim *physics.Simulation, log *eventlog.Log, prefs simconfig.Prefs) *Viewer {
	return &Viewer{sim: sim, log: log, prefs: prefs, paused: prefs.StartPaused}
}

// Update handles input and advances the simulation one full step when not
// paused. Space toggles pause, R resets, +/- nudge the time step, left click
// spawns a particle at the cursor. Spawning and timestep changes work while
// paused.
func (v *Viewer) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
		v.log.Eventf("paused=%v", v.paused)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.sim.Reset()
		v.log.Eventf("reset")
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.sim.ChangeTimeStep(timeStepNudge)
		v.log.Eventf("time step %.2f", v.sim.TimeStep())
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.sim.ChangeTimeStep(-timeStepNudge)
		v.log.Eventf("time step %.2f", v.sim.TimeStep())
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := v.worldPos(rl.GetMousePosition())
		if id, err := v.sim.AddParticle(pos, spawnMass, spawnRadius, mgl32.Vec2{}, mgl32.Vec2{}); err == nil {
			v.log.Eventf("spawned particle %d at (%.0f, %.0f)", id, pos.X(), pos.Y())
		}
	}

	if v.paused {
		return
	}
	v.sim.Step()
	v.sim.Integrate()
	if merged := v.sim.ResolveCollisions(); merged > 0 {
		v.log.Eventf("merged %d particle(s), %d remain", merged, v.sim.Count())
	}
}

// worldPos maps a window position to world coordinates: the inverse of the
// viewport transform used for drawing. Window y grows downward, world y up.
func (v *Viewer) worldPos(m rl.Vector2) mgl32.Vec2 {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	min, max := v.sim.WorldBounds()
	return mgl32.Vec2{
		min + m.X/w*(max-min),
		min + (h-m.Y)/h*(max-min),
	}
}

// Draw renders every particle from the NDC instance snapshot, then the HUD.
func (v *Viewer) Draw() {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	for _, inst := range v.sim.Instances() {
		x := (inst.Position.X() + 1) / 2 * w
		y := h - (inst.Position.Y()+1)/2*h
		rl.DrawCircleV(rl.NewVector2(x, y), inst.Radius/2*w, rl.RayWhite)
	}

	v.drawHUD()
}

// drawHUD renders the overlays enabled in the preferences. Text is only
// recomputed every hudUpdateInterval frames to limit allocations.
func (v *Viewer) drawHUD() {
	v.frameCount++
	y := int32(hudPadding)

	if v.prefs.ShowFPS {
		rl.DrawText(fmt.Sprintf("FPS: %d", rl.GetFPS()), hudPadding, y, hudFontSize, rl.Green)
		y += hudLineHeight
	}
	if v.prefs.ShowStats {
		if v.frameCount%hudUpdateInterval == 0 || v.lastStatsText == "" {
			state := "running"
			if v.paused {
				state = "paused"
			}
			v.lastStatsText = fmt.Sprintf("%d particles | dt %.2f | %s", v.sim.Count(), v.sim.TimeStep(), state)
		}
		rl.DrawText(v.lastStatsText, hudPadding, y, hudFontSize, rl.Green)
		y += hudLineHeight

		if last := v.log.Last(); last != "" {
			rl.DrawText(last, hudPadding, y, hudFontSize, rl.Gray)
		}
	}
}
