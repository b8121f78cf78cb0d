package main

import (
	"fmt"
	"os"

	"particle-sim/internal/eventlog"
	"particle-sim/internal/physics"
	"particle-sim/internal/render"
	"particle-sim/internal/scenario"
	"particle-sim/internal/simconfig"
	"particle-sim/internal/viewer"
)

func main() {
	prefs, _ := simconfig.Load()
	def, err := scenario.Load(prefs.Scenario)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sim := physics.NewWithConfig(def.SimConfig())
	if err := def.Populate(sim); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := eventlog.New()
	log.Eventf("scenario %q: %d particles", def.Name, sim.Count())

	v := viewer.New(sim, log, prefs)
	render.Run(render.Options{
		Title:  "particle-sim",
		Width:  prefs.WindowWidth,
		Height: prefs.WindowHeight,
	}, v.Update, v.Draw)
}
