package simconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// PrefsPath is the path to the viewer preferences file, relative to the
// process working directory.
const PrefsPath = "config/viewer.json"

// Prefs holds viewer-only preferences (overlays, window size, the scenario
// to load on start). Persisted across runs; the simulation itself keeps no
// state between restarts.
type Prefs struct {
	ShowFPS      bool   `json:"show_fps"`
	ShowStats    bool   `json:"show_stats"`
	StartPaused  bool   `json:"start_paused"`
	Scenario     string `json:"scenario,omitempty"`
	WindowWidth  int32  `json:"window_width,omitempty"`
	WindowHeight int32  `json:"window_height,omitempty"`
}

// Default returns default viewer preferences: stats overlay on, unpaused,
// the default scenario file, a 1000x1000 window matching the square world.
func Default() Prefs {
	return Prefs{
		ShowFPS:      false,
		ShowStats:    true,
		StartPaused:  false,
		Scenario:     "assets/scenarios/default.yaml",
		WindowWidth:  1000,
		WindowHeight: 1000,
	}
}

// Load reads preferences from config/viewer.json and applies environment
// overrides. If the file is missing or invalid, the defaults are used and no
// file is created.
func Load() (Prefs, error) {
	p := Default()
	if data, err := os.ReadFile(PrefsPath); err == nil {
		if err := json.Unmarshal(data, &p); err != nil {
			p = Default()
		}
	}
	applyEnv(&p)
	return p, nil
}

// Save writes preferences to config/viewer.json, creating the config
// directory if needed.
func Save(p Prefs) error {
	dir := filepath.Dir(PrefsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(PrefsPath, data, 0644)
}

// applyEnv overrides prefs from SIM_* environment variables: SIM_SCENARIO
// (path), SIM_PAUSED, SIM_SHOW_FPS, SIM_SHOW_STATS (booleans per
// strconv.ParseBool). Unset or unparsable values leave the field unchanged.
func applyEnv(p *Prefs) {
	if v := os.Getenv("SIM_SCENARIO"); v != "" {
		p.Scenario = v
	}
	if b, ok := envBool("SIM_PAUSED"); ok {
		p.StartPaused = b
	}
	if b, ok := envBool("SIM_SHOW_FPS"); ok {
		p.ShowFPS = b
	}
	if b, ok := envBool("SIM_SHOW_STATS"); ok {
		p.ShowStats = b
	}
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
