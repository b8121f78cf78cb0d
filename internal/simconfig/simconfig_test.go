package simconfig

import (
	"os"
	"testing"
)

// chdir is a stand-in for t.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	p, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if p != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", p, Default())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())

	want := Default()
	want.ShowFPS = true
	want.StartPaused = true
	want.Scenario = "assets/scenarios/cloud.yaml"
	if err := Save(want); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadToleratesInvalidJSON(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.MkdirAll("config", 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(PrefsPath, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if p != Default() {
		t.Errorf("Load() = %+v, want defaults for invalid file", p)
	}
}

func TestEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SIM_SCENARIO", "assets/scenarios/binary.yaml")
	t.Setenv("SIM_PAUSED", "true")
	t.Setenv("SIM_SHOW_FPS", "not-a-bool")

	p, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if p.Scenario != "assets/scenarios/binary.yaml" {
		t.Errorf("Scenario = %q, env override not applied", p.Scenario)
	}
	if !p.StartPaused {
		t.Error("StartPaused = false, env override not applied")
	}
	if p.ShowFPS != Default().ShowFPS {
		t.Error("unparsable SIM_SHOW_FPS should leave the field unchanged")
	}
}
