package eventlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEventfStoresAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sim.txt")
	log := NewAt(path)

	log.Eventf("merged %d particles", 3)
	log.Eventf("reset")

	lines := log.Lines()
	if len(lines) != 2 {
		t.Fatalf("Lines() = %d entries, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[0], "merged 3 particles") {
		t.Errorf("first line = %q, want merged event", lines[0])
	}
	if got := log.Last(); !strings.HasSuffix(got, "reset") {
		t.Errorf("Last() = %q, want reset event", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("log file holds %d lines, want 2", got)
	}
}

func TestLastEmpty(t *testing.T) {
	log := NewAt(filepath.Join(t.TempDir(), "sim.txt"))
	if got := log.Last(); got != "" {
		t.Errorf("Last() = %q on empty log, want empty", got)
	}
}
