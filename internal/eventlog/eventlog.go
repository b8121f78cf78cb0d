package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the path to the simulation event log, relative to the
// working directory (project root when run via go run ./cmd/sim).
const LogFilePath = "logs/sim.txt"

// Log records simulation events (merges, resets, spawns, timestep changes)
// in memory and appends them to a file on disk.
type Log struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a Log writing to LogFilePath and ensures the logs directory
// exists.
func New() *Log {
	return NewAt(LogFilePath)
}

// NewAt returns a Log writing to the given file.
func NewAt(path string) *Log {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Log{path: path, lines: make([]string, 0)}
}

// Eventf formats an event line, stores it and appends it to the log file.
// Each entry is prefixed with [timestamp] using computer time.
func (l *Log) Eventf(format string, args ...any) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + fmt.Sprintf(format, args...)

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Last returns the most recent event line, or "" when nothing has been
// logged. Used by the HUD.
func (l *Log) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

// Lines returns a copy of all stored lines.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
