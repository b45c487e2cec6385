package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// historyVersion is bumped when the persisted schema changes shape.
const historyVersion = 1

// MaxRuns caps the persisted history; the oldest run is dropped when a new
// one would exceed it.
const MaxRuns = 100

// RunConfig records the configuration facts worth keeping with a run.
type RunConfig struct {
	Threshold     float64 `json:"threshold"`
	TemplateCount int     `json:"templateCount"`
}

// Timing records how long a run took.
type Timing struct {
	TotalMs int64 `json:"totalMs"`
}

// ImageResult is one corpus image's score within a run.
type ImageResult struct {
	Image     string  `json:"image"`
	Metrics   Metrics `json:"metrics"`
	ElapsedMs int64   `json:"elapsedMs"`
}

// Run is one recorded benchmark execution.
type Run struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Mode      string        `json:"mode"`
	Metrics   Metrics       `json:"metrics"`
	Timing    Timing        `json:"timing"`
	PerImage  []ImageResult `json:"perImage"`
	Config    RunConfig     `json:"config"`
}

// History is the persisted benchmark record, newest run last.
type History struct {
	Version int   `json:"version"`
	Runs    []Run `json:"runs"`
}

// NewRunID returns a unique, sortable run identifier.
func NewRunID(now time.Time) string {
	return fmt.Sprintf("run-%s", now.UTC().Format("20060102-150405.000"))
}

// LoadHistory reads the benchmark history file. A missing file yields an
// empty history; a malformed one is an error the caller must surface.
func LoadHistory(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &History{Version: historyVersion}, nil
		}
		return nil, fmt.Errorf("cannot read benchmark history: %w", err)
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("cannot parse benchmark history %s: %w", path, err)
	}
	if h.Version == 0 {
		h.Version = historyVersion
	}
	return &h, nil
}

// Append adds a run, discarding the oldest runs beyond the cap.
func (h *History) Append(run Run) {
	h.Runs = append(h.Runs, run)
	if len(h.Runs) > MaxRuns {
		h.Runs = h.Runs[len(h.Runs)-MaxRuns:]
	}
}

// Latest returns the most recent run, or nil when the history is empty.
func (h *History) Latest() *Run {
	if len(h.Runs) == 0 {
		return nil
	}
	return &h.Runs[len(h.Runs)-1]
}

// Save writes the history to disk.
func (h *History) Save(path string) error {
	h.Version = historyVersion
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize benchmark history: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create history directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write benchmark history: %w", err)
	}
	return nil
}
