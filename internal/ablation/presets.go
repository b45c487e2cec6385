// Package ablation measures what each pipeline component contributes to
// end-to-end accuracy by re-running detection over a labeled corpus with
// components disabled one at a time.
package ablation

import (
	"fmt"

	"item-scanner/internal/detect"
)

// BaselineName is the preset every impact is measured against.
const BaselineName = "baseline-all-on"

// Preset is a named, fully specified pipeline configuration. Leave-one-out
// presets record which component they disable relative to the baseline.
type Preset struct {
	Name     string
	Disables detect.Toggle // empty unless this is a "no-X" preset
	Config   detect.PipelineConfig
}

// Baseline returns the all-components-on configuration, including the edge
// measure and adaptive thresholding, so every leave-one-out preset has
// something to remove.
func Baseline() detect.PipelineConfig {
	cfg := detect.DefaultConfig()
	for _, t := range detect.Toggles() {
		cfg = cfg.WithToggle(t, true)
	}
	return cfg.WithName(BaselineName)
}

// Minimal returns the bare configuration: structural similarity alone with
// the empty-cell filter and a fixed threshold. It anchors the low end of
// the accuracy range.
func Minimal() detect.PipelineConfig {
	cfg := detect.DefaultConfig()
	for _, t := range detect.Toggles() {
		cfg = cfg.WithToggle(t, false)
	}
	cfg = cfg.WithToggle(detect.ToggleSSIM, true)
	cfg = cfg.WithToggle(detect.ToggleEmptyCellFilter, true)
	return cfg.WithName("minimal")
}

// Suite returns the standard experiment list: baseline, minimal, and one
// leave-one-out preset per component.
func Suite() []Preset {
	base := Baseline()
	presets := []Preset{
		{Name: base.Name, Config: base},
		{Name: "minimal", Config: Minimal()},
	}
	for _, t := range detect.Toggles() {
		name := fmt.Sprintf("no-%s", t)
		presets = append(presets, Preset{
			Name:     name,
			Disables: t,
			Config:   base.WithToggle(t, false).WithName(name),
		})
	}
	return presets
}
