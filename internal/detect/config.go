// Package detect implements the slot matching pipeline: template store,
// empty-slot filtering, per-slot scoring, threshold selection and
// aggregation of repeated detections.
package detect

import (
	"item-scanner/internal/metrics"
)

// Toggle names one independently switchable pipeline component.
type Toggle string

const (
	ToggleMultiScale        Toggle = "multi-scale"
	ToggleContrastEnhance   Toggle = "contrast-enhance"
	ToggleColorNormalize    Toggle = "color-normalize"
	ToggleSharpen           Toggle = "sharpen"
	ToggleEqualizeHist      Toggle = "equalize-hist"
	ToggleDynamicGrid       Toggle = "dynamic-grid"
	ToggleResolutionAware   Toggle = "resolution-aware"
	ToggleRarityFilter      Toggle = "rarity-filter"
	ToggleEmptyCellFilter   Toggle = "empty-cell-filter"
	ToggleNCC               Toggle = "ncc"
	ToggleSSIM              Toggle = "ssim"
	ToggleHistogram         Toggle = "histogram"
	ToggleEdges             Toggle = "edges"
	ToggleAgreementBonus    Toggle = "agreement-bonus"
	ToggleAdaptiveThreshold Toggle = "adaptive-threshold"
)

// Toggles returns every pipeline toggle in a stable order.
func Toggles() []Toggle {
	return []Toggle{
		ToggleMultiScale,
		ToggleContrastEnhance,
		ToggleColorNormalize,
		ToggleSharpen,
		ToggleEqualizeHist,
		ToggleDynamicGrid,
		ToggleResolutionAware,
		ToggleRarityFilter,
		ToggleEmptyCellFilter,
		ToggleNCC,
		ToggleSSIM,
		ToggleHistogram,
		ToggleEdges,
		ToggleAgreementBonus,
		ToggleAdaptiveThreshold,
	}
}

// PipelineConfig is an immutable value describing one full pipeline
// configuration. Every mutation helper returns a copy; a detection run
// observes one config value from start to finish and no run can disturb
// another's configuration.
type PipelineConfig struct {
	Name string

	MultiScale        bool
	ContrastEnhance   bool
	ColorNormalize    bool
	Sharpen           bool
	EqualizeHist      bool
	DynamicGrid       bool
	ResolutionAware   bool
	RarityFilter      bool
	EmptyCellFilter   bool
	UseNCC            bool
	UseSSIM           bool
	UseHistogram      bool
	UseEdges          bool
	AgreementBonus    bool
	AdaptiveThreshold bool

	// Threshold is the fixed match threshold used when AdaptiveThreshold
	// is off, and the fallback when too few slots score for adaptation.
	Threshold float64

	// EmptyVariance is the summed RGB channel variance below which a slot
	// counts as empty.
	EmptyVariance float64

	Weights metrics.Weights
}

// DefaultConfig returns the production configuration: all enhancements on,
// edge measure off, fixed threshold.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Name:            "default",
		MultiScale:      true,
		ContrastEnhance: true,
		ColorNormalize:  true,
		Sharpen:         true,
		EqualizeHist:    true,
		DynamicGrid:     true,
		ResolutionAware: true,
		RarityFilter:    true,
		EmptyCellFilter: true,
		UseNCC:          true,
		UseSSIM:         true,
		UseHistogram:    true,
		UseEdges:        false,
		AgreementBonus:  true,
		Threshold:       0.70,
		EmptyVariance:   DefaultEmptyVariance,
		Weights:         metrics.DefaultWeights(),
	}
}

// WithName returns a copy of the config under a new name.
func (c PipelineConfig) WithName(name string) PipelineConfig {
	c.Name = name
	return c
}

// WithThreshold returns a copy with a different fixed threshold.
func (c PipelineConfig) WithThreshold(t float64) PipelineConfig {
	c.Threshold = t
	return c
}

// WithToggle returns a copy with one component switched on or off.
func (c PipelineConfig) WithToggle(t Toggle, on bool) PipelineConfig {
	switch t {
	case ToggleMultiScale:
		c.MultiScale = on
	case ToggleContrastEnhance:
		c.ContrastEnhance = on
	case ToggleColorNormalize:
		c.ColorNormalize = on
	case ToggleSharpen:
		c.Sharpen = on
	case ToggleEqualizeHist:
		c.EqualizeHist = on
	case ToggleDynamicGrid:
		c.DynamicGrid = on
	case ToggleResolutionAware:
		c.ResolutionAware = on
	case ToggleRarityFilter:
		c.RarityFilter = on
	case ToggleEmptyCellFilter:
		c.EmptyCellFilter = on
	case ToggleNCC:
		c.UseNCC = on
	case ToggleSSIM:
		c.UseSSIM = on
	case ToggleHistogram:
		c.UseHistogram = on
	case ToggleEdges:
		c.UseEdges = on
	case ToggleAgreementBonus:
		c.AgreementBonus = on
	case ToggleAdaptiveThreshold:
		c.AdaptiveThreshold = on
	}
	return c
}

// Enabled reports whether one component is switched on.
func (c PipelineConfig) Enabled(t Toggle) bool {
	switch t {
	case ToggleMultiScale:
		return c.MultiScale
	case ToggleContrastEnhance:
		return c.ContrastEnhance
	case ToggleColorNormalize:
		return c.ColorNormalize
	case ToggleSharpen:
		return c.Sharpen
	case ToggleEqualizeHist:
		return c.EqualizeHist
	case ToggleDynamicGrid:
		return c.DynamicGrid
	case ToggleResolutionAware:
		return c.ResolutionAware
	case ToggleRarityFilter:
		return c.RarityFilter
	case ToggleEmptyCellFilter:
		return c.EmptyCellFilter
	case ToggleNCC:
		return c.UseNCC
	case ToggleSSIM:
		return c.UseSSIM
	case ToggleHistogram:
		return c.UseHistogram
	case ToggleEdges:
		return c.UseEdges
	case ToggleAgreementBonus:
		return c.AgreementBonus
	case ToggleAdaptiveThreshold:
		return c.AdaptiveThreshold
	default:
		return false
	}
}

// MetricsEnabled returns the measure selection implied by the config.
func (c PipelineConfig) MetricsEnabled() metrics.Enabled {
	return metrics.Enabled{
		NCC:       c.UseNCC,
		SSIM:      c.UseSSIM,
		Histogram: c.UseHistogram,
		Edges:     c.UseEdges,
	}
}
