package ablation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"item-scanner/internal/detect"
)

// Significance buckets an impact magnitude.
type Significance int

const (
	SignificanceNone Significance = iota
	SignificanceLow
	SignificanceMedium
	SignificanceHigh
)

func (s Significance) String() string {
	switch s {
	case SignificanceHigh:
		return "high"
	case SignificanceMedium:
		return "medium"
	case SignificanceLow:
		return "low"
	default:
		return "none"
	}
}

// MarshalJSON writes the tier as its label so reports stay readable.
func (s Significance) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Significance) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	switch label {
	case "high":
		*s = SignificanceHigh
	case "medium":
		*s = SignificanceMedium
	case "low":
		*s = SignificanceLow
	case "none":
		*s = SignificanceNone
	default:
		return fmt.Errorf("unknown significance %q", label)
	}
	return nil
}

// Significance magnitude thresholds on |ΔF1|.
const (
	significanceHigh   = 0.05
	significanceMedium = 0.02
	significanceLow    = 0.005
)

// Impact is one component's measured contribution, relative to baseline.
// DeltaF1 = meanF1(no-X) - meanF1(baseline): a negative delta means the
// component helps, because disabling it lowered accuracy.
type Impact struct {
	Component    detect.Toggle `json:"component"`
	ConfigName   string        `json:"config"`
	BaselineF1   float64       `json:"baselineF1"`
	DeltaF1      float64       `json:"deltaF1"`
	Significance Significance  `json:"significance"`
	Helps        bool          `json:"helps"`
}

// ComputeImpacts derives per-component impacts from a suite run. Every
// leave-one-out result is compared against the designated baseline result.
// This assumes component effects are independent; interactions between
// components are not captured.
func ComputeImpacts(results []Result, baselineName string) ([]Impact, error) {
	var baseline *Result
	for i := range results {
		if results[i].ConfigName == baselineName {
			baseline = &results[i]
			break
		}
	}
	if baseline == nil {
		return nil, fmt.Errorf("no result named %q to use as baseline", baselineName)
	}

	var impacts []Impact
	for _, res := range results {
		if res.Disables == "" {
			continue
		}
		delta := res.Aggregate.F1 - baseline.Aggregate.F1
		impacts = append(impacts, Impact{
			Component:    res.Disables,
			ConfigName:   res.ConfigName,
			BaselineF1:   baseline.Aggregate.F1,
			DeltaF1:      delta,
			Significance: Classify(delta),
			Helps:        delta < 0,
		})
	}

	// Most helpful components first.
	sort.Slice(impacts, func(i, j int) bool {
		return impacts[i].DeltaF1 < impacts[j].DeltaF1
	})
	return impacts, nil
}

// Classify buckets a ΔF1 into a significance tier by magnitude.
func Classify(deltaF1 float64) Significance {
	mag := math.Abs(deltaF1)
	switch {
	case mag > significanceHigh:
		return SignificanceHigh
	case mag > significanceMedium:
		return SignificanceMedium
	case mag > significanceLow:
		return SignificanceLow
	default:
		return SignificanceNone
	}
}

// Recommend builds a configuration from the impact analysis: the baseline
// with every component whose removal measurably improved accuracy switched
// off.
func Recommend(impacts []Impact) detect.PipelineConfig {
	cfg := Baseline().WithName("recommended")
	for _, imp := range impacts {
		if !imp.Helps && imp.Significance != SignificanceNone {
			cfg = cfg.WithToggle(imp.Component, false)
		}
	}
	return cfg
}
