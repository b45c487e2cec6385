package ablation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"item-scanner/internal/bench"
	"item-scanner/internal/detect"
)

func suiteResults() []Result {
	return []Result{
		{ConfigName: BaselineName, Aggregate: bench.Metrics{F1: 0.80}},
		{ConfigName: "minimal", Aggregate: bench.Metrics{F1: 0.55}},
		{ConfigName: "no-ssim", Disables: detect.ToggleSSIM, Aggregate: bench.Metrics{F1: 0.75}},
		{ConfigName: "no-edges", Disables: detect.ToggleEdges, Aggregate: bench.Metrics{F1: 0.802}},
		{ConfigName: "no-histogram", Disables: detect.ToggleHistogram, Aggregate: bench.Metrics{F1: 0.83}},
	}
}

func TestComputeImpacts(t *testing.T) {
	impacts, err := ComputeImpacts(suiteResults(), BaselineName)
	require.NoError(t, err)

	// The baseline and minimal anchors carry no Disables and produce no
	// impact rows.
	require.Len(t, impacts, 3)

	// Most helpful first: removing SSIM cost the most accuracy.
	ssim := impacts[0]
	require.Equal(t, detect.ToggleSSIM, ssim.Component)
	require.InDelta(t, -0.05, ssim.DeltaF1, 1e-9)
	require.Equal(t, SignificanceHigh, ssim.Significance)
	require.True(t, ssim.Helps)
	require.InDelta(t, 0.80, ssim.BaselineF1, 1e-9)

	edges := impacts[1]
	require.Equal(t, detect.ToggleEdges, edges.Component)
	require.Equal(t, SignificanceNone, edges.Significance)

	hist := impacts[2]
	require.Equal(t, detect.ToggleHistogram, hist.Component)
	require.Equal(t, SignificanceMedium, hist.Significance)
	require.False(t, hist.Helps)
}

func TestComputeImpactsMissingBaseline(t *testing.T) {
	_, err := ComputeImpacts(suiteResults()[2:], BaselineName)
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	require.Equal(t, SignificanceHigh, Classify(0.75-0.80))
	require.Equal(t, SignificanceHigh, Classify(0.051))
	require.Equal(t, SignificanceMedium, Classify(-0.03))
	require.Equal(t, SignificanceLow, Classify(0.006))
	require.Equal(t, SignificanceNone, Classify(0.002))
	require.Equal(t, SignificanceNone, Classify(0))
}

func TestSignificanceStrings(t *testing.T) {
	require.Equal(t, "high", SignificanceHigh.String())
	require.Equal(t, "medium", SignificanceMedium.String())
	require.Equal(t, "low", SignificanceLow.String())
	require.Equal(t, "none", SignificanceNone.String())
}

func TestRecommendDisablesHurtingComponents(t *testing.T) {
	impacts, err := ComputeImpacts(suiteResults(), BaselineName)
	require.NoError(t, err)

	cfg := Recommend(impacts)
	require.Equal(t, "recommended", cfg.Name)

	// Removing the histogram measure improved accuracy, so the recommended
	// config turns it off. The neutral edge measure stays on.
	require.False(t, cfg.Enabled(detect.ToggleHistogram))
	require.True(t, cfg.Enabled(detect.ToggleEdges))
	require.True(t, cfg.Enabled(detect.ToggleSSIM))
}

func TestBaselinePreset(t *testing.T) {
	cfg := Baseline()
	require.Equal(t, BaselineName, cfg.Name)
	for _, tog := range detect.Toggles() {
		require.True(t, cfg.Enabled(tog), string(tog))
	}
}

func TestMinimalPreset(t *testing.T) {
	cfg := Minimal()
	require.True(t, cfg.Enabled(detect.ToggleSSIM))
	require.True(t, cfg.Enabled(detect.ToggleEmptyCellFilter))
	for _, tog := range detect.Toggles() {
		if tog == detect.ToggleSSIM || tog == detect.ToggleEmptyCellFilter {
			continue
		}
		require.False(t, cfg.Enabled(tog), string(tog))
	}
}

func TestSuiteShape(t *testing.T) {
	presets := Suite()
	// Baseline, minimal, and one leave-one-out preset per toggle.
	require.Len(t, presets, 2+len(detect.Toggles()))
	require.Equal(t, BaselineName, presets[0].Name)
	require.Empty(t, presets[0].Disables)
	require.Equal(t, "minimal", presets[1].Name)

	for _, p := range presets[2:] {
		require.Equal(t, "no-"+string(p.Disables), p.Name)
		require.False(t, p.Config.Enabled(p.Disables), p.Name)

		// Every other component stays on.
		for _, tog := range detect.Toggles() {
			if tog == p.Disables {
				continue
			}
			require.True(t, p.Config.Enabled(tog), p.Name)
		}
	}
}
