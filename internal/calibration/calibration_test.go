package calibration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForResolutionExactPreset(t *testing.T) {
	cal, exact := ForResolution(2560, 1440)
	require.True(t, exact)
	require.Equal(t, 13, cal.XOffset)
	require.Equal(t, 47, cal.YOffset)
	require.Equal(t, 77, cal.IconWidth)
	require.Equal(t, 77, cal.IconHeight)
	require.Equal(t, 16, cal.XSpacing)
	require.Equal(t, 8, cal.YSpacing)
}

func TestForResolutionAllPresets(t *testing.T) {
	for _, key := range PresetResolutions() {
		cal := presets[key]
		require.Equal(t, 14, cal.IconsPerRow, key)
		require.Equal(t, 2, cal.NumRows, key)
		require.Positive(t, cal.IconWidth, key)
		require.Positive(t, cal.IconHeight, key)
	}
}

func TestForResolutionScaledFallback(t *testing.T) {
	cal, exact := ForResolution(1360, 768)
	require.False(t, exact)

	// 768/1080 scale, each linear field rounded to the nearest pixel.
	require.Equal(t, 7, cal.XOffset)
	require.Equal(t, 25, cal.YOffset)
	require.Equal(t, 41, cal.IconWidth)
	require.Equal(t, 41, cal.IconHeight)
	require.Equal(t, 9, cal.XSpacing)
	require.Equal(t, 4, cal.YSpacing)

	// Discrete layout facts never scale.
	require.Equal(t, 14, cal.IconsPerRow)
	require.Equal(t, 2, cal.NumRows)
}

func TestScaledDefaultMatchesMeasuredPreset(t *testing.T) {
	// The 1440p preset was measured, not derived, but pure vertical scaling
	// happens to land on the same values. That keeps the fallback honest.
	scaled := ScaledDefault(2560, 1440)
	require.Equal(t, presets["2560x1440"], scaled)
}

func TestScaledDefaultIdentityAtBase(t *testing.T) {
	require.Equal(t, Default(), ScaledDefault(BaseWidth, BaseHeight))
}

func TestCapacity(t *testing.T) {
	require.Equal(t, 28, Default().Capacity())

	oneRow := Default()
	oneRow.NumRows = 1
	require.Equal(t, 14, oneRow.Capacity())

	// Zero rows means the standard two.
	derived := Default()
	derived.NumRows = 0
	require.Equal(t, 28, derived.Capacity())
}

func TestKey(t *testing.T) {
	require.Equal(t, "1920x1080", Key(1920, 1080))
}
