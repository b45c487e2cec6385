// Package calibration maps screen resolutions to inventory bar geometry.
package calibration

import (
	"fmt"
	"math"
)

// Calibration describes where inventory icons sit on screen at one
// resolution. All linear measurements are in pixels. IconsPerRow and NumRows
// are discrete layout facts and are never scaled.
type Calibration struct {
	XOffset    int `json:"x_offset"`     // Horizontal nudge applied after centering
	YOffset    int `json:"y_offset"`     // Gap between grid bottom and image bottom
	IconWidth  int `json:"icon_width"`   //
	IconHeight int `json:"icon_height"`  //
	XSpacing   int `json:"x_spacing"`    // Horizontal gap between icons
	YSpacing   int `json:"y_spacing"`    // Vertical gap between icons
	IconsPerRow int `json:"icons_per_row"`
	NumRows    int `json:"num_rows,omitempty"` // 0 = derive from item count
}

// Base resolution the default calibration was measured at. Unknown
// resolutions are derived from it by vertical scale.
const (
	BaseWidth  = 1920
	BaseHeight = 1080
)

// Default returns the hand-measured calibration for the base resolution.
func Default() Calibration {
	return Calibration{
		XOffset:     10,
		YOffset:     35,
		IconWidth:   58,
		IconHeight:  58,
		XSpacing:    12,
		YSpacing:    6,
		IconsPerRow: 14,
		NumRows:     2,
	}
}

// Capacity returns the number of slots the bar holds when filled. A zero
// NumRows is treated as the standard two rows.
func (c Calibration) Capacity() int {
	rows := c.NumRows
	if rows <= 0 {
		rows = 2
	}
	return c.IconsPerRow * rows
}

// Key formats a resolution as the preset table key, e.g. "1920x1080".
func Key(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// ForResolution returns the calibration for an image size. The second return
// is true when an exact preset matched; otherwise the base calibration is
// scaled by height/BaseHeight with each linear measurement rounded to the
// nearest pixel. The result is a pure function of the inputs.
func ForResolution(width, height int) (Calibration, bool) {
	if cal, ok := presets[Key(width, height)]; ok {
		return cal, true
	}
	return ScaledDefault(width, height), false
}

// ScaledDefault derives a calibration for any resolution from the base
// calibration. Linear measurements scale with height; discrete layout
// facts are copied through unchanged.
func ScaledDefault(width, height int) Calibration {
	base := Default()
	f := float64(height) / float64(BaseHeight)
	return Calibration{
		XOffset:     scaleRound(base.XOffset, f),
		YOffset:     scaleRound(base.YOffset, f),
		IconWidth:   scaleRound(base.IconWidth, f),
		IconHeight:  scaleRound(base.IconHeight, f),
		XSpacing:    scaleRound(base.XSpacing, f),
		YSpacing:    scaleRound(base.YSpacing, f),
		IconsPerRow: base.IconsPerRow,
		NumRows:     base.NumRows,
	}
}

func scaleRound(v int, f float64) int {
	return int(math.Round(float64(v) * f))
}
