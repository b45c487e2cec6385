package grid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"item-scanner/internal/calibration"
)

func TestPlaceSlotsBaseResolution(t *testing.T) {
	cal := calibration.Default()
	boxes, layout, skipped := PlaceSlots(1920, 1080, cal, 21)

	require.Len(t, boxes, 21)
	require.Zero(t, skipped)

	// cell 70x64, two rows of a 14-wide grid centered at the bottom
	require.Equal(t, 70, layout.CellWidth)
	require.Equal(t, 64, layout.CellHeight)
	require.Equal(t, 2, layout.Rows)
	require.Equal(t, 470, layout.StartX)
	require.Equal(t, 917, layout.StartY)

	first := boxes[0]
	require.Equal(t, 0, first.Index)
	require.Equal(t, 480, first.X) // StartX + XOffset
	require.Equal(t, 917, first.Y)
	require.Equal(t, 58, first.Width)
	require.Equal(t, 58, first.Height)

	// Second row starts one cell height below, back at column 0.
	rowStart := boxes[14]
	require.Equal(t, 14, rowStart.Index)
	require.Equal(t, first.X, rowStart.X)
	require.Equal(t, first.Y+layout.CellHeight, rowStart.Y)

	// Columns advance by cell width within a row.
	require.Equal(t, first.X+13*layout.CellWidth, boxes[13].X)
	require.Equal(t, first.Y, boxes[13].Y)
}

func TestPlaceSlotsRowsFollowItemCount(t *testing.T) {
	cal := calibration.Default()

	_, oneRow, _ := PlaceSlots(1920, 1080, cal, 14)
	require.Equal(t, 1, oneRow.Rows)

	_, twoRows, _ := PlaceSlots(1920, 1080, cal, 15)
	require.Equal(t, 2, twoRows.Rows)
}

func TestPlaceSlotsExcludesOutOfBounds(t *testing.T) {
	// The grid cannot fit a 200x200 image; every box lands outside and is
	// excluded rather than clamped.
	boxes, _, skipped := PlaceSlots(200, 200, calibration.Default(), 21)
	require.Empty(t, boxes)
	require.Equal(t, 21, skipped)
}

func TestPlaceSlotsKeepsIndexWhenSkipping(t *testing.T) {
	// Wide enough for the grid but short enough that the top row is cut off.
	cal := calibration.Default()
	boxes, layout, skipped := PlaceSlots(1920, 160, cal, 28)

	require.Equal(t, 2, layout.Rows)
	require.Equal(t, 14, skipped)
	require.Len(t, boxes, 14)
	// The surviving boxes are the second row; their grid indexes are intact.
	require.Equal(t, 14, boxes[0].Index)
	require.Equal(t, 27, boxes[len(boxes)-1].Index)
}

func TestPlaceSlotsDegenerateInput(t *testing.T) {
	boxes, _, skipped := PlaceSlots(1920, 1080, calibration.Default(), 0)
	require.Nil(t, boxes)
	require.Zero(t, skipped)

	boxes, _, _ = PlaceSlots(1920, 1080, calibration.Calibration{}, 5)
	require.Nil(t, boxes)
}

func TestSlotBoxRects(t *testing.T) {
	b := SlotBox{Index: 3, X: 10, Y: 20, Width: 58, Height: 58}
	require.Equal(t, 10, b.Rect().X)
	require.Equal(t, 58, b.Rect().Width)

	ir := b.ImageRect()
	require.Equal(t, 10, ir.Min.X)
	require.Equal(t, 68, ir.Max.X)
	require.Equal(t, 78, ir.Max.Y)
}
