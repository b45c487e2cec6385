// Package grid turns a calibration and an expected item count into an
// ordered list of slot bounding boxes.
package grid

import (
	"image"

	"item-scanner/internal/calibration"
	"item-scanner/pkg/geometry"
)

// SlotBox is one icon slot's bounding box. Index is the slot's position in
// the grid (row-major), which is stable even when other boxes are excluded
// for falling outside the image.
type SlotBox struct {
	Index  int
	X      int
	Y      int
	Width  int
	Height int
}

// Rect returns the box as a geometry rectangle.
func (b SlotBox) Rect() geometry.RectInt {
	return geometry.RectInt{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// ImageRect returns the box as a stdlib image rectangle.
func (b SlotBox) ImageRect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Layout describes where the grid was anchored for a given image.
type Layout struct {
	StartX     int // Left edge of column 0 before XOffset
	StartY     int // Top edge of row 0
	CellWidth  int
	CellHeight int
	Rows       int
}

// PlaceSlots computes bounding boxes for itemCount slots on an imageWidth x
// imageHeight screenshot. The grid is centered horizontally and anchored to
// the bottom of the image minus the calibration's YOffset. Boxes that fall
// outside the image are excluded rather than clamped, so downstream scoring
// never sees garbage pixels; the skipped count is returned for diagnostics.
func PlaceSlots(imageWidth, imageHeight int, cal calibration.Calibration, itemCount int) ([]SlotBox, Layout, int) {
	if itemCount <= 0 || cal.IconsPerRow <= 0 || cal.IconWidth <= 0 || cal.IconHeight <= 0 {
		return nil, Layout{}, 0
	}

	cellW := cal.IconWidth + cal.XSpacing
	cellH := cal.IconHeight + cal.YSpacing
	rows := (itemCount + cal.IconsPerRow - 1) / cal.IconsPerRow

	gridW := cal.IconsPerRow * cellW
	gridH := rows * cellH

	layout := Layout{
		StartX:     (imageWidth - gridW) / 2,
		StartY:     imageHeight - gridH - cal.YOffset,
		CellWidth:  cellW,
		CellHeight: cellH,
		Rows:       rows,
	}

	boxes := make([]SlotBox, 0, itemCount)
	skipped := 0
	for i := 0; i < itemCount; i++ {
		row := i / cal.IconsPerRow
		col := i % cal.IconsPerRow
		box := SlotBox{
			Index:  i,
			X:      layout.StartX + cal.XOffset + col*cellW,
			Y:      layout.StartY + row*cellH,
			Width:  cal.IconWidth,
			Height: cal.IconHeight,
		}
		if !box.Rect().Inside(imageWidth, imageHeight) {
			skipped++
			continue
		}
		boxes = append(boxes, box)
	}

	return boxes, layout, skipped
}
