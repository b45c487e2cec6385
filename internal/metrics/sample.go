// Package metrics implements the independent similarity measures used to
// compare slot crops against template icons, and their weighted combination.
// Every measure maps to [0, 1], returns exactly 0 for degenerate input
// (mismatched sizes or an empty buffer), and never produces NaN.
package metrics

import (
	"image"
	"math"
)

// Sample holds the planes extracted once from a canonical-size crop so the
// individual measures can share them. Samples are immutable after creation.
type Sample struct {
	Width  int
	Height int

	Gray []float64   // Rec. 601 luminance, row-major
	Hist [3][16]int  // per-channel 16-bin histograms
	Grad []float64   // Sobel gradient magnitude of Gray
}

// NewSample extracts luminance, channel histograms and gradient magnitude
// from an RGBA buffer.
func NewSample(img *image.RGBA) *Sample {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	s := &Sample{
		Width:  w,
		Height: h,
		Gray:   make([]float64, w*h),
	}

	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			off := row + x*4
			r := img.Pix[off]
			g := img.Pix[off+1]
			bl := img.Pix[off+2]
			s.Gray[y*w+x] = 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)
			s.Hist[0][r>>4]++
			s.Hist[1][g>>4]++
			s.Hist[2][bl>>4]++
		}
	}

	s.Grad = gradientMagnitude(s.Gray, w, h)
	return s
}

// comparable returns true when two samples can be meaningfully compared.
func comparable(a, b *Sample) bool {
	return a != nil && b != nil &&
		a.Width == b.Width && a.Height == b.Height &&
		a.Width > 0 && a.Height > 0
}

// gradientMagnitude computes the Sobel gradient magnitude of a luminance
// plane. Border pixels are left at zero.
func gradientMagnitude(gray []float64, w, h int) []float64 {
	out := make([]float64, w*h)
	if w < 3 || h < 3 {
		return out
	}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			gx := gray[i-w+1] + 2*gray[i+1] + gray[i+w+1] -
				gray[i-w-1] - 2*gray[i-1] - gray[i+w-1]
			gy := gray[i+w-1] + 2*gray[i+w] + gray[i+w+1] -
				gray[i-w-1] - 2*gray[i-w] - gray[i-w+1]
			out[i] = math.Sqrt(gx*gx + gy*gy)
		}
	}
	return out
}
