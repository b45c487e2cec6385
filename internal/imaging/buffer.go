// Package imaging provides pixel buffer utilities for slot crops: RGBA
// conversion, cropping, canonical-size resampling and luminance extraction.
package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// CanonicalSize is the edge length every slot crop is resampled to before
// comparison, so all similarity metrics operate on equal-length buffers.
const CanonicalSize = 40

// LoadRGBA decodes an image file into an RGBA buffer.
func LoadRGBA(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode image %s: %w", path, err)
	}
	return EnsureRGBA(img), nil
}

// EnsureRGBA converts any image to *image.RGBA with origin (0, 0).
func EnsureRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
	return dst
}

// Crop copies the rectangle r of src into a new RGBA buffer with origin
// (0, 0). The rectangle must lie within src's bounds.
func Crop(src *image.RGBA, r image.Rectangle) *image.RGBA {
	w, h := r.Dx(), r.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	srcBase := src.PixOffset(r.Min.X, r.Min.Y)
	for y := 0; y < h; y++ {
		srcRow := srcBase + y*src.Stride
		dstRow := y * dst.Stride
		copy(dst.Pix[dstRow:dstRow+w*4], src.Pix[srcRow:srcRow+w*4])
	}
	return dst
}

// Resample scales src to width x height using bilinear interpolation.
func Resample(src *image.RGBA, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Canonical resamples a crop to the canonical comparison size.
func Canonical(src *image.RGBA) *image.RGBA {
	return Resample(src, CanonicalSize, CanonicalSize)
}

// CanonicalAtScale resamples a crop to scale x canonical size and then
// recenters it on a canonical buffer: larger renditions are center-cropped,
// smaller ones are pasted centered on black. Used for multi-scale sampling.
func CanonicalAtScale(src *image.RGBA, scale float64) *image.RGBA {
	side := int(math.Round(CanonicalSize * scale))
	if side < 1 {
		side = 1
	}
	if side == CanonicalSize {
		return Canonical(src)
	}

	scaled := Resample(src, side, side)
	dst := image.NewRGBA(image.Rect(0, 0, CanonicalSize, CanonicalSize))
	if side > CanonicalSize {
		off := (side - CanonicalSize) / 2
		return Crop(scaled, image.Rect(off, off, off+CanonicalSize, off+CanonicalSize))
	}
	off := (CanonicalSize - side) / 2
	xdraw.Draw(dst, image.Rect(off, off, off+side, off+side), scaled, image.Point{}, xdraw.Src)
	return dst
}

// Grayscale returns the per-pixel luminance (0-255) of an RGBA buffer in
// row-major order, using the Rec. 601 weights.
func Grayscale(img *image.RGBA) []float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			off := row + x*4
			r := float64(img.Pix[off])
			g := float64(img.Pix[off+1])
			bl := float64(img.Pix[off+2])
			out[y*w+x] = 0.299*r + 0.587*g + 0.114*bl
		}
	}
	return out
}
