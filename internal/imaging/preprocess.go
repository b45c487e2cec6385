package imaging

import (
	"image"

	"gocv.io/x/gocv"
)

// PreprocessOptions selects which crop enhancements to apply before scoring.
// Each stage is independently toggleable so its contribution can be measured.
type PreprocessOptions struct {
	Contrast       bool // linear contrast stretch
	Sharpen        bool // unsharp mask
	Equalize       bool // CLAHE on the luma channel
	NormalizeColor bool // per-channel mean normalization
}

// Enabled returns true if any preprocessing stage is selected.
func (o PreprocessOptions) Enabled() bool {
	return o.Contrast || o.Sharpen || o.Equalize || o.NormalizeColor
}

// Preprocess applies the selected enhancements to a crop and returns a new
// buffer. The input is never modified. With no stages selected the input is
// returned as-is.
func Preprocess(src *image.RGBA, opts PreprocessOptions) *image.RGBA {
	if !opts.Enabled() {
		return src
	}

	out := src
	if opts.Contrast || opts.Sharpen || opts.Equalize {
		mat, err := gocv.ImageToMatRGBA(out)
		if err != nil {
			// Enhancement is best-effort; scoring still works on the raw crop.
			return out
		}
		defer mat.Close()

		bgr := gocv.NewMat()
		defer bgr.Close()
		gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)

		if opts.Contrast {
			stretchContrast(&bgr)
		}
		if opts.Equalize {
			equalizeLuma(&bgr)
		}
		if opts.Sharpen {
			unsharpMask(&bgr)
		}

		rgba := gocv.NewMat()
		defer rgba.Close()
		gocv.CvtColor(bgr, &rgba, gocv.ColorBGRToRGBA)
		img, err := rgba.ToImage()
		if err != nil {
			return out
		}
		out = EnsureRGBA(img)
	}

	if opts.NormalizeColor {
		out = normalizeColor(out)
	}
	return out
}

// stretchContrast applies a mild linear gain around the midpoint.
func stretchContrast(m *gocv.Mat) {
	dst := gocv.NewMat()
	defer dst.Close()
	m.ConvertToWithParams(&dst, gocv.MatTypeCV8UC3, 1.2, -25)
	dst.CopyTo(m)
}

// equalizeLuma runs CLAHE on the Y channel of the crop, leaving chroma alone.
func equalizeLuma(m *gocv.Mat) {
	ycc := gocv.NewMat()
	defer ycc.Close()
	gocv.CvtColor(*m, &ycc, gocv.ColorBGRToYCrCb)

	channels := gocv.Split(ycc)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()

	clahe := gocv.NewCLAHEWithParams(2.0, image.Pt(4, 4))
	defer clahe.Close()

	eq := gocv.NewMat()
	defer eq.Close()
	clahe.Apply(channels[0], &eq)
	eq.CopyTo(&channels[0])

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge(channels, &merged)
	gocv.CvtColor(merged, m, gocv.ColorYCrCbToBGR)
}

// unsharpMask sharpens by subtracting a Gaussian blur: 1.5*src - 0.5*blur.
func unsharpMask(m *gocv.Mat) {
	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(*m, &blur, image.Pt(0, 0), 1.0, 1.0, gocv.BorderDefault)

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.AddWeighted(*m, 1.5, blur, -0.5, 0, &dst)
	dst.CopyTo(m)
}

// normalizeColor rescales each channel so its mean lands on 128, which
// suppresses the inventory bar's tint and vignette differences between
// resolutions. Gain is clamped to [0.5, 2.0] to avoid blowing out
// near-black crops.
func normalizeColor(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	n := w * h
	if n == 0 {
		return src
	}

	var sum [3]float64
	for y := 0; y < h; y++ {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			off := row + x*4
			sum[0] += float64(src.Pix[off])
			sum[1] += float64(src.Pix[off+1])
			sum[2] += float64(src.Pix[off+2])
		}
	}

	var gain [3]float64
	for c := 0; c < 3; c++ {
		mean := sum[c] / float64(n)
		if mean < 1 {
			mean = 1
		}
		g := 128.0 / mean
		if g < 0.5 {
			g = 0.5
		}
		if g > 2.0 {
			g = 2.0
		}
		gain[c] = g
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcRow := y * src.Stride
		dstRow := y * dst.Stride
		for x := 0; x < w; x++ {
			so := srcRow + x*4
			do := dstRow + x*4
			for c := 0; c < 3; c++ {
				v := float64(src.Pix[so+c]) * gain[c]
				if v > 255 {
					v = 255
				}
				dst.Pix[do+c] = uint8(v + 0.5)
			}
			dst.Pix[do+3] = src.Pix[so+3]
		}
	}
	return dst
}
