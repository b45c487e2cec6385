package metrics

import "math"

// SSIM stabilization constants: (K*L)^2 with K1=0.01, K2=0.03, L=255.
const (
	ssimC1 = 6.5025
	ssimC2 = 58.5225
)

// NCC computes normalized cross-correlation of the luminance planes,
// remapped from [-1, 1] to [0, 1]. Two identical textured crops score 1.0.
// Zero-variance or degenerate input scores 0.
func NCC(a, b *Sample) float64 {
	if !comparable(a, b) {
		return 0
	}
	return remapCorrelation(pearson(a.Gray, b.Gray))
}

// SSIM computes a simplified single-window structural similarity over the
// luminance planes, comparing mean, variance and covariance with fixed
// stabilization constants. Range [0, 1]; degenerate input scores 0.
func SSIM(a, b *Sample) float64 {
	if !comparable(a, b) {
		return 0
	}

	n := float64(len(a.Gray))
	var sumA, sumB float64
	for i := range a.Gray {
		sumA += a.Gray[i]
		sumB += b.Gray[i]
	}
	meanA := sumA / n
	meanB := sumB / n

	var varA, varB, cov float64
	for i := range a.Gray {
		da := a.Gray[i] - meanA
		db := b.Gray[i] - meanB
		varA += da * da
		varB += db * db
		cov += da * db
	}
	varA /= n
	varB /= n
	cov /= n

	num := (2*meanA*meanB + ssimC1) * (2*cov + ssimC2)
	den := (meanA*meanA + meanB*meanB + ssimC1) * (varA + varB + ssimC2)
	if den == 0 {
		return 0
	}
	return clamp01(num / den)
}

// HistogramIntersection computes the overlap of the per-channel 16-bin
// histograms, normalized by pixel count x channel count. Range [0, 1].
func HistogramIntersection(a, b *Sample) float64 {
	if !comparable(a, b) {
		return 0
	}

	inter := 0
	for c := 0; c < 3; c++ {
		for bin := 0; bin < 16; bin++ {
			ha := a.Hist[c][bin]
			hb := b.Hist[c][bin]
			if ha < hb {
				inter += ha
			} else {
				inter += hb
			}
		}
	}
	return float64(inter) / float64(a.Width*a.Height*3)
}

// EdgeCorrelation compares the structure of the two crops by correlating
// their Sobel gradient magnitude planes, remapped to [0, 1]. Crops with no
// edge content (flat gradient) score 0.
func EdgeCorrelation(a, b *Sample) float64 {
	if !comparable(a, b) {
		return 0
	}
	return remapCorrelation(pearson(a.Grad, b.Grad))
}

// pearson returns the Pearson correlation of two equal-length planes, or 0
// when either plane has zero variance.
func pearson(a, b []float64) float64 {
	n := float64(len(a))
	if n == 0 {
		return 0
	}

	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA := sumA / n
	meanB := sumB / n

	var num, sqA, sqB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		num += da * db
		sqA += da * da
		sqB += db * db
	}

	den := math.Sqrt(sqA * sqB)
	if den < 1e-9 {
		return 0
	}
	return num / den
}

// remapCorrelation maps a [-1, 1] correlation to the [0, 1] score contract.
// A zero correlation (including the degenerate zero-variance case) maps
// to 0 rather than 0.5 so flat crops never masquerade as half-matches.
func remapCorrelation(r float64) float64 {
	if r == 0 {
		return 0
	}
	return clamp01((r + 1) / 2)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
