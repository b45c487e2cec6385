package detect

import "image"

// DefaultEmptyVariance is the summed RGB channel variance below which a
// slot crop is classified empty. An unoccupied slot shows the near-uniform
// inventory bar background; any icon pushes the variance well above this.
const DefaultEmptyVariance = 500.0

// ChannelVariance returns the per-channel pixel variance of a crop, summed
// over R, G and B.
func ChannelVariance(img *image.RGBA) float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	n := float64(w * h)
	if n == 0 {
		return 0
	}

	var sum, sumSq [3]float64
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			off := row + x*4
			for c := 0; c < 3; c++ {
				v := float64(img.Pix[off+c])
				sum[c] += v
				sumSq[c] += v * v
			}
		}
	}

	total := 0.0
	for c := 0; c < 3; c++ {
		mean := sum[c] / n
		v := sumSq[c]/n - mean*mean
		if v > 0 {
			total += v
		}
	}
	return total
}

// IsEmptySlot reports whether a crop's channel variance falls below the
// given threshold.
func IsEmptySlot(img *image.RGBA, threshold float64) bool {
	return ChannelVariance(img) < threshold
}
