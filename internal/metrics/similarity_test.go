package metrics

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

// texturedImage builds a deterministic non-uniform crop.
func texturedImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			off := y*img.Stride + x*4
			img.Pix[off] = uint8((x*37 + y*11) % 256)
			img.Pix[off+1] = uint8((x*13 + y*57) % 256)
			img.Pix[off+2] = uint8((x * y) % 256)
			img.Pix[off+3] = 255
		}
	}
	return img
}

func flatImage(size int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
		img.Pix[i+3] = 255
	}
	return img
}

func TestMeasuresIdentity(t *testing.T) {
	s := NewSample(texturedImage(40))

	require.InDelta(t, 1.0, NCC(s, s), 1e-9)
	require.InDelta(t, 1.0, SSIM(s, s), 1e-9)
	require.InDelta(t, 1.0, HistogramIntersection(s, s), 1e-9)
	require.InDelta(t, 1.0, EdgeCorrelation(s, s), 1e-9)
}

func TestMeasuresRange(t *testing.T) {
	a := NewSample(texturedImage(40))
	b := NewSample(flatImage(40, 200))

	for name, v := range map[string]float64{
		"ncc":  NCC(a, b),
		"ssim": SSIM(a, b),
		"hist": HistogramIntersection(a, b),
		"edge": EdgeCorrelation(a, b),
	} {
		require.GreaterOrEqual(t, v, 0.0, name)
		require.LessOrEqual(t, v, 1.0, name)
	}
}

func TestCorrelationMeasuresZeroOnFlatInput(t *testing.T) {
	flat := NewSample(flatImage(40, 128))
	textured := NewSample(texturedImage(40))

	// Zero variance gives zero correlation, which maps to 0 rather than 0.5.
	require.Zero(t, NCC(flat, textured))
	require.Zero(t, NCC(flat, flat))
	require.Zero(t, EdgeCorrelation(flat, textured))
}

func TestMeasuresZeroOnSizeMismatch(t *testing.T) {
	a := NewSample(texturedImage(40))
	b := NewSample(texturedImage(32))

	require.Zero(t, NCC(a, b))
	require.Zero(t, SSIM(a, b))
	require.Zero(t, HistogramIntersection(a, b))
	require.Zero(t, EdgeCorrelation(a, b))
	require.Zero(t, Score(a, b, Enabled{NCC: true, SSIM: true}, DefaultWeights()).Combined)
}

func TestMeasuresZeroOnNil(t *testing.T) {
	a := NewSample(texturedImage(40))
	require.Zero(t, NCC(a, nil))
	require.Zero(t, SSIM(nil, a))
}

func TestHistogramIntersectionPartialOverlap(t *testing.T) {
	// Two flat crops in different bins share no mass at all.
	dark := NewSample(flatImage(40, 10))
	bright := NewSample(flatImage(40, 250))
	require.Zero(t, HistogramIntersection(dark, bright))

	// Same bin, different exact values: full overlap.
	a := NewSample(flatImage(40, 32))
	b := NewSample(flatImage(40, 40))
	require.InDelta(t, 1.0, HistogramIntersection(a, b), 1e-9)
}

func TestScoreCombinedIdentity(t *testing.T) {
	s := NewSample(texturedImage(40))
	all := Enabled{NCC: true, SSIM: true, Histogram: true, Edges: true}

	scores := Score(s, s, all, DefaultWeights())
	require.InDelta(t, 1.0, scores.Combined, 1e-9)
	require.InDelta(t, 1.0, scores.NCC, 1e-9)
	require.InDelta(t, 1.0, scores.SSIM, 1e-9)
}

func TestScoreRenormalizesOverEnabledSubset(t *testing.T) {
	a := NewSample(texturedImage(40))
	b := NewSample(flatImage(40, 100))

	only := Score(a, b, Enabled{Histogram: true}, DefaultWeights())
	require.InDelta(t, only.Histogram, only.Combined, 1e-9)
	require.Zero(t, only.NCC)
	require.Zero(t, only.SSIM)
}

func TestScoreNoMeasuresEnabled(t *testing.T) {
	s := NewSample(texturedImage(40))
	require.Zero(t, Score(s, s, Enabled{}, DefaultWeights()).Combined)
}

func TestAgreeing(t *testing.T) {
	s := Scores{NCC: 0.9, SSIM: 0.8, Histogram: 0.5, Edges: 0.75}

	all := Enabled{NCC: true, SSIM: true, Histogram: true, Edges: true}
	require.Equal(t, 3, s.Agreeing(all, 0.70))

	// Disabled measures never count, however high they scored.
	require.Equal(t, 1, s.Agreeing(Enabled{NCC: true, Histogram: true}, 0.70))
}

func TestNewSampleHistogramTotals(t *testing.T) {
	s := NewSample(texturedImage(40))
	for c := 0; c < 3; c++ {
		total := 0
		for bin := 0; bin < 16; bin++ {
			total += s.Hist[c][bin]
		}
		require.Equal(t, 1600, total)
	}
}
