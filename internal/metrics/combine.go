package metrics

// Weights holds the combination weight of each measure. Weights are
// renormalized over the enabled subset at scoring time, so the combined
// score stays in [0, 1] regardless of which measures are switched on.
type Weights struct {
	NCC       float64
	SSIM      float64
	Histogram float64
	Edges     float64
}

// DefaultWeights returns the tuned combination weights. The edge measure
// carries its own share; when it is disabled the remaining three renormalize
// back to their published 0.25 / 0.40 / 0.35 split.
func DefaultWeights() Weights {
	return Weights{
		NCC:       0.25,
		SSIM:      0.40,
		Histogram: 0.35,
		Edges:     0.15,
	}
}

// Enabled selects which measures participate in a comparison.
type Enabled struct {
	NCC       bool
	SSIM      bool
	Histogram bool
	Edges     bool
}

// Any returns true if at least one measure is enabled.
func (e Enabled) Any() bool {
	return e.NCC || e.SSIM || e.Histogram || e.Edges
}

// Scores carries the individual measure results and their combination for
// one crop/template comparison.
type Scores struct {
	NCC       float64
	SSIM      float64
	Histogram float64
	Edges     float64
	Combined  float64
}

// Agreeing returns how many enabled measures scored above the given level.
func (s Scores) Agreeing(e Enabled, level float64) int {
	n := 0
	if e.NCC && s.NCC > level {
		n++
	}
	if e.SSIM && s.SSIM > level {
		n++
	}
	if e.Histogram && s.Histogram > level {
		n++
	}
	if e.Edges && s.Edges > level {
		n++
	}
	return n
}

// Score runs the enabled measures on a crop/template pair and combines them
// by weighted sum, with weights renormalized over the enabled subset. With
// no measures enabled (or degenerate input) every field is 0.
func Score(a, b *Sample, e Enabled, w Weights) Scores {
	var s Scores
	if !comparable(a, b) || !e.Any() {
		return s
	}

	total := 0.0
	if e.NCC {
		s.NCC = NCC(a, b)
		s.Combined += w.NCC * s.NCC
		total += w.NCC
	}
	if e.SSIM {
		s.SSIM = SSIM(a, b)
		s.Combined += w.SSIM * s.SSIM
		total += w.SSIM
	}
	if e.Histogram {
		s.Histogram = HistogramIntersection(a, b)
		s.Combined += w.Histogram * s.Histogram
		total += w.Histogram
	}
	if e.Edges {
		s.Edges = EdgeCorrelation(a, b)
		s.Combined += w.Edges * s.Edges
		total += w.Edges
	}

	if total <= 0 {
		s.Combined = 0
		return s
	}
	s.Combined = clamp01(s.Combined / total)
	return s
}
