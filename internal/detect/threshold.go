package detect

import "sort"

// Hand-tuned threshold selection constants. They were arrived at
// empirically against the labeled corpus and are kept verbatim for
// compatibility with recorded benchmark history.
const (
	// minScoreGap is the smallest gap between consecutive sorted scores
	// that counts as a real separation between matches and noise.
	minScoreGap = 0.05

	// Gap-derived thresholds are clamped to this band.
	gapClampLow  = 0.60
	gapClampHigh = 0.90

	// Percentile-fallback thresholds are clamped to this band.
	percentileClampLow  = 0.65
	percentileClampHigh = 0.85

	// percentileRank is the rank used by the fallback policy.
	percentileRank = 0.75
)

// AdaptiveThreshold derives a match threshold from the best per-slot scores
// of one run. It finds the largest gap between consecutive sorted scores;
// if that gap is at least minScoreGap the threshold is set just above the
// lower side of the gap. Otherwise it falls back to a percentile of the
// scores. Both policies clamp to their sane band.
func AdaptiveThreshold(scores []float64) float64 {
	if len(scores) < 2 {
		return percentileClampLow
	}

	sorted := append([]float64(nil), scores...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	bestGap := 0.0
	bestLower := 0.0
	for i := 0; i < len(sorted)-1; i++ {
		gap := sorted[i] - sorted[i+1]
		if gap > bestGap {
			bestGap = gap
			bestLower = sorted[i+1]
		}
	}

	if bestGap >= minScoreGap {
		return clampBand(bestLower+0.01, gapClampLow, gapClampHigh)
	}

	// No clear separation; cut at a fixed percentile of the score range.
	idx := int(float64(len(sorted)) * (1 - percentileRank))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return clampBand(sorted[idx], percentileClampLow, percentileClampHigh)
}

func clampBand(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
