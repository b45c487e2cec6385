package detect

import (
	"sort"
	"strings"

	"item-scanner/pkg/geometry"
)

// AggregatedDetection merges every matched slot of one entity into a single
// counted result.
type AggregatedDetection struct {
	EntityID      string             `json:"entity_id"`
	Name          string             `json:"name"`
	Count         int                `json:"count"`
	MaxConfidence float64            `json:"max_confidence"`
	Positions     []geometry.RectInt `json:"positions"`
}

// Aggregate groups matched detections by entity id, sums their counts and
// keeps the maximum confidence seen in each group. A single strong match
// should not be diluted by weaker repeats, so the maximum is reported
// rather than the average. Output is sorted by display name.
func Aggregate(detections []Detection, nameOf func(id string) string) []AggregatedDetection {
	singles := make([]AggregatedDetection, 0, len(detections))
	for _, d := range detections {
		if d.State != SlotMatched || d.EntityID == "" {
			continue
		}
		count := d.Count
		if count <= 0 {
			count = 1
		}
		singles = append(singles, AggregatedDetection{
			EntityID:      d.EntityID,
			Name:          nameOf(d.EntityID),
			Count:         count,
			MaxConfidence: d.Confidence,
			Positions:     []geometry.RectInt{d.Box},
		})
	}
	return Merge(singles)
}

// Merge combines aggregated detections that share an entity id, summing
// counts and keeping the maximum confidence. Merge is idempotent: merging
// an already-merged list returns the same totals.
func Merge(aggs []AggregatedDetection) []AggregatedDetection {
	byID := make(map[string]*AggregatedDetection)
	order := make([]string, 0, len(aggs))

	for _, a := range aggs {
		existing, ok := byID[a.EntityID]
		if !ok {
			copied := a
			copied.Positions = append([]geometry.RectInt(nil), a.Positions...)
			byID[a.EntityID] = &copied
			order = append(order, a.EntityID)
			continue
		}
		existing.Count += a.Count
		if a.MaxConfidence > existing.MaxConfidence {
			existing.MaxConfidence = a.MaxConfidence
		}
		existing.Positions = append(existing.Positions, a.Positions...)
	}

	out := make([]AggregatedDetection, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.Slice(out, func(i, j int) bool {
		ni := strings.ToLower(out[i].Name)
		nj := strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].EntityID < out[j].EntityID
	})
	return out
}

// TotalCount returns the summed count across aggregated detections. It
// always equals the number of matched slots when no stack counts are read.
func TotalCount(aggs []AggregatedDetection) int {
	total := 0
	for _, a := range aggs {
		total += a.Count
	}
	return total
}
