package detect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"item-scanner/pkg/geometry"
)

func testNames(id string) string {
	switch id {
	case "iron-sword":
		return "Iron Sword"
	case "ash-totem":
		return "Ash Totem"
	default:
		return id
	}
}

func matched(slot int, id string, conf float64) Detection {
	return Detection{
		SlotIndex:  slot,
		State:      SlotMatched,
		EntityID:   id,
		Confidence: conf,
		Count:      1,
		Box:        geometry.NewRectInt(slot*70, 0, 58, 58),
	}
}

func TestAggregateGroupsRepeats(t *testing.T) {
	detections := []Detection{
		matched(0, "iron-sword", 0.90),
		matched(1, "iron-sword", 0.95),
		matched(2, "iron-sword", 0.80),
		matched(3, "ash-totem", 0.71),
	}

	aggs := Aggregate(detections, testNames)
	require.Len(t, aggs, 2)

	// Sorted by display name: Ash Totem before Iron Sword.
	require.Equal(t, "ash-totem", aggs[0].EntityID)
	require.Equal(t, 1, aggs[0].Count)

	sword := aggs[1]
	require.Equal(t, "Iron Sword", sword.Name)
	require.Equal(t, 3, sword.Count)
	require.Equal(t, 0.95, sword.MaxConfidence)
	require.Len(t, sword.Positions, 3)
}

func TestAggregateSkipsNonMatches(t *testing.T) {
	detections := []Detection{
		matched(0, "iron-sword", 0.90),
		{SlotIndex: 1, State: SlotEmpty},
		{SlotIndex: 2, State: SlotUnmatched, BestEntity: "Ash Totem", BestScore: 0.55},
	}

	aggs := Aggregate(detections, testNames)
	require.Len(t, aggs, 1)
	require.Equal(t, "iron-sword", aggs[0].EntityID)
	require.Equal(t, 1, TotalCount(aggs))
}

func TestAggregateSumsStackCounts(t *testing.T) {
	a := matched(0, "iron-sword", 0.90)
	a.Count = 5
	b := matched(1, "iron-sword", 0.85)
	b.Count = 2

	aggs := Aggregate([]Detection{a, b}, testNames)
	require.Len(t, aggs, 1)
	require.Equal(t, 7, aggs[0].Count)
	require.Equal(t, 7, TotalCount(aggs))
}

func TestAggregateZeroCountReadsAsOne(t *testing.T) {
	d := matched(0, "iron-sword", 0.90)
	d.Count = 0

	aggs := Aggregate([]Detection{d}, testNames)
	require.Equal(t, 1, aggs[0].Count)
}

func TestMergeIdempotent(t *testing.T) {
	aggs := Aggregate([]Detection{
		matched(0, "iron-sword", 0.90),
		matched(1, "iron-sword", 0.95),
		matched(2, "ash-totem", 0.70),
	}, testNames)

	again := Merge(aggs)
	require.Equal(t, aggs, again)
	require.Equal(t, TotalCount(aggs), TotalCount(again))
}

func TestMergeDoesNotAliasPositions(t *testing.T) {
	in := []AggregatedDetection{{
		EntityID:  "iron-sword",
		Name:      "Iron Sword",
		Count:     1,
		Positions: []geometry.RectInt{geometry.NewRectInt(0, 0, 58, 58)},
	}}

	out := Merge(in)
	out[0].Positions[0].X = 999
	require.Zero(t, in[0].Positions[0].X)
}
