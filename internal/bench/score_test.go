package bench

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScorePerfect(t *testing.T) {
	m := Score([]string{"a", "b", "c"}, []string{"c", "a", "b"})
	require.Equal(t, 3, m.TruePositives)
	require.Zero(t, m.FalsePositives)
	require.Zero(t, m.FalseNegatives)
	require.Equal(t, 1.0, m.Precision)
	require.Equal(t, 1.0, m.Recall)
	require.Equal(t, 1.0, m.F1)
	require.Equal(t, 1.0, m.Accuracy)
}

func TestScoreMultiset(t *testing.T) {
	// Two copies expected but one detected: only one counts as a hit.
	m := Score([]string{"a", "a", "b"}, []string{"a", "b", "b"})
	require.Equal(t, 2, m.TruePositives)
	require.Equal(t, 1, m.FalsePositives)
	require.Equal(t, 1, m.FalseNegatives)
	require.InDelta(t, 2.0/3.0, m.Precision, 1e-9)
	require.InDelta(t, 2.0/3.0, m.Recall, 1e-9)
	require.InDelta(t, 2.0/3.0, m.F1, 1e-9)
	require.InDelta(t, 0.5, m.Accuracy, 1e-9)
}

func TestScoreNothingDetected(t *testing.T) {
	m := Score([]string{"a", "b"}, nil)
	require.Zero(t, m.TruePositives)
	require.Equal(t, 2, m.FalseNegatives)
	require.Zero(t, m.Precision)
	require.Zero(t, m.Recall)
	require.Zero(t, m.F1)
}

func TestScoreEmptyBoth(t *testing.T) {
	m := Score(nil, nil)
	require.Zero(t, m.F1)
	require.Zero(t, m.Accuracy)
}

func TestAverage(t *testing.T) {
	avg := Average([]Metrics{
		{Precision: 1.0, Recall: 0.5, F1: 2.0 / 3.0, Accuracy: 0.5, TruePositives: 2, FalseNegatives: 2},
		{Precision: 0.5, Recall: 1.0, F1: 2.0 / 3.0, Accuracy: 0.5, TruePositives: 1, FalsePositives: 1},
	})
	require.InDelta(t, 0.75, avg.Precision, 1e-9)
	require.InDelta(t, 0.75, avg.Recall, 1e-9)
	require.InDelta(t, 2.0/3.0, avg.F1, 1e-9)
	require.Equal(t, 3, avg.TruePositives)
	require.Equal(t, 1, avg.FalsePositives)
	require.Equal(t, 2, avg.FalseNegatives)
}

func TestAverageEmpty(t *testing.T) {
	require.Equal(t, Metrics{}, Average(nil))
}
