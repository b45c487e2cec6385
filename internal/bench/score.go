package bench

import "gonum.org/v1/gonum/stat"

// Metrics holds accuracy measurements for one image or one averaged run.
type Metrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Accuracy  float64 `json:"accuracy"`

	TruePositives  int `json:"tp,omitempty"`
	FalsePositives int `json:"fp,omitempty"`
	FalseNegatives int `json:"fn,omitempty"`
}

// Score compares detected entity ids against the expected list as
// multisets: an image labeled with three copies of an item needs three
// detections of it for full recall.
func Score(expected, detected []string) Metrics {
	expCounts := counted(expected)
	detCounts := counted(detected)

	tp := 0
	for id, want := range expCounts {
		got := detCounts[id]
		if got < want {
			tp += got
		} else {
			tp += want
		}
	}
	fp := len(detected) - tp
	fn := len(expected) - tp

	m := Metrics{TruePositives: tp, FalsePositives: fp, FalseNegatives: fn}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	if tp+fp+fn > 0 {
		m.Accuracy = float64(tp) / float64(tp+fp+fn)
	}
	return m
}

// Average computes the unweighted mean of per-image metrics. The counters
// are summed rather than averaged.
func Average(perImage []Metrics) Metrics {
	if len(perImage) == 0 {
		return Metrics{}
	}

	n := len(perImage)
	precision := make([]float64, n)
	recall := make([]float64, n)
	f1 := make([]float64, n)
	accuracy := make([]float64, n)

	var avg Metrics
	for i, m := range perImage {
		precision[i] = m.Precision
		recall[i] = m.Recall
		f1[i] = m.F1
		accuracy[i] = m.Accuracy
		avg.TruePositives += m.TruePositives
		avg.FalsePositives += m.FalsePositives
		avg.FalseNegatives += m.FalseNegatives
	}

	avg.Precision = stat.Mean(precision, nil)
	avg.Recall = stat.Mean(recall, nil)
	avg.F1 = stat.Mean(f1, nil)
	avg.Accuracy = stat.Mean(accuracy, nil)
	return avg
}

func counted(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for _, id := range ids {
		m[id]++
	}
	return m
}
