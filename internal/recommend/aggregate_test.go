package recommend

import "testing"

func TestAggregator_PenaltyBounds(t *testing.T) {
	lists := [][]float64{
		{0.5},
		{0.9, 0.9, 0.9, 0.1},
		{0, 1},
		{0.25, 0.75, 0.6},
		{1, 1, 1},
	}

	for _, scores := range lists {
		mean, lowest := 0.0, scores[0]
		for _, s := range scores {
			mean += s
			if s < lowest {
				lowest = s
			}
		}
		mean /= float64(len(scores))

		if got := NewAggregator(0, 0.6).Aggregate(scores); !approxEqual(got, mean) {
			t.Errorf("lambda=0 Aggregate(%v) = %v, want mean %v", scores, got, mean)
		}
		if got := NewAggregator(1, 0.6).Aggregate(scores); !approxEqual(got, lowest) {
			t.Errorf("lambda=1 Aggregate(%v) = %v, want min %v", scores, got, lowest)
		}
	}
}

func TestAggregator_PenalizedMean(t *testing.T) {
	a := NewAggregator(0.5, 0.6)

	// three fans and one player who hates it
	got := a.Aggregate([]float64{0.9, 0.9, 0.9, 0.1})
	// mean 0.7, min 0.1 -> 0.7 - 0.5*0.6 = 0.4
	assertFloat(t, "group score", got, 0.4)

	if a.Recommended(got) {
		t.Error("expected vetoed game not to be recommended")
	}
	if !a.Recommended(0.6) {
		t.Error("expected threshold to be inclusive")
	}
}

func TestAggregator_Empty(t *testing.T) {
	if got := NewAggregator(0.5, 0.6).Aggregate(nil); got != 0 {
		t.Errorf("Aggregate(nil) = %v, want 0", got)
	}
}

func TestAggregator_Clamped(t *testing.T) {
	for _, lambda := range []float64{0, 0.5, 1} {
		got := NewAggregator(lambda, 0.6).Aggregate([]float64{0, 0, 1, 1})
		if got < 0 || got > 1 {
			t.Errorf("lambda=%v Aggregate() = %v, outside [0, 1]", lambda, got)
		}
	}
}
