package recommend

// Aggregator folds per-player scores into one group score.
//
// A plain mean lets three enthusiasts outvote one player who hates a game.
// The penalized mean subtracts a share (lambda) of the gap between the mean
// and the lowest score:
//
//	group = mean - lambda*(mean - min)
//
// lambda = 0 gives the mean; lambda = 1 gives the minimum, where a single
// unhappy player can veto every game.
type Aggregator struct {
	DissentPenalty float64
	Threshold      float64
}

// NewAggregator creates an Aggregator
func NewAggregator(dissentPenalty, threshold float64) *Aggregator {
	return &Aggregator{DissentPenalty: dissentPenalty, Threshold: threshold}
}

// Aggregate returns the penalized group score, clamped to [0, 1].
// An empty list scores 0.
func (a *Aggregator) Aggregate(scores []float64) float64 {
	group, _, _ := a.aggregate(scores)
	return group
}

// Recommended reports whether a group score clears the threshold
func (a *Aggregator) Recommended(groupScore float64) bool {
	return groupScore >= a.Threshold
}

// aggregate returns (group, mean, min)
func (a *Aggregator) aggregate(scores []float64) (float64, float64, float64) {
	if len(scores) == 0 {
		return 0, 0, 0
	}

	sum := 0.0
	lowest := scores[0]
	for _, s := range scores {
		sum += s
		if s < lowest {
			lowest = s
		}
	}
	mean := sum / float64(len(scores))

	return clamp01(mean - a.DissentPenalty*(mean-lowest)), mean, lowest
}
