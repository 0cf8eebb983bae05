package recommend

import (
	"math"
	"time"
)

// Ratings live on a 1-5 scale
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// NeutralScore is used for any factor with no data behind it
const NeutralScore = 0.5

// Affinity is a player's historical affinity for one game
type Affinity struct {
	Value     float64 // in [0, 1]
	PlayCount int     // entries for this (player, game), rated or not
	Rated     int     // entries that contributed to Value
	Discarded int     // entries with an out-of-range rating
}

// HasSignal reports whether any rating contributed to the value
func (a Affinity) HasSignal() bool {
	return a.Rated > 0
}

// CalculateAffinity derives affinity from the player's play history.
//
// Entries belonging to other players or games are ignored. Ratings outside
// [1, 5] are discarded rather than reported. With no usable rating the result
// is neutral. now is accepted so recency weighting can be added later; it is
// not used yet.
func CalculateAffinity(playerID, gameID string, entries []HistoryEntry, now time.Time) Affinity {
	_ = now

	a := Affinity{Value: NeutralScore}
	var sum float64

	for _, e := range entries {
		if e.PlayerID != playerID || e.GameID != gameID {
			continue
		}
		a.PlayCount++

		if e.Rating == nil {
			continue
		}
		r := *e.Rating
		if math.IsNaN(r) || r < MinRating || r > MaxRating {
			a.Discarded++
			continue
		}
		sum += (r - MinRating) / (MaxRating - MinRating)
		a.Rated++
	}

	if a.Rated > 0 {
		a.Value = clamp01(sum / float64(a.Rated))
	}
	return a
}
