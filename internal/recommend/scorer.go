package recommend

import (
	"fmt"
	"strings"
)

// ScorerConfig configures per-player scoring
type ScorerConfig struct {
	HistoryWeight float64 // Share of the score taken by historical affinity
}

// Scorer computes one player's compatibility with one game
type Scorer struct {
	config ScorerConfig
}

// NewScorer creates a new Scorer with the given configuration
func NewScorer(config ScorerConfig) *Scorer {
	return &Scorer{config: config}
}

// Score builds the full breakdown for a (player, game) pair
func (s *Scorer) Score(g Game, prefs NormalizedPreferences, affinity Affinity) ScoreBreakdown {
	b := ScoreBreakdown{
		PlayerID:           prefs.PlayerID,
		HistoricalAffinity: affinity.Value,
		PlayCount:          affinity.PlayCount,
		Details:            make(map[string]FitStatus, 5),
	}

	b.PlayerCountFit, b.Details[FactorPlayerCount] = playerCountFit(g, prefs.PreferredPlayerCount)
	b.TimeFit, b.Details[FactorPlayTime] = rangeFit(prefs.PlayTime, float64(g.AveragePlayTime))
	b.ComplexityFit, b.Details[FactorComplexity] = rangeFit(prefs.Complexity, g.ComplexityRating)
	b.CategoryFit, b.Details[FactorCategories] = categoryFit(g, prefs)

	switch {
	case !affinity.HasSignal():
		b.Details[FactorHistory] = FitNoPreference
	case affinity.Value >= NeutralScore:
		b.Details[FactorHistory] = FitCompatible
	default:
		b.Details[FactorHistory] = FitIncompatible
	}

	b.PlayerScore = s.Combine(b.HistoricalAffinity, b.TimeFit, b.ComplexityFit, b.CategoryFit)
	return b
}

// Combine weighs historical affinity against the mean of the preference fits.
// It is non-decreasing in every argument.
func (s *Scorer) Combine(affinity, timeFit, complexityFit, categoryFit float64) float64 {
	w := s.config.HistoryWeight
	prefMean := (timeFit + complexityFit + categoryFit) / 3
	return clamp01(w*affinity + (1-w)*prefMean)
}

// Explain returns a human-readable summary of a breakdown
func (s *Scorer) Explain(b ScoreBreakdown) string {
	var parts []string
	for _, f := range []string{FactorPlayTime, FactorComplexity, FactorCategories, FactorHistory} {
		status, ok := b.Details[f]
		if !ok || status == FitNoPreference {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", strings.ReplaceAll(f, "_", " "), status))
	}
	if len(parts) == 0 {
		return "no preferences or history - neutral"
	}
	return strings.Join(parts, ", ")
}

// rangeFit scores v against optional bounds: 0.5 unless both bounds are set
func rangeFit(b Bounds, v float64) (float64, FitStatus) {
	if !b.FullySpecified() {
		return NeutralScore, FitNoPreference
	}
	if b.Contains(v) {
		return 1.0, FitCompatible
	}
	return 0.0, FitIncompatible
}

func categoryFit(g Game, prefs NormalizedPreferences) (float64, FitStatus) {
	if len(prefs.Categories) == 0 {
		return NeutralScore, FitNoPreference
	}
	for _, c := range g.Categories {
		if prefs.HasCategory(c) {
			return 1.0, FitCompatible
		}
	}
	return 0.0, FitIncompatible
}

// playerCountFit is informational; the group filter already decided seating
func playerCountFit(g Game, preferred *int) (float64, FitStatus) {
	if preferred == nil {
		return NeutralScore, FitNoPreference
	}
	if g.Seats(*preferred) {
		return 1.0, FitCompatible
	}
	return 0.0, FitIncompatible
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
