package recommend

import (
	"math"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

var testNow = time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

func play(player, game string, rating *float64) HistoryEntry {
	return HistoryEntry{PlayerID: player, GameID: game, PlayedAt: testNow.AddDate(0, 0, -7), Rating: rating}
}

func sampleCatalog() []Game {
	return []Game{
		{ID: "catan", Name: "Catan", MinPlayers: 3, MaxPlayers: 4, AveragePlayTime: 90, ComplexityRating: 2.3, Categories: []string{"Strategy", "Economic"}},
		{ID: "pandemic", Name: "Pandemic", MinPlayers: 2, MaxPlayers: 4, AveragePlayTime: 45, ComplexityRating: 2.4, Categories: []string{"Cooperative", "Strategy"}},
		{ID: "7wonders", Name: "7 Wonders", MinPlayers: 2, MaxPlayers: 7, AveragePlayTime: 30, ComplexityRating: 2.3, Categories: []string{"Card Game", "Strategy"}},
		{ID: "ttr", Name: "Ticket to Ride", MinPlayers: 2, MaxPlayers: 5, AveragePlayTime: 60, ComplexityRating: 1.9, Categories: []string{"Strategy", "Family"}},
	}
}
