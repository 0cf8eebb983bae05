package recommend

import "testing"

func TestRank_TieBreaks(t *testing.T) {
	games := map[string]Game{
		"heavy":  {ID: "heavy", Name: "Heavy", ComplexityRating: 4.0, Categories: []string{"Strategy"}},
		"light":  {ID: "light", Name: "Light", ComplexityRating: 1.5},
		"zebra":  {ID: "zebra", Name: "Zebra", ComplexityRating: 2.0, Categories: []string{"Party", "Family"}},
		"apple":  {ID: "apple", Name: "Apple", ComplexityRating: 2.0, Categories: []string{"Party"}},
		"banana": {ID: "banana", Name: "Banana", ComplexityRating: 2.0, Categories: []string{"Party"}},
		"best":   {ID: "best", Name: "Best", ComplexityRating: 5.0},
	}
	preferred := map[string]struct{}{"Party": {}, "Family": {}}

	recs := []GroupRecommendation{
		{GameID: "heavy", GroupScore: 0.7},
		{GameID: "banana", GroupScore: 0.7},
		{GameID: "light", GroupScore: 0.7 + 1e-12},
		{GameID: "zebra", GroupScore: 0.7},
		{GameID: "best", GroupScore: 0.9},
		{GameID: "apple", GroupScore: 0.7},
	}

	got := Rank(recs, games, preferred, 0)
	want := []string{"best", "light", "zebra", "apple", "banana", "heavy"}

	if len(got) != len(want) {
		t.Fatalf("Rank() returned %d items, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].GameID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].GameID, id)
		}
	}

	if recs[0].GameID != "heavy" {
		t.Error("Rank() modified its input")
	}
}

func TestRank_SameNameFallsBackToID(t *testing.T) {
	games := map[string]Game{
		"b": {ID: "b", Name: "Catan", ComplexityRating: 2.3},
		"a": {ID: "a", Name: "Catan", ComplexityRating: 2.3},
	}
	recs := []GroupRecommendation{{GameID: "b", GroupScore: 0.5}, {GameID: "a", GroupScore: 0.5}}

	got := Rank(recs, games, nil, 0)
	if got[0].GameID != "a" || got[1].GameID != "b" {
		t.Errorf("Rank() = [%s %s], want [a b]", got[0].GameID, got[1].GameID)
	}
}

func TestRank_TopN(t *testing.T) {
	games := make(map[string]Game)
	var recs []GroupRecommendation
	for i, g := range sampleCatalog() {
		games[g.ID] = g
		recs = append(recs, GroupRecommendation{GameID: g.ID, GroupScore: float64(i) / 10})
	}

	tests := []struct {
		topN int
		want int
	}{
		{0, 4},
		{2, 2},
		{10, 4},
	}

	for _, tt := range tests {
		if got := Rank(recs, games, nil, tt.topN); len(got) != tt.want {
			t.Errorf("Rank(topN=%d) returned %d, want %d", tt.topN, len(got), tt.want)
		}
	}
}

func TestPreferredUnion(t *testing.T) {
	prefs := []NormalizedPreferences{
		NormalizePreferences(&PlayerPreferences{PreferredCategories: []string{"Strategy"}}),
		NormalizePreferences(nil),
		NormalizePreferences(&PlayerPreferences{PreferredCategories: []string{"Party", "Strategy"}}),
	}

	union := PreferredUnion(prefs)
	if len(union) != 2 {
		t.Errorf("PreferredUnion() has %d categories, want 2", len(union))
	}
}

func TestCategoryOverlap_CountsDistinct(t *testing.T) {
	g := Game{Categories: []string{"Party", "Party", "Family", "Strategy"}}
	preferred := map[string]struct{}{"Party": {}, "Family": {}}

	if got := categoryOverlap(g, preferred); got != 2 {
		t.Errorf("categoryOverlap() = %d, want 2", got)
	}
}
