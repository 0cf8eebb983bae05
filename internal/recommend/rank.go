package recommend

import "sort"

// ScoreTolerance is the distance under which two group scores tie
const ScoreTolerance = 1e-9

// Rank orders recommendations by group score, highest first, and truncates to
// topN (0 = all). Ties are broken by lower complexity, then by overlap with the
// group's preferred categories, then by name, then by ID. games must contain
// every recommended game. The input slice is not modified.
func Rank(recs []GroupRecommendation, games map[string]Game, preferred map[string]struct{}, topN int) []GroupRecommendation {
	type ranked struct {
		rec     GroupRecommendation
		game    Game
		overlap int
	}

	items := make([]ranked, len(recs))
	for i, r := range recs {
		g := games[r.GameID]
		items[i] = ranked{rec: r, game: g, overlap: categoryOverlap(g, preferred)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if diff := a.rec.GroupScore - b.rec.GroupScore; diff > ScoreTolerance || diff < -ScoreTolerance {
			return diff > 0
		}
		if a.game.ComplexityRating != b.game.ComplexityRating {
			return a.game.ComplexityRating < b.game.ComplexityRating
		}
		if a.overlap != b.overlap {
			return a.overlap > b.overlap
		}
		if a.game.Name != b.game.Name {
			return a.game.Name < b.game.Name
		}
		return a.rec.GameID < b.rec.GameID
	})

	if topN > 0 && topN < len(items) {
		items = items[:topN]
	}

	out := make([]GroupRecommendation, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}

// PreferredUnion collects every category any of the players prefers
func PreferredUnion(prefs []NormalizedPreferences) map[string]struct{} {
	union := make(map[string]struct{})
	for _, p := range prefs {
		for c := range p.Categories {
			union[c] = struct{}{}
		}
	}
	return union
}

// categoryOverlap counts distinct game categories in the preferred set
func categoryOverlap(g Game, preferred map[string]struct{}) int {
	seen := make(map[string]struct{}, len(g.Categories))
	n := 0
	for _, c := range g.Categories {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if _, ok := preferred[c]; ok {
			n++
		}
	}
	return n
}
