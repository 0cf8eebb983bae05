package recommend

// Seats reports whether the game supports exactly n players
func (g Game) Seats(n int) bool {
	return g.MinPlayers <= n && n <= g.MaxPlayers
}

// FitsIn reports whether the game's average length is within budget minutes
func (g Game) FitsIn(budget int) bool {
	return g.AveragePlayTime <= budget
}

// FilterByPlayerCount keeps the games that seat n players and returns them
// along with the number eliminated. Order is preserved.
func FilterByPlayerCount(n int, games []Game) ([]Game, int) {
	return filterGames(games, func(g Game) bool { return g.Seats(n) })
}

// FilterByTimeBudget keeps the games whose average play time fits the budget
func FilterByTimeBudget(budget int, games []Game) ([]Game, int) {
	return filterGames(games, func(g Game) bool { return g.FitsIn(budget) })
}

func filterGames(games []Game, keep func(Game) bool) ([]Game, int) {
	kept := make([]Game, 0, len(games))
	for _, g := range games {
		if keep(g) {
			kept = append(kept, g)
		}
	}
	return kept, len(games) - len(kept)
}
