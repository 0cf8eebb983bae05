package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/dandam/gamenight/internal/concierge"
	"github.com/dandam/gamenight/internal/database"
	"github.com/dandam/gamenight/internal/importer"
	"github.com/dandam/gamenight/internal/recommend"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *concierge.Report:
		return Recommendations(w, v, false)
	case []database.Game:
		return gamesTable(w, v)
	case *database.Game:
		return gameDetail(w, v)
	case []database.Player:
		return playersTable(w, v)
	case *concierge.Profile:
		return profileDetail(w, v)
	case []database.Play:
		return playsTable(w, v)
	case *database.Stats:
		return statsTable(w, v)
	case *importer.Summary:
		return importSummary(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

// Recommendations renders a ranked report. With explain set, each game is
// followed by the per-player breakdown.
func Recommendations(w io.Writer, r *concierge.Report, explain bool) error {
	res := r.Result
	t := NewTerminal(w)

	switch res.Outcome {
	case recommend.OutcomeEmptyCatalog:
		fmt.Fprintln(w, "Your library is empty. Add games with 'gamenight games add' or 'gamenight seed'.")
		return nil
	case recommend.OutcomeNoGamesFitGroup:
		fmt.Fprintf(w, "No games in your library fit %d players.\n", res.PlayerCount)
		return nil
	case recommend.OutcomeNoGamesFitTime:
		fmt.Fprintf(w, "No games in your library fit %d players within the time budget.\n", res.PlayerCount)
		return nil
	}

	names := make([]string, len(r.Players))
	for i, p := range r.Players {
		names[i] = p.DisplayName
	}
	fmt.Fprintf(w, "Games for %s (%d players)\n\n", strings.Join(names, ", "), res.PlayerCount)

	table := tablewriter.NewWriter(w)
	table.Header("#", "Game", "Players", "Time", "Weight", "Score", "Mean", "Min", "")

	for i, rec := range res.Recommendations {
		players, playTime, weight := "", "", ""
		if g, ok := r.Game(rec.GameID); ok {
			players = playerRange(g.MinPlayers, g.MaxPlayers)
			playTime = fmt.Sprintf("%dm", g.AveragePlayTime)
			weight = fmt.Sprintf("%.1f", g.ComplexityRating)
		}

		mark := ""
		if rec.Recommended {
			mark = t.Color(ColorGreen, "*")
		}

		if err := table.Append(
			strconv.Itoa(i+1),
			truncate(rec.GameName, 30),
			players,
			playTime,
			weight,
			t.Color(ScoreColor(rec.GroupScore, r.Threshold), formatScore(rec.GroupScore)),
			formatScore(rec.MeanScore),
			formatScore(rec.MinScore),
			mark,
		); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d of %d candidates recommended (threshold %.2f)", res.RecommendedCount(), res.CandidateCount, r.Threshold)
	if res.EliminatedByPlayerCount > 0 || res.EliminatedByTime > 0 {
		fmt.Fprintf(w, "; %d excluded by player count, %d by time", res.EliminatedByPlayerCount, res.EliminatedByTime)
	}
	fmt.Fprintln(w)

	if res.Outcome == recommend.OutcomeNoneAboveThreshold {
		fmt.Fprintln(w, t.Color(ColorYellow, "No game reached the threshold; showing the closest matches."))
	}

	if explain {
		return breakdowns(w, r)
	}
	return nil
}

func breakdowns(w io.Writer, r *concierge.Report) error {
	t := NewTerminal(w)
	width := t.Width(100)

	for i, rec := range r.Result.Recommendations {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d. %s  %s\n", i+1, rec.GameName, t.Color(ScoreColor(rec.GroupScore, r.Threshold), formatScore(rec.GroupScore)))

		if len(rec.Breakdowns) == 0 {
			fmt.Fprintln(w, "   (no breakdown retained)")
			continue
		}

		table := tablewriter.NewWriter(w)
		table.Header("Player", "Time", "Weight", "Category", "History", "Plays", "Score")
		for _, b := range rec.Breakdowns {
			if err := table.Append(
				r.DisplayName(b.PlayerID),
				formatScore(b.TimeFit),
				formatScore(b.ComplexityFit),
				formatScore(b.CategoryFit),
				formatScore(b.HistoricalAffinity),
				strconv.Itoa(b.PlayCount),
				formatScore(b.PlayerScore),
			); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}

		for _, b := range rec.Breakdowns {
			line := fmt.Sprintf("%s: %s", r.DisplayName(b.PlayerID), r.Explain(b))
			fmt.Fprintln(w, indent(wordWrap(line, width-4), "   "))
		}
	}
	return nil
}

func gamesTable(w io.Writer, games []database.Game) error {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Players", "Time", "Weight", "Categories")
	for _, g := range games {
		if err := table.Append(
			truncate(g.Name, 30),
			g.PlayerRange(),
			fmt.Sprintf("%dm", g.AveragePlayTime),
			fmt.Sprintf("%.1f", g.ComplexityRating),
			truncate(strings.Join(g.Categories, ", "), 40),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

func gameDetail(w io.Writer, g *database.Game) error {
	fmt.Fprintf(w, "Name:        %s\n", g.Name)
	fmt.Fprintf(w, "Players:     %s\n", g.PlayerRange())
	fmt.Fprintf(w, "Play time:   %d minutes\n", g.AveragePlayTime)
	fmt.Fprintf(w, "Complexity:  %.1f / 5\n", g.ComplexityRating)
	if len(g.Categories) > 0 {
		fmt.Fprintf(w, "Categories:  %s\n", strings.Join(g.Categories, ", "))
	}
	fmt.Fprintf(w, "Added:       %s\n", g.CreatedAt.Format("Jan 02, 2006"))
	fmt.Fprintf(w, "ID:          %s\n", g.ID)

	if g.Description != nil && *g.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, wordWrap(*g.Description, 78))
	}
	return nil
}

func playersTable(w io.Writer, players []database.Player) error {
	if len(players) == 0 {
		fmt.Fprintln(w, "No players found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Username", "Display Name", "Joined")
	for _, p := range players {
		if err := table.Append(p.Username, p.DisplayName, p.CreatedAt.Format("Jan 02, 2006")); err != nil {
			return err
		}
	}
	return table.Render()
}

func profileDetail(w io.Writer, p *concierge.Profile) error {
	fmt.Fprintf(w, "Player:      %s (%s)\n", p.Player.DisplayName, p.Player.Username)
	fmt.Fprintf(w, "Plays:       %d\n", p.TotalPlays)
	if p.AverageRating != nil {
		fmt.Fprintf(w, "Avg rating:  %.1f\n", *p.AverageRating)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preferences:")
	if p.Preferences == nil {
		fmt.Fprintln(w, "  (none set)")
	} else {
		prefs := p.Preferences
		fmt.Fprintf(w, "  Play time:     %s\n", formatRange(intToFloat(prefs.MinPlayTime), intToFloat(prefs.MaxPlayTime), "%.0f min"))
		fmt.Fprintf(w, "  Complexity:    %s\n", formatRange(prefs.ComplexityMin, prefs.ComplexityMax, "%.1f"))
		if prefs.PreferredPlayerCount != nil {
			fmt.Fprintf(w, "  Player count:  %d\n", *prefs.PreferredPlayerCount)
		} else {
			fmt.Fprintln(w, "  Player count:  any")
		}
		if len(prefs.Categories) > 0 {
			fmt.Fprintf(w, "  Categories:    %s\n", strings.Join(prefs.Categories, ", "))
		} else {
			fmt.Fprintln(w, "  Categories:    any")
		}
	}

	if len(p.RecentPlays) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recent plays:")
		return playsTable(w, p.RecentPlays)
	}
	return nil
}

func playsTable(w io.Writer, plays []database.Play) error {
	if len(plays) == 0 {
		fmt.Fprintln(w, "No plays found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Date", "Game", "Rating", "Notes")
	for _, p := range plays {
		rating := "-"
		if p.Rating != nil {
			rating = fmt.Sprintf("%.1f", *p.Rating)
		}
		notes := ""
		if p.Notes != nil {
			notes = truncate(*p.Notes, 40)
		}
		if err := table.Append(p.PlayedAt.Format("2006-01-02"), truncate(p.GameName, 30), rating, notes); err != nil {
			return err
		}
	}
	return table.Render()
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Game Library Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Games:                  %d\n", s.TotalGames)
	fmt.Fprintf(w, "Categories:             %d\n", s.CategoriesInLibrary)
	fmt.Fprintf(w, "Players:                %d\n", s.TotalPlayers)
	fmt.Fprintf(w, "With preferences:       %d\n", s.PlayersWithPrefs)
	fmt.Fprintf(w, "Plays logged:           %d\n", s.TotalPlays)
	fmt.Fprintf(w, "Rated plays:            %d\n", s.RatedPlays)

	if s.AverageRating > 0 {
		fmt.Fprintf(w, "Avg rating:             %.1f\n", s.AverageRating)
	}
	if s.AverageComplexity > 0 {
		fmt.Fprintf(w, "Avg complexity:         %.1f\n", s.AverageComplexity)
	}
	if s.LastPlayedAt != nil {
		fmt.Fprintf(w, "Last game night:        %s\n", s.LastPlayedAt.Format("Jan 02, 2006"))
	}

	if len(s.MostPlayed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Most played:")
		for _, gc := range s.MostPlayed {
			fmt.Fprintf(w, "  %-28s %d\n", truncate(gc.Name, 28), gc.Plays)
		}
	}

	return nil
}

func importSummary(w io.Writer, s *importer.Summary) error {
	fmt.Fprintf(w, "Games:        %d created, %d updated\n", s.GamesCreated, s.GamesUpdated)
	fmt.Fprintf(w, "Players:      %d created, %d updated\n", s.PlayersCreated, s.PlayersUpdated)
	fmt.Fprintf(w, "Preferences:  %d saved\n", s.Preferences)
	fmt.Fprintf(w, "Plays:        %d logged\n", s.Plays)
	return nil
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func playerRange(lo, hi int) string {
	if lo == hi {
		return strconv.Itoa(lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

func formatRange(lo, hi *float64, format string) string {
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf(format+" - "+format, *lo, *hi)
	case lo != nil:
		return "at least " + fmt.Sprintf(format, *lo)
	case hi != nil:
		return "at most " + fmt.Sprintf(format, *hi)
	default:
		return "any"
	}
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n < 4 {
		return string(runes[:max(n, 0)])
	}
	return string(runes[:n-3]) + "..."
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wordWrap wraps text at the specified width
func wordWrap(text string, width int) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if len(line) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if len(currentLine)+1+len(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
		result.WriteString("\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}
