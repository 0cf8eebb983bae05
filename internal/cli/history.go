package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/database"
	"github.com/dandam/gamenight/internal/importer"
	"github.com/dandam/gamenight/internal/logging"
	"github.com/dandam/gamenight/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Log and review play sessions",
}

var historyLogCmd = &cobra.Command{
	Use:   "log <player> <game>",
	Short: "Record that a player played a game",
	Long: `Record a play session. Ratings from 1 to 5 feed the player's
history with that game in future recommendations.

Examples:
  gamenight history log alice_gamer Catan --rating 4.5 --notes "Longest road!"
  gamenight history log bob_plays "Ticket to Ride" --date 2025-06-01`,
	Args: cobra.ExactArgs(2),
	RunE: runHistoryLog,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List play sessions, newest first",
	Long: `List logged play sessions.

Examples:
  gamenight history list                      # Everything
  gamenight history list --player alice_gamer # One player's plays
  gamenight history list --game Catan         # One game's plays
  gamenight history list --since 2w           # Last two weeks`,
	RunE: runHistoryList,
}

var (
	historyRating float64
	historyNotes  string
	historyDate   string

	historyListPlayer string
	historyListGame   string
	historyListSince  string
	historyListLimit  int
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyLogCmd)
	historyCmd.AddCommand(historyListCmd)

	historyLogCmd.Flags().Float64Var(&historyRating, "rating", 0, "Rating from 1 to 5")
	historyLogCmd.Flags().StringVar(&historyNotes, "notes", "", "Notes about the session")
	historyLogCmd.Flags().StringVar(&historyDate, "date", "", "Date played, YYYY-MM-DD (default: now)")

	historyListCmd.Flags().StringVar(&historyListPlayer, "player", "", "Only this player's plays")
	historyListCmd.Flags().StringVar(&historyListGame, "game", "", "Only plays of this game")
	historyListCmd.Flags().StringVar(&historyListSince, "since", "", "Only plays within this period (e.g., 7d, 2w, 1m)")
	historyListCmd.Flags().IntVar(&historyListLimit, "limit", 0, "Maximum number of results")
}

func runHistoryLog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	playedAt := time.Now()
	if historyDate != "" {
		d, err := time.ParseInLocation("2006-01-02", historyDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", historyDate, err)
		}
		playedAt = d
	}

	rec := importer.PlayRecord{
		Player:   args[0],
		Game:     args[1],
		PlayedAt: playedAt,
		Notes:    historyNotes,
	}
	if cmd.Flags().Changed("rating") {
		rec.Rating = &historyRating
	}

	lib := &importer.Library{Plays: []importer.PlayRecord{rec}}
	if err := lib.Validate(); err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// match the game the way 'games show' does so "catan" finds "Catan"
	g, err := findGame(ctx, a.db, args[1])
	if err != nil {
		return err
	}
	lib.Plays[0].Game = g.Name

	if _, err := importer.New(a.db, logging.Logger()).Import(ctx, lib); err != nil {
		return fmt.Errorf("failed to log play: %w", err)
	}

	fmt.Printf("Logged %s playing %s on %s", args[0], g.Name, playedAt.Format("Jan 02, 2006"))
	if rec.Rating != nil {
		fmt.Printf(" (rated %.1f)", *rec.Rating)
	}
	fmt.Println()
	return nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	opts := database.HistoryOptions{Limit: historyListLimit}

	if historyListPlayer != "" {
		c, err := a.concierge()
		if err != nil {
			return err
		}
		players, err := c.ResolvePlayers(ctx, []string{historyListPlayer})
		if err != nil {
			return err
		}
		opts.PlayerID = &players[0].ID
	}

	if historyListGame != "" {
		g, err := findGame(ctx, a.db, historyListGame)
		if err != nil {
			return err
		}
		opts.GameID = &g.ID
	}

	if historyListSince != "" {
		since, err := parseDuration(historyListSince)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		sinceTime := time.Now().Add(-since)
		opts.Since = &sinceTime
	}

	plays, err := a.db.ListPlays(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list plays: %w", err)
	}

	return output.Output(outputFmt, plays)
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value")
	}

	switch unit {
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use d, w, or m)", unit)
	}
}
