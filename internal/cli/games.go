package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/database"
	"github.com/dandam/gamenight/internal/importer"
	"github.com/dandam/gamenight/internal/logging"
	"github.com/dandam/gamenight/internal/output"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage the game library",
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List games",
	Long: `List games in the library with optional filters.

Examples:
  gamenight games list                       # Every game
  gamenight games list --players 5           # Games that seat five
  gamenight games list --max-time 45         # Games of 45 minutes or less
  gamenight games list --category strategy   # Games in a category
  gamenight games list --search train        # Search names, descriptions, categories
  gamenight games list -o json               # Output as JSON`,
	RunE: runGamesList,
}

var gamesShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show game details",
	Long: `Show detailed information about a game.

The identifier can be:
  - Game name (case-insensitive)
  - Game ID
  - Any search text; the first match is shown`,
	Args: cobra.ExactArgs(1),
	RunE: runGamesShow,
}

var gamesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a game",
	Long: `Add a game to the library. A game with the same name is updated.

Examples:
  gamenight games add "Azul" --min-players 2 --max-players 4 --time 40 --complexity 1.8 --category Abstract --category Family`,
	Args: cobra.ExactArgs(1),
	RunE: runGamesAdd,
}

var gamesDeleteCmd = &cobra.Command{
	Use:   "delete <name|id>",
	Short: "Remove a game and its play history",
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesDelete,
}

var (
	gamesListPlayers  int
	gamesListMaxTime  int
	gamesListCategory string
	gamesListSearch   string
	gamesListLimit    int

	gameAddMinPlayers  int
	gameAddMaxPlayers  int
	gameAddTime        int
	gameAddComplexity  float64
	gameAddCategories  []string
	gameAddDescription string
)

func init() {
	rootCmd.AddCommand(gamesCmd)
	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesShowCmd)
	gamesCmd.AddCommand(gamesAddCmd)
	gamesCmd.AddCommand(gamesDeleteCmd)

	gamesListCmd.Flags().IntVar(&gamesListPlayers, "players", 0, "Only games that seat this many players")
	gamesListCmd.Flags().IntVar(&gamesListMaxTime, "max-time", 0, "Only games at most this many minutes long")
	gamesListCmd.Flags().StringVar(&gamesListCategory, "category", "", "Only games in this category")
	gamesListCmd.Flags().StringVar(&gamesListSearch, "search", "", "Search names, descriptions and categories")
	gamesListCmd.Flags().IntVar(&gamesListLimit, "limit", 0, "Maximum number of results")

	gamesAddCmd.Flags().IntVar(&gameAddMinPlayers, "min-players", 1, "Minimum number of players")
	gamesAddCmd.Flags().IntVar(&gameAddMaxPlayers, "max-players", 4, "Maximum number of players")
	gamesAddCmd.Flags().IntVar(&gameAddTime, "time", 60, "Average play time in minutes")
	gamesAddCmd.Flags().Float64Var(&gameAddComplexity, "complexity", 2.5, "Complexity from 1 (light) to 5 (heavy)")
	gamesAddCmd.Flags().StringArrayVar(&gameAddCategories, "category", nil, "Category (repeatable)")
	gamesAddCmd.Flags().StringVar(&gameAddDescription, "description", "", "Short description")
}

func runGamesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var games []database.Game
	if gamesListSearch != "" {
		games, err = a.db.SearchGames(ctx, gamesListSearch)
	} else {
		opts := database.GameListOptions{Limit: gamesListLimit}
		if gamesListPlayers > 0 {
			opts.PlayerCount = &gamesListPlayers
		}
		if gamesListMaxTime > 0 {
			opts.MaxPlayTime = &gamesListMaxTime
		}
		if gamesListCategory != "" {
			opts.Category = &gamesListCategory
		}
		games, err = a.db.ListGames(ctx, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	return output.Output(outputFmt, games)
}

// findGame looks a game up by name, then ID, then search
func findGame(ctx context.Context, db *database.DB, identifier string) (*database.Game, error) {
	g, err := db.GetGameByName(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if g != nil {
		return g, nil
	}

	g, err = db.GetGame(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if g != nil {
		return g, nil
	}

	results, err := db.SearchGames(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("search error: %w", err)
	}
	if len(results) > 0 {
		return &results[0], nil
	}

	return nil, fmt.Errorf("game not found: %s", identifier)
}

func runGamesShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := findGame(cmd.Context(), a.db, args[0])
	if err != nil {
		return err
	}

	return output.Output(outputFmt, g)
}

func runGamesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lib := &importer.Library{
		Games: []importer.GameRecord{{
			Name:             args[0],
			Description:      gameAddDescription,
			MinPlayers:       gameAddMinPlayers,
			MaxPlayers:       gameAddMaxPlayers,
			AveragePlayTime:  gameAddTime,
			ComplexityRating: gameAddComplexity,
			Categories:       gameAddCategories,
		}},
	}
	if err := lib.Validate(); err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := importer.New(a.db, logging.Logger()).Import(ctx, lib)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	g, err := a.db.GetGameByName(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(g)
	}

	verb := "Updated"
	if summary.GamesCreated > 0 {
		verb = "Added"
	}
	fmt.Printf("%s %s (%s players, %d min, complexity %.1f)\n", verb, g.Name, g.PlayerRange(), g.AveragePlayTime, g.ComplexityRating)
	return nil
}

func runGamesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := a.db.GetGameByName(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if g == nil {
		if g, err = a.db.GetGame(ctx, args[0]); err != nil {
			return fmt.Errorf("database error: %w", err)
		}
	}
	if g == nil {
		return fmt.Errorf("game not found: %s", args[0])
	}

	if err := a.db.DeleteGame(ctx, g.ID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	fmt.Printf("Deleted %s\n", g.Name)
	return nil
}
