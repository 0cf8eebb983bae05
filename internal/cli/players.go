package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/importer"
	"github.com/dandam/gamenight/internal/logging"
	"github.com/dandam/gamenight/internal/output"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Manage players and their preferences",
}

var playersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List players",
	RunE:  runPlayersList,
}

var playersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a player",
	Long: `Add a player. An existing username keeps its data; --name renames it.

Examples:
  gamenight players add alice_gamer --name Alice`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayersAdd,
}

var playersPrefsCmd = &cobra.Command{
	Use:   "prefs <username>",
	Short: "Set a player's preferences",
	Long: `Replace a player's stated preferences. Flags that are not given mean
"no preference" for that factor, which scores neutrally.

Examples:
  gamenight players prefs alice_gamer --min-time 30 --max-time 120 --complexity-min 2 --complexity-max 3.5 --category Strategy
  gamenight players prefs bob_plays --max-time 60 --category Family --category "Card Game"`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayersPrefs,
}

var playersShowCmd = &cobra.Command{
	Use:   "show <username|id>",
	Short: "Show a player's preferences and recent plays",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayersShow,
}

var (
	playerAddName string

	prefsMinTime       int
	prefsMaxTime       int
	prefsPlayerCount   int
	prefsComplexityMin float64
	prefsComplexityMax float64
	prefsCategories    []string
)

func init() {
	rootCmd.AddCommand(playersCmd)
	playersCmd.AddCommand(playersListCmd)
	playersCmd.AddCommand(playersAddCmd)
	playersCmd.AddCommand(playersPrefsCmd)
	playersCmd.AddCommand(playersShowCmd)

	playersAddCmd.Flags().StringVar(&playerAddName, "name", "", "Display name (default: username)")

	playersPrefsCmd.Flags().IntVar(&prefsMinTime, "min-time", 0, "Shortest game they enjoy, in minutes")
	playersPrefsCmd.Flags().IntVar(&prefsMaxTime, "max-time", 0, "Longest game they enjoy, in minutes")
	playersPrefsCmd.Flags().IntVar(&prefsPlayerCount, "count", 0, "Preferred number of players")
	playersPrefsCmd.Flags().Float64Var(&prefsComplexityMin, "complexity-min", 0, "Lightest complexity they enjoy (1-5)")
	playersPrefsCmd.Flags().Float64Var(&prefsComplexityMax, "complexity-max", 0, "Heaviest complexity they enjoy (1-5)")
	playersPrefsCmd.Flags().StringArrayVar(&prefsCategories, "category", nil, "Preferred category (repeatable)")
}

func runPlayersList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	players, err := a.db.ListPlayers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	return output.Output(outputFmt, players)
}

func runPlayersAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lib := &importer.Library{
		Players: []importer.PlayerRecord{{Username: args[0], DisplayName: playerAddName}},
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
		return fmt.Errorf("failed to save player: %w", err)
	}

	p, err := a.db.GetPlayerByUsername(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(p)
	}

	if summary.PlayersCreated > 0 {
		fmt.Printf("Added %s (%s)\n", p.DisplayName, p.Username)
	} else {
		fmt.Printf("Updated %s (%s)\n", p.DisplayName, p.Username)
	}
	return nil
}

func runPlayersPrefs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	prefs := &importer.PreferencesRecord{Categories: prefsCategories}
	if flags.Changed("min-time") {
		prefs.MinPlayTime = &prefsMinTime
	}
	if flags.Changed("max-time") {
		prefs.MaxPlayTime = &prefsMaxTime
	}
	if flags.Changed("count") {
		prefs.PreferredPlayerCount = &prefsPlayerCount
	}
	if flags.Changed("complexity-min") {
		prefs.ComplexityMin = &prefsComplexityMin
	}
	if flags.Changed("complexity-max") {
		prefs.ComplexityMax = &prefsComplexityMax
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.db.GetPlayerByUsername(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if p == nil {
		return fmt.Errorf("player not found: %s (add them with 'gamenight players add')", args[0])
	}

	lib := &importer.Library{
		Players: []importer.PlayerRecord{{Username: p.Username, Preferences: prefs}},
	}
	if _, err := importer.New(a.db, logging.Logger()).Import(ctx, lib); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	c, err := a.concierge()
	if err != nil {
		return err
	}
	profile, err := c.Profile(ctx, p.ID)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, profile)
}

func runPlayersShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.concierge()
	if err != nil {
		return err
	}

	profile, err := c.Profile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return output.Output(outputFmt, profile)
}
