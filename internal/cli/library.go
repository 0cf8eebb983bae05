package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/importer"
	"github.com/dandam/gamenight/internal/logging"
	"github.com/dandam/gamenight/internal/output"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import games, players and plays from a JSON file",
	Long: `Import a library file. Games are matched by name and players by
username, so importing the same file twice updates rather than duplicates.
Plays are always added. Nothing is written unless the whole file is valid.

File format:
  {
    "games": [{"name": "Catan", "min_players": 3, "max_players": 4,
               "average_play_time": 90, "complexity_rating": 2.3,
               "categories": ["Strategy"]}],
    "players": [{"username": "alice_gamer", "display_name": "Alice",
                 "preferences": {"max_play_time": 120,
                                 "preferred_categories": ["Strategy"]}}],
    "plays": [{"player": "alice_gamer", "game": "Catan",
               "played_at": "2025-06-01T19:00:00Z", "rating": 4.5}]
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a starter library of four games and four players",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(seedCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := importer.New(a.db, logging.Logger()).ImportFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}

	return output.Output(outputFmt, summary)
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := importer.New(a.db, logging.Logger()).Import(cmd.Context(), importer.SampleLibrary(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to seed library: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(summary)
	}

	if err := output.Table(summary); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Try: gamenight recommend alice_gamer bob_plays carol_dice --explain")
	return nil
}
