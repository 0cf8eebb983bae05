package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library and play statistics",
	Long: `Display aggregate statistics about the library and play history.

Examples:
  gamenight stats
  gamenight stats -o json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.db.GetStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	return output.Output(outputFmt, stats)
}
