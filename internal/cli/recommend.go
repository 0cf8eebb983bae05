package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/concierge"
	"github.com/dandam/gamenight/internal/output"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <player>...",
	Short: "Rank the library for the players at the table",
	Long: `Rank every game that seats the group by how well it suits everyone.

Each player's fit combines their stated preferences (play time, complexity,
categories) with how they rated the game in the past. The group score is the
average fit pulled toward the least happy player, so one person who would
hate a game sinks it.

Players can be given by username or ID.

Examples:
  gamenight recommend alice_gamer bob_plays carol_dice
  gamenight recommend alice_gamer bob_plays --time 60 --top 3
  gamenight recommend alice_gamer bob_plays --count 5          # two more are coming
  gamenight recommend alice_gamer bob_plays --penalty 1        # nobody may be unhappy
  gamenight recommend alice_gamer bob_plays --explain`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

// recommendFlags holds the per-run overrides shared by recommend and export
type recommendFlags struct {
	count     int
	timeLimit int
	top       int
	penalty   float64
	threshold float64
}

var (
	recFlags         recommendFlags
	recommendExplain bool
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recFlags.bind(recommendCmd)
	recommendCmd.Flags().BoolVar(&recommendExplain, "explain", false, "Show each player's score breakdown")
}

func (f *recommendFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.count, "count", 0, "Seat this many players (default: number of players given)")
	cmd.Flags().IntVar(&f.timeLimit, "time", 0, "Exclude games longer than this many minutes")
	cmd.Flags().IntVar(&f.top, "top", 0, "Show at most this many games (default: from config)")
	cmd.Flags().Float64Var(&f.penalty, "penalty", 0, "Dissent penalty from 0 (average) to 1 (least happy player)")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "Group score at which a game is recommended")
}

// options maps flags to concierge options; only flags set on the command
// line override the configuration
func (f *recommendFlags) options(cmd *cobra.Command, players []string) concierge.Options {
	opts := concierge.Options{
		Players: players,
		TopN:    f.top,
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		count := f.count
		opts.PlayerCount = &count
	}
	if flags.Changed("time") {
		limit := f.timeLimit
		opts.TimeBudget = &limit
	}
	if flags.Changed("penalty") {
		penalty := f.penalty
		opts.DissentPenalty = &penalty
	}
	if flags.Changed("threshold") {
		threshold := f.threshold
		opts.Threshold = &threshold
	}

	return opts
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.concierge()
	if err != nil {
		return err
	}

	report, err := c.Recommend(ctx, recFlags.options(cmd, args))
	if err != nil {
		return fmt.Errorf("failed to recommend: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(report)
	}

	return output.Recommendations(os.Stdout, report, recommendExplain)
}
