package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/concierge"
	"github.com/dandam/gamenight/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export <player>...",
	Short: "Export a recommendation to CSV or JSON",
	Long: `Rank the library for a group and write the ranking to stdout.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of ranked games
  - jsonl: One compact JSON object per ranked game

Examples:
  gamenight export alice_gamer bob_plays --format=csv > tonight.csv
  gamenight export alice_gamer bob_plays --format=json --time 90 > tonight.json
  gamenight export alice_gamer bob_plays --format=jsonl >> history.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

var (
	exportFormat string
	exportFlags  recommendFlags
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportFlags.bind(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json, jsonl)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	report, err := c.Recommend(ctx, exportFlags.options(cmd, args))
	if err != nil {
		return fmt.Errorf("failed to recommend: %w", err)
	}

	rows := toExportRows(report)

	switch exportFormat {
	case "csv":
		return exportCSV(os.Stdout, rows)
	case "json":
		if err := output.JSON(rows); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case "jsonl":
		return exportJSONL(os.Stdout, rows)
	default:
		return fmt.Errorf("unknown format: %s (use csv, json or jsonl)", exportFormat)
	}
}

// ExportRow represents one ranked game in the export
type ExportRow struct {
	Rank        int     `json:"rank"`
	GameID      string  `json:"game_id"`
	Game        string  `json:"game"`
	MinPlayers  int     `json:"min_players"`
	MaxPlayers  int     `json:"max_players"`
	PlayTime    int     `json:"play_time"`
	Complexity  float64 `json:"complexity"`
	GroupScore  float64 `json:"group_score"`
	MeanScore   float64 `json:"mean_score"`
	MinScore    float64 `json:"min_score"`
	Recommended bool    `json:"recommended"`
	Players     string  `json:"players"`
	GeneratedAt string  `json:"generated_at"`
}

func toExportRows(report *concierge.Report) []ExportRow {
	names := make([]string, len(report.Players))
	for i, p := range report.Players {
		names[i] = p.Username
	}
	players := strings.Join(names, " ")
	generated := report.GeneratedAt.UTC().Format(time.RFC3339)

	rows := make([]ExportRow, 0, len(report.Result.Recommendations))
	for i, rec := range report.Result.Recommendations {
		row := ExportRow{
			Rank:        i + 1,
			GameID:      rec.GameID,
			Game:        rec.GameName,
			GroupScore:  rec.GroupScore,
			MeanScore:   rec.MeanScore,
			MinScore:    rec.MinScore,
			Recommended: rec.Recommended,
			Players:     players,
			GeneratedAt: generated,
		}
		if g, ok := report.Game(rec.GameID); ok {
			row.MinPlayers = g.MinPlayers
			row.MaxPlayers = g.MaxPlayers
			row.PlayTime = g.AveragePlayTime
			row.Complexity = g.ComplexityRating
		}
		rows = append(rows, row)
	}
	return rows
}

func exportCSV(out io.Writer, rows []ExportRow) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"rank", "game_id", "game", "min_players", "max_players", "play_time",
		"complexity", "group_score", "mean_score", "min_score", "recommended",
		"players", "generated_at",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Rank),
			row.GameID,
			row.Game,
			strconv.Itoa(row.MinPlayers),
			strconv.Itoa(row.MaxPlayers),
			strconv.Itoa(row.PlayTime),
			strconv.FormatFloat(row.Complexity, 'f', 1, 64),
			strconv.FormatFloat(row.GroupScore, 'f', 4, 64),
			strconv.FormatFloat(row.MeanScore, 'f', 4, 64),
			strconv.FormatFloat(row.MinScore, 'f', 4, 64),
			strconv.FormatBool(row.Recommended),
			row.Players,
			row.GeneratedAt,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func exportJSONL(out io.Writer, rows []ExportRow) error {
	for _, row := range rows {
		if err := output.JSONCompactTo(out, row); err != nil {
			return fmt.Errorf("failed to encode row %d: %w", row.Rank, err)
		}
	}
	return nil
}
