package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/concierge"
	"github.com/dandam/gamenight/internal/recommend"
)

func TestOpenApp(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "gamenight.db")
	cfgPath := filepath.Join(dir, "config.toml")

	cfgData := "[database]\npath = \"" + filepath.ToSlash(dbPath) + "\"\n\n[logging]\nlevel = \"warn\"\nformat = \"json\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgData), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	oldPath := configPath
	configPath = cfgPath
	t.Cleanup(func() { configPath = oldPath })

	a, err := openApp()
	if err != nil {
		t.Fatalf("openApp failed: %v", err)
	}
	defer a.Close()

	if a.cfg.Database.Path != dbPath {
		t.Errorf("Database.Path = %q, want %q", a.cfg.Database.Path, dbPath)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file not created: %v", err)
	}

	if err := a.db.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}

	c, err := a.concierge()
	if err != nil {
		t.Fatalf("concierge failed: %v", err)
	}
	if _, err := c.Recommend(context.Background(), concierge.Options{Players: []string{"nobody"}}); !errors.Is(err, recommend.ErrInvalidInput) {
		t.Errorf("Recommend(unknown player) error = %v, want ErrInvalidInput", err)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"2w", 14 * 24 * time.Hour, false},
		{"1m", 30 * 24 * time.Hour, false},
		{"d", 0, true},
		{"xd", 0, true},
		{"5y", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRecommendFlags_Options(t *testing.T) {
	var f recommendFlags
	cmd := &cobra.Command{Use: "test"}
	f.bind(cmd)

	if err := cmd.ParseFlags([]string{"--time", "60", "--penalty", "0", "--top", "3"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	opts := f.options(cmd, []string{"alice", "bob"})

	if len(opts.Players) != 2 {
		t.Errorf("len(Players) = %d, want 2", len(opts.Players))
	}
	if opts.TopN != 3 {
		t.Errorf("TopN = %d, want 3", opts.TopN)
	}
	if opts.TimeBudget == nil || *opts.TimeBudget != 60 {
		t.Errorf("TimeBudget = %v, want 60", opts.TimeBudget)
	}
	// an explicit zero still overrides the config
	if opts.DissentPenalty == nil || *opts.DissentPenalty != 0 {
		t.Errorf("DissentPenalty = %v, want 0", opts.DissentPenalty)
	}
	if opts.PlayerCount != nil {
		t.Errorf("PlayerCount = %v, want nil", *opts.PlayerCount)
	}
	if opts.Threshold != nil {
		t.Errorf("Threshold = %v, want nil", *opts.Threshold)
	}
}

func TestExportCSV(t *testing.T) {
	rows := []ExportRow{
		{Rank: 1, GameID: "g1", Game: "Catan", MinPlayers: 3, MaxPlayers: 4, PlayTime: 90, Complexity: 2.3, GroupScore: 0.71234, Recommended: true, Players: "alice bob"},
		{Rank: 2, GameID: "g2", Game: "Pandemic, Legacy", MinPlayers: 2, MaxPlayers: 4, PlayTime: 60, Complexity: 2.8, GroupScore: 0.5},
	}

	var buf bytes.Buffer
	if err := exportCSV(&buf, rows); err != nil {
		t.Fatalf("exportCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0][0] != "rank" {
		t.Errorf("header[0] = %q, want rank", records[0][0])
	}
	if records[1][7] != "0.7123" {
		t.Errorf("group_score = %q, want 0.7123", records[1][7])
	}
	if records[1][10] != "true" {
		t.Errorf("recommended = %q, want true", records[1][10])
	}
	if records[2][2] != "Pandemic, Legacy" {
		t.Errorf("game = %q, want %q", records[2][2], "Pandemic, Legacy")
	}
}

func TestExportJSONL(t *testing.T) {
	rows := []ExportRow{
		{Rank: 1, GameID: "g1", Game: "Catan", GroupScore: 0.7, Recommended: true},
		{Rank: 2, GameID: "g2", Game: "Les Aventuriers du Rail", GroupScore: 0.5},
	}

	var buf bytes.Buffer
	if err := exportJSONL(&buf, rows); err != nil {
		t.Fatalf("exportJSONL failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	for i, line := range lines {
		var row ExportRow
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		if row.Rank != i+1 {
			t.Errorf("line %d rank = %d, want %d", i, row.Rank, i+1)
		}
	}
	if strings.Contains(lines[0], " ") {
		t.Errorf("rows are not compact: %q", lines[0])
	}
}
