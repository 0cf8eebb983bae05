package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func newTestEngine(t *testing.T, modify func(*Config)) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	if modify != nil {
		modify(&cfg)
	}
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DissentPenalty = 1.5

	_, err := NewEngine(cfg, zerolog.Nop())
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NewEngine() error = %v, want ErrInvalidInput", err)
	}
}

func TestNewEngine_TagsLoggerOnce(t *testing.T) {
	var buf bytes.Buffer
	e, err := NewEngine(DefaultConfig(), zerolog.New(&buf).Level(zerolog.DebugLevel))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	if _, err := e.Recommend(context.Background(), Request{
		Players:            []string{"p1"},
		Catalog:            sampleCatalog(),
		DesiredPlayerCount: intPtr(9),
	}); err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	line := buf.String()
	if line == "" {
		t.Fatal("expected a debug line for an empty candidate set")
	}
	if n := strings.Count(line, `"component"`); n != 1 {
		t.Errorf("component key appears %d times in %s", n, line)
	}
	if !strings.Contains(line, `"component":"recommend"`) {
		t.Errorf("log line = %s, want component recommend", line)
	}
}

func TestRecommend_InvalidInput(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		name string
		req  Request
	}{
		{"no players", Request{Catalog: sampleCatalog()}},
		{"blank player", Request{Players: []string{"p1", " "}}},
		{"duplicate player", Request{Players: []string{"p1", "p1"}}},
		{"zero desired count", Request{Players: []string{"p1"}, DesiredPlayerCount: intPtr(0)}},
		{"negative desired count", Request{Players: []string{"p1"}, DesiredPlayerCount: intPtr(-2)}},
		{"zero time budget", Request{Players: []string{"p1"}, TimeBudget: intPtr(0)}},
		{"negative top n", Request{Players: []string{"p1"}, TopN: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Recommend(context.Background(), tt.req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Recommend() error = %v, want ErrInvalidInput", err)
			}
			if result != nil {
				t.Error("expected no partial result")
			}
		})
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	e := newTestEngine(t, nil)

	result, err := e.Recommend(context.Background(), Request{Players: []string{"p1", "p2"}})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	if result.Recommendations == nil || len(result.Recommendations) != 0 {
		t.Errorf("Recommendations = %v, want empty non-nil slice", result.Recommendations)
	}
	if result.EliminatedByPlayerCount != 0 {
		t.Errorf("EliminatedByPlayerCount = %d, want 0", result.EliminatedByPlayerCount)
	}
	if result.Outcome != OutcomeEmptyCatalog {
		t.Errorf("Outcome = %s, want %s", result.Outcome, OutcomeEmptyCatalog)
	}
}

func TestRecommend_PlayerCountExcludesFavorite(t *testing.T) {
	e := newTestEngine(t, nil)
	players := []string{"p1", "p2", "p3", "p4"}

	catalog := []Game{
		{ID: "a", Name: "Game A", MinPlayers: 2, MaxPlayers: 4, AveragePlayTime: 60, ComplexityRating: 2.0},
		{ID: "b", Name: "Game B", MinPlayers: 5, MaxPlayers: 8, AveragePlayTime: 90, ComplexityRating: 3.0},
	}

	// everyone adores Game B, but it cannot seat four
	history := make(map[HistoryKey][]HistoryEntry)
	for _, p := range players {
		history[HistoryKey{p, "b"}] = []HistoryEntry{play(p, "b", floatPtr(5))}
	}

	result, err := e.Recommend(context.Background(), Request{Players: players, Catalog: catalog, History: history, Now: testNow})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	if len(result.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(result.Recommendations))
	}
	if result.Recommendations[0].GameID != "a" {
		t.Errorf("recommended %s, want a", result.Recommendations[0].GameID)
	}
	if result.EliminatedByPlayerCount != 1 {
		t.Errorf("EliminatedByPlayerCount = %d, want 1", result.EliminatedByPlayerCount)
	}
}

func TestRecommend_DissentPenaltyChangesRanking(t *testing.T) {
	e := newTestEngine(t, nil)

	catalog := []Game{
		{ID: "x", Name: "Game X", MinPlayers: 2, MaxPlayers: 4, AveragePlayTime: 60, ComplexityRating: 2.0},
		{ID: "y", Name: "Game Y", MinPlayers: 2, MaxPlayers: 4, AveragePlayTime: 60, ComplexityRating: 2.0},
	}
	history := map[HistoryKey][]HistoryEntry{
		{"p1", "x"}: {play("p1", "x", floatPtr(5))},
		{"p1", "y"}: {play("p1", "y", floatPtr(5))},
		{"p2", "x"}: {play("p2", "x", floatPtr(1))},
		{"p2", "y"}: {play("p2", "y", floatPtr(5))},
	}

	result, err := e.Recommend(context.Background(), Request{
		Players: []string{"p1", "p2"},
		Catalog: catalog,
		History: history,
		Now:     testNow,
	})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	scores := make(map[string]float64)
	for _, r := range result.Recommendations {
		scores[r.GameID] = r.GroupScore
	}

	if scores["y"] <= scores["x"] {
		t.Errorf("group score Y = %v should exceed X = %v", scores["y"], scores["x"])
	}
	// X: players 0.75 and 0.25 -> mean 0.5, min 0.25 -> 0.375
	assertFloat(t, "group score X", scores["x"], 0.375)
	assertFloat(t, "group score Y", scores["y"], 0.75)

	if result.Recommendations[0].GameID != "y" {
		t.Errorf("top game = %s, want y", result.Recommendations[0].GameID)
	}
	if !result.Recommendations[0].Recommended || result.Recommendations[1].Recommended {
		t.Error("expected only Y to clear the threshold")
	}
}

func TestRecommend_NeutralPlayers(t *testing.T) {
	e := newTestEngine(t, nil)

	result, err := e.Recommend(context.Background(), Request{
		Players: []string{"new1", "new2", "new3"},
		Catalog: sampleCatalog(),
	})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	for _, r := range result.Recommendations {
		assertFloat(t, r.GameName+" group score", r.GroupScore, 0.5)
		if len(r.Breakdowns) != 3 {
			t.Fatalf("%s has %d breakdowns, want 3", r.GameName, len(r.Breakdowns))
		}
		for _, b := range r.Breakdowns {
			assertFloat(t, b.PlayerID+" player score", b.PlayerScore, 0.5)
		}
	}

	if result.Outcome != OutcomeNoneAboveThreshold {
		t.Errorf("Outcome = %s, want %s", result.Outcome, OutcomeNoneAboveThreshold)
	}
	// Equal scores fall back to complexity: Ticket to Ride (1.9) leads
	if result.Recommendations[0].GameID != "ttr" {
		t.Errorf("top game = %s, want ttr", result.Recommendations[0].GameID)
	}
}

func TestRecommend_HardFilter(t *testing.T) {
	catalog := sampleCatalog()
	e := newTestEngine(t, nil)

	for n := 1; n <= 8; n++ {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			result, err := e.Recommend(context.Background(), Request{
				Players:            []string{"p1"},
				Catalog:            catalog,
				DesiredPlayerCount: intPtr(n),
			})
			if err != nil {
				t.Fatalf("Recommend() error: %v", err)
			}

			got := make(map[string]bool)
			for _, r := range result.Recommendations {
				got[r.GameID] = true
			}

			want := 0
			for _, g := range catalog {
				fits := g.MinPlayers <= n && n <= g.MaxPlayers
				if fits {
					want++
				}
				if got[g.ID] != fits {
					t.Errorf("%s present = %v, want %v", g.Name, got[g.ID], fits)
				}
			}

			if result.EliminatedByPlayerCount != len(catalog)-want {
				t.Errorf("EliminatedByPlayerCount = %d, want %d", result.EliminatedByPlayerCount, len(catalog)-want)
			}
			if want == 0 && result.Outcome != OutcomeNoGamesFitGroup {
				t.Errorf("Outcome = %s, want %s", result.Outcome, OutcomeNoGamesFitGroup)
			}
		})
	}
}

func TestRecommend_TimeBudget(t *testing.T) {
	e := newTestEngine(t, nil)

	result, err := e.Recommend(context.Background(), Request{
		Players:    []string{"p1", "p2", "p3"},
		Catalog:    sampleCatalog(),
		TimeBudget: intPtr(60),
	})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	// Catan (90 min) is too long; the other three fit both constraints
	if result.CandidateCount != 3 {
		t.Errorf("CandidateCount = %d, want 3", result.CandidateCount)
	}
	if result.EliminatedByTime != 1 {
		t.Errorf("EliminatedByTime = %d, want 1", result.EliminatedByTime)
	}
	if result.EliminatedByPlayerCount != 0 {
		t.Errorf("EliminatedByPlayerCount = %d, want 0", result.EliminatedByPlayerCount)
	}
}

func TestRecommend_Outcomes(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		name       string
		count      int
		timeBudget *int
		want       Outcome
	}{
		{"fits", 3, intPtr(60), OutcomeOK},
		{"too many players", 9, nil, OutcomeNoGamesFitGroup},
		{"too many players with budget", 9, intPtr(20), OutcomeNoGamesFitGroup},
		{"nothing short enough", 3, intPtr(20), OutcomeNoGamesFitTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Recommend(context.Background(), Request{
				Players:            []string{"p1"},
				Catalog:            sampleCatalog(),
				DesiredPlayerCount: intPtr(tt.count),
				TimeBudget:         tt.timeBudget,
			})
			if err != nil {
				t.Fatalf("Recommend() error: %v", err)
			}
			if result.Outcome != tt.want {
				t.Errorf("Outcome = %s, want %s", result.Outcome, tt.want)
			}
		})
	}
}

func TestRecommend_TopN(t *testing.T) {
	e := newTestEngine(t, nil)

	result, err := e.Recommend(context.Background(), Request{
		Players: []string{"p1", "p2"},
		Catalog: sampleCatalog(),
		TopN:    2,
	})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	if len(result.Recommendations) != 2 {
		t.Errorf("got %d recommendations, want 2", len(result.Recommendations))
	}
	if result.CandidateCount != 3 {
		t.Errorf("CandidateCount = %d, want 3", result.CandidateCount)
	}
}

func largeRequest(games, players int) Request {
	req := Request{
		Preferences: make(map[string]*PlayerPreferences),
		History:     make(map[HistoryKey][]HistoryEntry),
		Now:         testNow,
	}
	categories := []string{"Strategy", "Party", "Family", "Cooperative", "Economic"}

	for i := 0; i < games; i++ {
		id := fmt.Sprintf("g%04d", i)
		req.Catalog = append(req.Catalog, Game{
			ID:               id,
			Name:             fmt.Sprintf("Game %d", i%97),
			MinPlayers:       1 + i%3,
			MaxPlayers:       3 + i%5,
			AveragePlayTime:  15 + (i%12)*15,
			ComplexityRating: 1 + float64(i%9)*0.5,
			Categories:       []string{categories[i%5], categories[(i/5)%5]},
		})
	}

	for p := 0; p < players; p++ {
		id := fmt.Sprintf("p%d", p)
		req.Players = append(req.Players, id)
		req.Preferences[id] = &PlayerPreferences{
			PlayerID:            id,
			MinPlayTime:         intPtr(30 + p*10),
			MaxPlayTime:         intPtr(90 + p*20),
			ComplexityMin:       floatPtr(1.5),
			ComplexityMax:       floatPtr(2.5 + float64(p)*0.5),
			PreferredCategories: []string{categories[p%5]},
		}
		for i := p; i < games; i += 7 {
			g := req.Catalog[i].ID
			rating := float64(1 + (i+p)%5)
			req.History[HistoryKey{id, g}] = []HistoryEntry{play(id, g, &rating)}
		}
	}

	return req
}

func TestRecommend_Deterministic(t *testing.T) {
	e := newTestEngine(t, nil)
	req := largeRequest(300, 4)

	first, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	second, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Error("two runs over identical input produced different output")
	}
}

func TestRecommend_ParallelMatchesSequential(t *testing.T) {
	req := largeRequest(500, 3)

	sequential := newTestEngine(t, func(c *Config) { c.ParallelThreshold = 100000 })
	parallel := newTestEngine(t, func(c *Config) {
		c.ParallelThreshold = 1
		c.MaxWorkers = 4
	})

	want, err := sequential.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("sequential Recommend() error: %v", err)
	}
	got, err := parallel.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("parallel Recommend() error: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Error("parallel and sequential runs differ")
	}
}

func TestRecommend_BreakdownRetention(t *testing.T) {
	req := largeRequest(120, 3)
	req.TopN = 5

	full := newTestEngine(t, nil)
	compact := newTestEngine(t, func(c *Config) { c.BreakdownRetentionLimit = 10 })

	want, err := full.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	got, err := compact.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Error("two-pass scoring changed the result")
	}
	for _, r := range got.Recommendations {
		if len(r.Breakdowns) != len(req.Players) {
			t.Errorf("%s has %d breakdowns, want %d", r.GameID, len(r.Breakdowns), len(req.Players))
		}
	}
}

func TestRecommend_Cancelled(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Recommend(ctx, Request{Players: []string{"p1", "p2"}, Catalog: sampleCatalog()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
}

func TestRecommend_DoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t, nil)
	req := largeRequest(40, 2)
	before, _ := json.Marshal(req.Catalog)

	if _, err := e.Recommend(context.Background(), req); err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	after, _ := json.Marshal(req.Catalog)
	if string(before) != string(after) {
		t.Error("Recommend() modified the catalog")
	}
}
