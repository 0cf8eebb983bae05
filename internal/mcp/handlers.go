package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/dandam/gamenight/internal/concierge"
	"github.com/dandam/gamenight/internal/database"
	"github.com/dandam/gamenight/internal/recommend"
)

const defaultGameLimit = 50

func (s *Server) registerHandlers() {
	s.handlers["recommend_games"] = s.handleRecommendGames
	s.handlers["list_games"] = s.handleListGames
	s.handlers["get_player"] = s.handleGetPlayer
	s.handlers["get_stats"] = s.handleGetStats
}

type recommendGamesParams struct {
	Players        []string `json:"players"`
	PlayerCount    *int     `json:"player_count"`
	TimeBudget     *int     `json:"time_budget"`
	TopN           int      `json:"top_n"`
	DissentPenalty *float64 `json:"dissent_penalty"`
	Threshold      *float64 `json:"threshold"`
	Explain        bool     `json:"explain"`
}

type rankedGame struct {
	Rank         int               `json:"rank"`
	GameID       string            `json:"game_id"`
	Name         string            `json:"name"`
	Players      string            `json:"players,omitempty"`
	PlayTime     int               `json:"play_time,omitempty"`
	Complexity   float64           `json:"complexity,omitempty"`
	GroupScore   float64           `json:"group_score"`
	MeanScore    float64           `json:"mean_score"`
	MinScore     float64           `json:"min_score"`
	Recommended  bool              `json:"recommended"`
	Explanations map[string]string `json:"explanations,omitempty"`
}

type recommendGamesResult struct {
	Players                 []string          `json:"players"`
	PlayerCount             int               `json:"player_count"`
	Outcome                 recommend.Outcome `json:"outcome"`
	CandidateCount          int               `json:"candidate_count"`
	EliminatedByPlayerCount int               `json:"eliminated_by_player_count"`
	EliminatedByTime        int               `json:"eliminated_by_time"`
	Threshold               float64           `json:"threshold"`
	Summary                 string            `json:"summary"`
	Games                   []rankedGame      `json:"games"`
}

func (s *Server) handleRecommendGames(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p recommendGamesParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if len(p.Players) == 0 {
		return nil, fmt.Errorf("players is required")
	}

	report, err := s.concierge.Recommend(ctx, concierge.Options{
		Players:        p.Players,
		PlayerCount:    p.PlayerCount,
		TimeBudget:     p.TimeBudget,
		TopN:           p.TopN,
		DissentPenalty: p.DissentPenalty,
		Threshold:      p.Threshold,
	})
	if err != nil {
		return nil, err
	}

	return buildRecommendResult(report, p.Explain), nil
}

func buildRecommendResult(report *concierge.Report, explain bool) recommendGamesResult {
	res := report.Result
	result := recommendGamesResult{
		Players:                 make([]string, len(report.Players)),
		PlayerCount:             res.PlayerCount,
		Outcome:                 res.Outcome,
		CandidateCount:          res.CandidateCount,
		EliminatedByPlayerCount: res.EliminatedByPlayerCount,
		EliminatedByTime:        res.EliminatedByTime,
		Threshold:               report.Threshold,
		Games:                   make([]rankedGame, 0, len(res.Recommendations)),
	}
	for i, pl := range report.Players {
		result.Players[i] = pl.DisplayName
	}

	for i, rec := range res.Recommendations {
		rg := rankedGame{
			Rank:        i + 1,
			GameID:      rec.GameID,
			Name:        rec.GameName,
			GroupScore:  rec.GroupScore,
			MeanScore:   rec.MeanScore,
			MinScore:    rec.MinScore,
			Recommended: rec.Recommended,
		}
		if g, ok := report.Game(rec.GameID); ok {
			rg.Players = fmt.Sprintf("%d-%d", g.MinPlayers, g.MaxPlayers)
			rg.PlayTime = g.AveragePlayTime
			rg.Complexity = g.ComplexityRating
		}
		if explain && len(rec.Breakdowns) > 0 {
			rg.Explanations = make(map[string]string, len(rec.Breakdowns))
			for _, b := range rec.Breakdowns {
				rg.Explanations[report.DisplayName(b.PlayerID)] = report.Explain(b)
			}
		}
		result.Games = append(result.Games, rg)
	}

	switch res.Outcome {
	case recommend.OutcomeEmptyCatalog:
		result.Summary = "The game library is empty."
	case recommend.OutcomeNoGamesFitGroup:
		result.Summary = fmt.Sprintf("No games fit %d players.", res.PlayerCount)
	case recommend.OutcomeNoGamesFitTime:
		result.Summary = fmt.Sprintf("No games fit %d players within the time budget.", res.PlayerCount)
	case recommend.OutcomeNoneAboveThreshold:
		result.Summary = fmt.Sprintf("No game reached the %.2f threshold; %d closest matches listed.", report.Threshold, len(result.Games))
	default:
		result.Summary = fmt.Sprintf("%d of %d candidate(s) recommended", res.RecommendedCount(), res.CandidateCount)
	}

	return result
}

type listGamesParams struct {
	Query       string `json:"query"`
	PlayerCount int    `json:"player_count"`
	MaxPlayTime int    `json:"max_play_time"`
	Category    string `json:"category"`
	Limit       int    `json:"limit"`
}

func (s *Server) handleListGames(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listGamesParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	if p.Query != "" {
		games, err := s.db.SearchGames(ctx, p.Query)
		if err != nil {
			return nil, fmt.Errorf("search error: %w", err)
		}
		return games, nil
	}

	opts := database.GameListOptions{Limit: defaultGameLimit}
	if p.PlayerCount > 0 {
		opts.PlayerCount = &p.PlayerCount
	}
	if p.MaxPlayTime > 0 {
		opts.MaxPlayTime = &p.MaxPlayTime
	}
	if p.Category != "" {
		opts.Category = &p.Category
	}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}

	games, err := s.db.ListGames(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return games, nil
}

type getPlayerParams struct {
	Identifier string `json:"identifier"`
}

func (s *Server) handleGetPlayer(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getPlayerParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.Identifier == "" {
		return nil, fmt.Errorf("identifier is required")
	}

	return s.concierge.Profile(ctx, p.Identifier)
}

func (s *Server) handleGetStats(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case uriSummary:
		return s.getResourceSummary(ctx)
	case uriGames:
		return s.getResourceGames(ctx)
	case uriPlayers:
		return s.getResourcePlayers(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Game Night Summary
==================
Games:            %d (%d categories)
Players:          %d (%d with preferences)
Plays logged:     %d (%d rated)
`, stats.TotalGames, stats.CategoriesInLibrary, stats.TotalPlayers, stats.PlayersWithPrefs,
		stats.TotalPlays, stats.RatedPlays)

	if stats.RatedPlays > 0 {
		fmt.Fprintf(&b, "Average rating:   %.1f\n", stats.AverageRating)
	}
	if stats.LastPlayedAt != nil {
		fmt.Fprintf(&b, "Last game night:  %s\n", stats.LastPlayedAt.Format("2006-01-02"))
	}

	if len(stats.MostPlayed) > 0 {
		b.WriteString("\nMost played:\n")
		for _, gc := range stats.MostPlayed {
			fmt.Fprintf(&b, "  - %s (%d)\n", gc.Name, gc.Plays)
		}
	}

	return b.String(), nil
}

func (s *Server) getResourceGames(ctx context.Context) (string, error) {
	games, err := s.db.ListGames(ctx, database.GameListOptions{})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Game Library\n============\n\n")

	if len(games) == 0 {
		b.WriteString("No games yet. Run 'gamenight seed' or 'gamenight import' to add some.\n")
		return b.String(), nil
	}

	for _, g := range games {
		fmt.Fprintf(&b, "- %s | %s players | %d min | complexity %.1f", g.Name, g.PlayerRange(), g.AveragePlayTime, g.ComplexityRating)
		if len(g.Categories) > 0 {
			fmt.Fprintf(&b, " | %s", strings.Join(g.Categories, ", "))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func (s *Server) getResourcePlayers(ctx context.Context) (string, error) {
	players, err := s.db.ListPlayers(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Players\n=======\n\n")

	if len(players) == 0 {
		b.WriteString("No players yet.\n")
		return b.String(), nil
	}

	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	prefs, err := s.db.PreferencesFor(ctx, ids)
	if err != nil {
		return "", err
	}

	for _, p := range players {
		marker := "no preferences"
		if prefs[p.ID] != nil {
			marker = "has preferences"
		}
		fmt.Fprintf(&b, "- %s (%s) | %s\n", p.DisplayName, p.Username, marker)
	}

	return b.String(), nil
}
