// Package concierge connects the game library to the recommendation engine.
// It loads a snapshot of the group from the store, runs the engine, and
// returns a report ready for rendering.
package concierge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dandam/gamenight/internal/database"
	"github.com/dandam/gamenight/internal/recommend"
)

// Store is the read side of the game library used for recommendations
type Store interface {
	GetPlayer(ctx context.Context, id string) (*database.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*database.Player, error)
	PreferencesFor(ctx context.Context, playerIDs []string) (map[string]*database.Preferences, error)
	HistoryFor(ctx context.Context, playerIDs []string) ([]database.Play, error)
	ListGames(ctx context.Context, opts database.GameListOptions) ([]database.Game, error)
}

// Concierge orchestrates snapshot loading and recommendation
type Concierge struct {
	store  Store
	engine *recommend.Engine
	base   zerolog.Logger
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a Concierge
func New(store Store, engine *recommend.Engine, logger zerolog.Logger) *Concierge {
	return &Concierge{
		store:  store,
		engine: engine,
		base:   logger,
		logger: logger.With().Str("component", "concierge").Logger(),
		now:    time.Now,
	}
}

// Options configures a single recommendation
type Options struct {
	// Players are usernames or IDs of the people at the table
	Players []string

	// PlayerCount overrides the number of players for the hard filter
	PlayerCount *int

	// TimeBudget eliminates games longer than this many minutes
	TimeBudget *int

	// TopN limits the output (0 = engine default)
	TopN int

	// DissentPenalty and Threshold override the engine configuration
	DissentPenalty *float64
	Threshold      *float64
}

// Report is a recommendation with enough context to render it
type Report struct {
	Players     []database.Player `json:"players"`
	Result      *recommend.Result `json:"result"`
	GeneratedAt time.Time         `json:"generated_at"`
	Threshold   float64           `json:"threshold"`

	games  map[string]recommend.Game
	scorer *recommend.Scorer
}

// Game returns catalog details for a recommended game
func (r *Report) Game(id string) (recommend.Game, bool) {
	g, ok := r.games[id]
	return g, ok
}

// DisplayName returns the display name of a player in the report
func (r *Report) DisplayName(playerID string) string {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p.DisplayName
		}
	}
	return playerID
}

// Explain describes one player's breakdown in words
func (r *Report) Explain(b recommend.ScoreBreakdown) string {
	return r.scorer.Explain(b)
}

// Recommend resolves the group, loads their data and ranks the library
func (c *Concierge) Recommend(ctx context.Context, opts Options) (*Report, error) {
	engine, err := c.engineFor(opts)
	if err != nil {
		return nil, err
	}

	players, err := c.ResolvePlayers(ctx, opts.Players)
	if err != nil {
		return nil, err
	}

	req, err := c.Snapshot(ctx, players)
	if err != nil {
		return nil, err
	}
	req.TopN = opts.TopN
	req.DesiredPlayerCount = opts.PlayerCount
	req.TimeBudget = opts.TimeBudget

	result, err := engine.Recommend(ctx, *req)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("players", len(players)).
		Int("candidates", result.CandidateCount).
		Int("recommended", result.RecommendedCount()).
		Str("outcome", string(result.Outcome)).
		Msg("recommendation complete")

	games := make(map[string]recommend.Game, len(req.Catalog))
	for _, g := range req.Catalog {
		games[g.ID] = g
	}

	return &Report{
		Players:     players,
		Result:      result,
		GeneratedAt: req.Now,
		Threshold:   engine.Config().RecommendationThreshold,
		games:       games,
		scorer:      engine.Scorer(),
	}, nil
}

// ResolvePlayers looks up each reference by username, then by ID.
// An unknown reference is an invalid-input error.
func (c *Concierge) ResolvePlayers(ctx context.Context, refs []string) ([]database.Player, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", recommend.ErrInvalidInput)
	}

	players := make([]database.Player, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			return nil, fmt.Errorf("%w: empty player name", recommend.ErrInvalidInput)
		}

		p, err := c.store.GetPlayerByUsername(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to look up player %q: %w", ref, err)
		}
		if p == nil {
			p, err = c.store.GetPlayer(ctx, ref)
			if err != nil {
				return nil, fmt.Errorf("failed to look up player %q: %w", ref, err)
			}
		}
		if p == nil {
			return nil, fmt.Errorf("%w: unknown player %q", recommend.ErrInvalidInput, ref)
		}

		players = append(players, *p)
	}

	return players, nil
}

// Snapshot loads the catalog and the group's preferences and history
func (c *Concierge) Snapshot(ctx context.Context, players []database.Player) (*recommend.Request, error) {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}

	games, err := c.store.ListGames(ctx, database.GameListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	prefs, err := c.store.PreferencesFor(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	plays, err := c.store.HistoryFor(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load play history: %w", err)
	}

	catalog := make([]recommend.Game, len(games))
	for i, g := range games {
		catalog[i] = EngineGame(g)
	}

	preferences := make(map[string]*recommend.PlayerPreferences, len(prefs))
	for id, p := range prefs {
		preferences[id] = EnginePreferences(p)
	}

	c.logger.Debug().
		Int("games", len(catalog)).
		Int("preferences", len(preferences)).
		Int("plays", len(plays)).
		Msg("snapshot loaded")

	return &recommend.Request{
		Players:     ids,
		Catalog:     catalog,
		Preferences: preferences,
		History:     EngineHistory(plays),
		Now:         c.now(),
	}, nil
}

// engineFor returns the configured engine, or a copy with per-call overrides
func (c *Concierge) engineFor(opts Options) (*recommend.Engine, error) {
	if opts.DissentPenalty == nil && opts.Threshold == nil {
		return c.engine, nil
	}

	cfg := c.engine.Config()
	if opts.DissentPenalty != nil {
		cfg.DissentPenalty = *opts.DissentPenalty
	}
	if opts.Threshold != nil {
		cfg.RecommendationThreshold = *opts.Threshold
	}
	return recommend.NewEngine(cfg, c.base)
}
