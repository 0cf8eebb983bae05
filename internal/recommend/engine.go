package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Engine runs the recommendation pipeline:
//
//	hard filter -> per-player scoring -> group aggregation -> ranking
//
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	config     Config
	scorer     *Scorer
	aggregator *Aggregator
	logger     zerolog.Logger
}

// NewEngine creates an engine with the given configuration. It tags the
// logger with its own component; pass an untagged logger.
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: config: %v", ErrInvalidInput, err)
	}

	return &Engine{
		config:     cfg,
		scorer:     NewScorer(ScorerConfig{HistoryWeight: cfg.HistoryWeight}),
		aggregator: NewAggregator(cfg.DissentPenalty, cfg.RecommendationThreshold),
		logger:     logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.config
}

// Scorer returns the per-player scorer, for callers that explain breakdowns
func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// request carries the per-run values derived from a Request
type request struct {
	players []string
	prefs   []NormalizedPreferences
	history map[HistoryKey][]HistoryEntry
	now     time.Time
}

// Recommend ranks the catalog for the present group.
// Only ErrInvalidInput (or ctx cancellation) stops the pipeline; bad
// preference or history records degrade to neutral scores instead.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	playerCount := len(req.Players)
	if req.DesiredPlayerCount != nil {
		playerCount = *req.DesiredPlayerCount
	}

	topN := req.TopN
	if topN == 0 {
		topN = e.config.TopN
	}

	result := &Result{
		Recommendations: []GroupRecommendation{},
		PlayerCount:     playerCount,
	}

	if len(req.Catalog) == 0 {
		result.Outcome = OutcomeEmptyCatalog
		return result, nil
	}

	candidates, eliminated := FilterByPlayerCount(playerCount, req.Catalog)
	result.EliminatedByPlayerCount = eliminated
	if req.TimeBudget != nil {
		candidates, eliminated = FilterByTimeBudget(*req.TimeBudget, candidates)
		result.EliminatedByTime = eliminated
	}
	result.CandidateCount = len(candidates)

	logger := e.logger.With().
		Int("players", playerCount).
		Int("catalog", len(req.Catalog)).
		Int("candidates", len(candidates)).
		Logger()

	if len(candidates) == 0 {
		result.Outcome = OutcomeNoGamesFitGroup
		if result.EliminatedByTime > 0 {
			result.Outcome = OutcomeNoGamesFitTime
		}
		logger.Debug().
			Int("eliminated_by_player_count", result.EliminatedByPlayerCount).
			Int("eliminated_by_time", result.EliminatedByTime).
			Msg("no candidate games")
		return result, nil
	}

	run := request{
		players: req.Players,
		prefs:   make([]NormalizedPreferences, len(req.Players)),
		history: req.History,
		now:     req.Now,
	}
	if run.now.IsZero() {
		run.now = time.Now()
	}
	for i, id := range req.Players {
		run.prefs[i] = NormalizePreferences(req.Preferences[id])
		run.prefs[i].PlayerID = id
	}

	// Large catalogs keep breakdowns only for the games that make the cut
	withBreakdowns := topN == 0 || len(candidates) <= e.config.BreakdownRetentionLimit

	recs, discarded, err := e.scoreCandidates(ctx, run, candidates, withBreakdowns)
	if err != nil {
		return nil, err
	}
	if discarded > 0 {
		logger.Debug().Int64("discarded_ratings", discarded).Msg("ignored out-of-range history ratings")
	}

	games := make(map[string]Game, len(candidates))
	for _, g := range candidates {
		games[g.ID] = g
	}
	ranked := Rank(recs, games, PreferredUnion(run.prefs), topN)

	if !withBreakdowns {
		for i := range ranked {
			ranked[i] = e.scoreGame(run, games[ranked[i].GameID], true, nil)
		}
	}

	result.Recommendations = ranked
	switch {
	case result.RecommendedCount() == 0:
		result.Outcome = OutcomeNoneAboveThreshold
	default:
		result.Outcome = OutcomeOK
	}

	logger.Debug().
		Int("returned", len(ranked)).
		Int("recommended", result.RecommendedCount()).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation complete")

	return result, nil
}

// scoreCandidates scores every candidate, fanning out across workers once the
// catalog is large enough. Results keep candidate order either way.
func (e *Engine) scoreCandidates(ctx context.Context, run request, candidates []Game, withBreakdowns bool) ([]GroupRecommendation, int64, error) {
	recs := make([]GroupRecommendation, len(candidates))
	var discarded atomic.Int64

	if len(candidates) < e.config.ParallelThreshold {
		for i, g := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
			recs[i] = e.scoreGame(run, g, withBreakdowns, &discarded)
		}
		return recs, discarded.Load(), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.workers())

	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recs[i] = e.scoreGame(run, candidates[i], withBreakdowns, &discarded)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return recs, discarded.Load(), nil
}

// scoreGame scores one game for every present player and aggregates
func (e *Engine) scoreGame(run request, g Game, withBreakdowns bool, discarded *atomic.Int64) GroupRecommendation {
	scores := make([]float64, len(run.players))
	var breakdowns []ScoreBreakdown
	if withBreakdowns {
		breakdowns = make([]ScoreBreakdown, len(run.players))
	}

	for i, playerID := range run.players {
		entries := run.history[HistoryKey{PlayerID: playerID, GameID: g.ID}]
		affinity := CalculateAffinity(playerID, g.ID, entries, run.now)
		if discarded != nil && affinity.Discarded > 0 {
			discarded.Add(int64(affinity.Discarded))
		}

		b := e.scorer.Score(g, run.prefs[i], affinity)
		scores[i] = b.PlayerScore
		if withBreakdowns {
			breakdowns[i] = b
		}
	}

	group, mean, lowest := e.aggregator.aggregate(scores)
	return GroupRecommendation{
		GameID:      g.ID,
		GameName:    g.Name,
		GroupScore:  group,
		MeanScore:   mean,
		MinScore:    lowest,
		Breakdowns:  breakdowns,
		Recommended: e.aggregator.Recommended(group),
	}
}

func validateRequest(req Request) error {
	if len(req.Players) == 0 {
		return invalidInput("at least one player must be present")
	}

	seen := make(map[string]struct{}, len(req.Players))
	for _, id := range req.Players {
		if strings.TrimSpace(id) == "" {
			return invalidInput("player id must not be blank")
		}
		if _, dup := seen[id]; dup {
			return invalidInput("player %q listed more than once", id)
		}
		seen[id] = struct{}{}
	}

	if req.DesiredPlayerCount != nil && *req.DesiredPlayerCount < 1 {
		return invalidInput("desired player count must be at least 1, got %d", *req.DesiredPlayerCount)
	}
	if req.TimeBudget != nil && *req.TimeBudget < 1 {
		return invalidInput("time budget must be at least 1 minute, got %d", *req.TimeBudget)
	}
	if req.TopN < 0 {
		return invalidInput("top n must be non-negative, got %d", req.TopN)
	}

	return nil
}
