package recommend

import "time"

// Game is a catalog entry as seen by the engine
type Game struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	MinPlayers       int      `json:"min_players"`
	MaxPlayers       int      `json:"max_players"`
	AveragePlayTime  int      `json:"average_play_time"` // minutes
	ComplexityRating float64  `json:"complexity_rating"` // 1.0-5.0
	Categories       []string `json:"categories"`
}

// PlayerPreferences holds a player's stated preferences.
// A nil pointer means the player has no preference for that field.
type PlayerPreferences struct {
	ID                   string   `json:"id"`
	PlayerID             string   `json:"player_id"`
	MinPlayTime          *int     `json:"min_play_time,omitempty"`
	MaxPlayTime          *int     `json:"max_play_time,omitempty"`
	PreferredPlayerCount *int     `json:"preferred_player_count,omitempty"`
	ComplexityMin        *float64 `json:"preferred_complexity_min,omitempty"`
	ComplexityMax        *float64 `json:"preferred_complexity_max,omitempty"`
	PreferredCategories  []string `json:"preferred_categories,omitempty"`
}

// HistoryEntry is one play session of a game by a player
type HistoryEntry struct {
	PlayerID string    `json:"player_id"`
	GameID   string    `json:"game_id"`
	PlayedAt time.Time `json:"played_at"`
	Rating   *float64  `json:"rating,omitempty"` // 1.0-5.0
	Notes    string    `json:"notes,omitempty"`
}

// HistoryKey indexes history entries by (player, game)
type HistoryKey struct {
	PlayerID string
	GameID   string
}

// FitStatus describes how a single factor matched
type FitStatus string

const (
	FitCompatible   FitStatus = "compatible"
	FitIncompatible FitStatus = "incompatible"
	FitNoPreference FitStatus = "no_preference"
)

// Factor names used in ScoreBreakdown.Details
const (
	FactorPlayerCount = "player_count"
	FactorPlayTime    = "play_time"
	FactorComplexity  = "complexity"
	FactorCategories  = "categories"
	FactorHistory     = "history"
)

// ScoreBreakdown is one player's compatibility with one game.
// PlayerCountFit is informational only and never contributes to PlayerScore.
type ScoreBreakdown struct {
	PlayerID           string               `json:"player_id"`
	PlayerCountFit     float64              `json:"player_count_fit"`
	TimeFit            float64              `json:"time_fit"`
	ComplexityFit      float64              `json:"complexity_fit"`
	CategoryFit        float64              `json:"category_fit"`
	HistoricalAffinity float64              `json:"historical_affinity"`
	PlayerScore        float64              `json:"player_score"`
	PlayCount          int                  `json:"play_count"`
	Details            map[string]FitStatus `json:"details"`
}

// GroupRecommendation is the aggregated result for one candidate game
type GroupRecommendation struct {
	GameID      string           `json:"game_id"`
	GameName    string           `json:"game_name"`
	GroupScore  float64          `json:"group_score"`
	MeanScore   float64          `json:"mean_score"`
	MinScore    float64          `json:"min_score"`
	Breakdowns  []ScoreBreakdown `json:"breakdowns,omitempty"`
	Recommended bool             `json:"recommended"`
}

// Outcome summarises a result for callers that render empty states.
// OutcomeNoGamesFitGroup means the player count alone left nothing;
// OutcomeNoGamesFitTime means some games fit the group but none fit the
// time budget.
type Outcome string

const (
	OutcomeOK                 Outcome = "ok"
	OutcomeEmptyCatalog       Outcome = "empty_catalog"
	OutcomeNoGamesFitGroup    Outcome = "no_games_fit_group"
	OutcomeNoGamesFitTime     Outcome = "no_games_fit_time_budget"
	OutcomeNoneAboveThreshold Outcome = "none_above_threshold"
)

// Request is the input to a single recommendation run
type Request struct {
	// Players are the present player IDs, in display order
	Players []string

	Catalog     []Game
	Preferences map[string]*PlayerPreferences
	History     map[HistoryKey][]HistoryEntry

	// TopN limits the output (0 = use config, which defaults to all)
	TopN int

	// DesiredPlayerCount overrides len(Players) for the hard filter
	DesiredPlayerCount *int

	// TimeBudget eliminates games longer than this many minutes
	TimeBudget *int

	// Now is the evaluation time handed to the affinity calculator
	Now time.Time
}

// Result is the ranked output of a recommendation run
type Result struct {
	Recommendations         []GroupRecommendation `json:"recommendations"`
	PlayerCount             int                   `json:"player_count"`
	CandidateCount          int                   `json:"candidate_count"`
	EliminatedByPlayerCount int                   `json:"eliminated_by_player_count"`
	EliminatedByTime        int                   `json:"eliminated_by_time"`
	Outcome                 Outcome               `json:"outcome"`
}

// RecommendedCount returns how many recommendations cleared the threshold
func (r *Result) RecommendedCount() int {
	n := 0
	for _, rec := range r.Recommendations {
		if rec.Recommended {
			n++
		}
	}
	return n
}
