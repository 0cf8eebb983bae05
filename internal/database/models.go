package database

import (
	"database/sql"
	"strconv"
	"time"
)

// Game represents a board game in the library
type Game struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	MinPlayers       int       `json:"min_players"`
	MaxPlayers       int       `json:"max_players"`
	AveragePlayTime  int       `json:"average_play_time"`
	ComplexityRating float64   `json:"complexity_rating"`
	Categories       []string  `json:"categories"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PlayerRange returns the supported player count as "min-max"
func (g *Game) PlayerRange() string {
	if g.MinPlayers == g.MaxPlayers {
		return strconv.Itoa(g.MinPlayers)
	}
	return strconv.Itoa(g.MinPlayers) + "-" + strconv.Itoa(g.MaxPlayers)
}

// Player represents one member of the gaming group
type Player struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Preferences holds a player's stored preferences. Nil fields are unset.
type Preferences struct {
	ID                   string    `json:"id"`
	PlayerID             string    `json:"player_id"`
	MinPlayTime          *int      `json:"min_play_time,omitempty"`
	MaxPlayTime          *int      `json:"max_play_time,omitempty"`
	PreferredPlayerCount *int      `json:"preferred_player_count,omitempty"`
	ComplexityMin        *float64  `json:"preferred_complexity_min,omitempty"`
	ComplexityMax        *float64  `json:"preferred_complexity_max,omitempty"`
	Categories           []string  `json:"preferred_categories"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Play is a single logged play of a game by a player
type Play struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	GameID    string    `json:"game_id"`
	GameName  string    `json:"game_name,omitempty"`
	PlayedAt  time.Time `json:"played_at"`
	Rating    *float64  `json:"rating,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats represents aggregate library statistics
type Stats struct {
	TotalGames          int         `json:"total_games"`
	TotalPlayers        int         `json:"total_players"`
	PlayersWithPrefs    int         `json:"players_with_preferences"`
	TotalPlays          int         `json:"total_plays"`
	RatedPlays          int         `json:"rated_plays"`
	AverageRating       float64     `json:"average_rating"`
	AverageComplexity   float64     `json:"average_complexity"`
	CategoriesInLibrary int         `json:"categories_in_library"`
	LastPlayedAt        *time.Time  `json:"last_played_at,omitempty"`
	MostPlayed          []GameCount `json:"most_played,omitempty"`
}

// GameCount pairs a game name with a play count
type GameCount struct {
	Name  string `json:"name"`
	Plays int    `json:"plays"`
}

// GameListOptions contains options for listing games
type GameListOptions struct {
	PlayerCount *int    // only games that seat this many
	MaxPlayTime *int    // only games at most this long
	Category    *string // only games in this category
	Limit       int
	Offset      int
}

// HistoryOptions contains options for listing plays
type HistoryOptions struct {
	PlayerID *string
	GameID   *string
	Since    *time.Time
	Limit    int
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullFloat64 is a helper to convert *float64 to sql.NullFloat64
func NullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// NullInt64 is a helper to convert *int to sql.NullInt64
func NullInt64(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// Float64Ptr converts sql.NullFloat64 to *float64
func Float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

// IntPtr converts sql.NullInt64 to *int
func IntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
