package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AddPlay records a play of a game by a player
func (db *DB) AddPlay(ctx context.Context, p *Play) error {
	return insertPlay(ctx, db.DB, p)
}

// AddPlay records a play of a game by a player
func (t *Tx) AddPlay(ctx context.Context, p *Play) error {
	return insertPlay(ctx, t.tx, p)
}

// ListPlays retrieves plays, newest first, with optional filters
func (db *DB) ListPlays(ctx context.Context, opts HistoryOptions) ([]Play, error) {
	query := `
		SELECT h.id, h.player_id, h.game_id, g.name, h.played_at, h.rating, h.notes, h.created_at
		FROM play_history h
		JOIN games g ON g.id = h.game_id
		WHERE 1=1`
	args := []interface{}{}

	if opts.PlayerID != nil {
		query += " AND h.player_id = ?"
		args = append(args, *opts.PlayerID)
	}
	if opts.GameID != nil {
		query += " AND h.game_id = ?"
		args = append(args, *opts.GameID)
	}
	if opts.Since != nil {
		query += " AND h.played_at >= ?"
		args = append(args, opts.Since.UTC())
	}

	query += " ORDER BY h.played_at DESC, h.id"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	return db.queryPlays(ctx, query, args...)
}

// HistoryFor retrieves every play by the given players, oldest first
func (db *DB) HistoryFor(ctx context.Context, playerIDs []string) ([]Play, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	in, args := inClause(playerIDs)
	return db.queryPlays(ctx, `
		SELECT h.id, h.player_id, h.game_id, g.name, h.played_at, h.rating, h.notes, h.created_at
		FROM play_history h
		JOIN games g ON g.id = h.game_id
		WHERE h.player_id IN (`+in+`)
		ORDER BY h.played_at, h.id
	`, args...)
}

// GetStats calculates library statistics
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM games`, &stats.TotalGames},
		{`SELECT COUNT(*) FROM players`, &stats.TotalPlayers},
		{`SELECT COUNT(*) FROM player_preferences`, &stats.PlayersWithPrefs},
		{`SELECT COUNT(*) FROM play_history`, &stats.TotalPlays},
		{`SELECT COUNT(*) FROM play_history WHERE rating IS NOT NULL`, &stats.RatedPlays},
		{`SELECT COUNT(DISTINCT category) FROM game_categories`, &stats.CategoriesInLibrary},
	}
	for _, c := range counts {
		if err := db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	var avgRating, avgComplexity sql.NullFloat64
	if err := db.QueryRowContext(ctx, `SELECT AVG(rating) FROM play_history`).Scan(&avgRating); err != nil {
		return nil, err
	}
	if err := db.QueryRowContext(ctx, `SELECT AVG(complexity_rating) FROM games`).Scan(&avgComplexity); err != nil {
		return nil, err
	}
	stats.AverageRating = avgRating.Float64
	stats.AverageComplexity = avgComplexity.Float64

	var lastPlayed time.Time
	err := db.QueryRowContext(ctx, `
		SELECT played_at FROM play_history ORDER BY played_at DESC LIMIT 1
	`).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err == nil {
		stats.LastPlayedAt = &lastPlayed
	}

	rows, err := db.QueryContext(ctx, `
		SELECT g.name, COUNT(*) AS plays
		FROM play_history h
		JOIN games g ON g.id = h.game_id
		GROUP BY g.id
		ORDER BY plays DESC, g.name COLLATE NOCASE
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var gc GameCount
		if err := rows.Scan(&gc.Name, &gc.Plays); err != nil {
			return nil, err
		}
		stats.MostPlayed = append(stats.MostPlayed, gc)
	}

	return stats, rows.Err()
}

func insertPlay(ctx context.Context, q querier, p *Play) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.PlayedAt.IsZero() {
		p.PlayedAt = time.Now()
	}
	p.PlayedAt = p.PlayedAt.UTC()
	p.CreatedAt = time.Now().UTC()

	_, err := q.ExecContext(ctx, `
		INSERT INTO play_history (id, player_id, game_id, played_at, rating, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.PlayerID, p.GameID, p.PlayedAt, NullFloat64(p.Rating), NullString(p.Notes), p.CreatedAt)
	return err
}

func (db *DB) queryPlays(ctx context.Context, query string, args ...any) ([]Play, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var rating sql.NullFloat64
		var notes sql.NullString

		if err := rows.Scan(
			&p.ID, &p.PlayerID, &p.GameID, &p.GameName, &p.PlayedAt, &rating, &notes, &p.CreatedAt,
		); err != nil {
			return nil, err
		}

		p.Rating = Float64Ptr(rating)
		p.Notes = StringPtr(notes)
		plays = append(plays, p)
	}
	return plays, rows.Err()
}
