package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const gameColumns = `id, name, description, min_players, max_players,
	average_play_time, complexity_rating, created_at, updated_at`

// CreateGame inserts a new game with its categories
func (db *DB) CreateGame(ctx context.Context, g *Game) error {
	return db.Transaction(ctx, func(tx *Tx) error {
		return insertGame(ctx, tx.tx, g)
	})
}

// SaveGame inserts a game, or updates the existing game with the same name
func (t *Tx) SaveGame(ctx context.Context, g *Game) (created bool, err error) {
	existing, err := getGameByName(ctx, t.tx, g.Name)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return true, insertGame(ctx, t.tx, g)
	}

	g.ID = existing.ID
	g.CreatedAt = existing.CreatedAt
	return false, updateGame(ctx, t.tx, g)
}

// UpdateGame updates an existing game and replaces its categories
func (db *DB) UpdateGame(ctx context.Context, g *Game) error {
	return db.Transaction(ctx, func(tx *Tx) error {
		return updateGame(ctx, tx.tx, g)
	})
}

// GetGame retrieves a game by ID
func (db *DB) GetGame(ctx context.Context, id string) (*Game, error) {
	g, err := scanGame(db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if err != nil || g == nil {
		return g, err
	}
	return g, db.attachCategories(ctx, []*Game{g})
}

// GetGameByName retrieves a game by name (case-insensitive)
func (db *DB) GetGameByName(ctx context.Context, name string) (*Game, error) {
	g, err := getGameByName(ctx, db.DB, name)
	if err != nil || g == nil {
		return g, err
	}
	return g, db.attachCategories(ctx, []*Game{g})
}

// ListGames retrieves games with optional filters, ordered by name
func (db *DB) ListGames(ctx context.Context, opts GameListOptions) ([]Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE 1=1`
	args := []interface{}{}

	if opts.PlayerCount != nil {
		query += " AND min_players <= ? AND max_players >= ?"
		args = append(args, *opts.PlayerCount, *opts.PlayerCount)
	}
	if opts.MaxPlayTime != nil {
		query += " AND average_play_time <= ?"
		args = append(args, *opts.MaxPlayTime)
	}
	if opts.Category != nil {
		query += " AND id IN (SELECT game_id FROM game_categories WHERE category = ? COLLATE NOCASE)"
		args = append(args, *opts.Category)
	}

	query += " ORDER BY name COLLATE NOCASE, id"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	return db.queryGames(ctx, query, args...)
}

// SearchGames finds games whose name, description or category matches
func (db *DB) SearchGames(ctx context.Context, query string) ([]Game, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	return db.queryGames(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE LOWER(name) LIKE ?
		   OR LOWER(COALESCE(description, '')) LIKE ?
		   OR id IN (SELECT game_id FROM game_categories WHERE LOWER(category) LIKE ?)
		ORDER BY name COLLATE NOCASE, id
	`, pattern, pattern, pattern)
}

// DeleteGame removes a game and, through cascades, its categories and plays
func (db *DB) DeleteGame(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("game not found: %s", id)
	}
	return nil
}

// ListCategories returns every category used in the library, sorted
func (db *DB) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT category FROM game_categories ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func insertGame(ctx context.Context, q querier, g *Game) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := q.ExecContext(ctx, `
		INSERT INTO games (`+gameColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		g.ID, g.Name, NullString(g.Description), g.MinPlayers, g.MaxPlayers,
		g.AveragePlayTime, g.ComplexityRating, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return replaceGameCategories(ctx, q, g.ID, g.Categories)
}

func updateGame(ctx context.Context, q querier, g *Game) error {
	g.UpdatedAt = time.Now().UTC()

	result, err := q.ExecContext(ctx, `
		UPDATE games SET
			name = ?, description = ?, min_players = ?, max_players = ?,
			average_play_time = ?, complexity_rating = ?, updated_at = ?
		WHERE id = ?
	`,
		g.Name, NullString(g.Description), g.MinPlayers, g.MaxPlayers,
		g.AveragePlayTime, g.ComplexityRating, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("game not found: %s", g.ID)
	}

	return replaceGameCategories(ctx, q, g.ID, g.Categories)
}

func replaceGameCategories(ctx context.Context, q querier, gameID string, categories []string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM game_categories WHERE game_id = ?`, gameID); err != nil {
		return err
	}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, err := q.ExecContext(ctx, `
			INSERT OR IGNORE INTO game_categories (game_id, category) VALUES (?, ?)
		`, gameID, c); err != nil {
			return err
		}
	}
	return nil
}

func getGameByName(ctx context.Context, q querier, name string) (*Game, error) {
	return scanGame(q.QueryRowContext(ctx, `
		SELECT `+gameColumns+` FROM games WHERE name = ? COLLATE NOCASE
	`, strings.TrimSpace(name)))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*Game, error) {
	g := &Game{}
	var description sql.NullString

	err := row.Scan(
		&g.ID, &g.Name, &description, &g.MinPlayers, &g.MaxPlayers,
		&g.AveragePlayTime, &g.ComplexityRating, &g.CreatedAt, &g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g.Description = StringPtr(description)
	return g, nil
}

func (db *DB) queryGames(ctx context.Context, query string, args ...any) ([]Game, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := db.attachCategories(ctx, games); err != nil {
		return nil, err
	}

	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = *g
	}
	return out, nil
}

// attachCategories loads categories for the given games in one query
func (db *DB) attachCategories(ctx context.Context, games []*Game) error {
	if len(games) == 0 {
		return nil
	}

	byID := make(map[string]*Game, len(games))
	ids := make([]string, len(games))
	for i, g := range games {
		byID[g.ID] = g
		g.Categories = []string{}
		ids[i] = g.ID
	}

	in, args := inClause(ids)
	rows, err := db.QueryContext(ctx, `
		SELECT game_id, category FROM game_categories WHERE game_id IN (`+in+`)
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var gameID, category string
		if err := rows.Scan(&gameID, &category); err != nil {
			return err
		}
		if g, ok := byID[gameID]; ok {
			g.Categories = append(g.Categories, category)
		}
	}

	for _, g := range games {
		sort.Strings(g.Categories)
	}
	return rows.Err()
}

// GetGameByName retrieves a game by name inside the transaction
func (t *Tx) GetGameByName(ctx context.Context, name string) (*Game, error) {
	return getGameByName(ctx, t.tx, name)
}
