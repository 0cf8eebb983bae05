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

const playerColumns = `id, username, display_name, created_at, updated_at`

// CreatePlayer inserts a new player
func (db *DB) CreatePlayer(ctx context.Context, p *Player) error {
	return insertPlayer(ctx, db.DB, p)
}

// SavePlayer inserts a player, or updates the display name of the existing
// player with the same username
func (t *Tx) SavePlayer(ctx context.Context, p *Player) (created bool, err error) {
	existing, err := getPlayerByUsername(ctx, t.tx, p.Username)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return true, insertPlayer(ctx, t.tx, p)
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if p.DisplayName == "" {
		p.DisplayName = existing.DisplayName
	}
	p.UpdatedAt = time.Now().UTC()
	_, err = t.tx.ExecContext(ctx, `
		UPDATE players SET display_name = ?, updated_at = ? WHERE id = ?
	`, p.DisplayName, p.UpdatedAt, p.ID)
	return false, err
}

// GetPlayer retrieves a player by ID
func (db *DB) GetPlayer(ctx context.Context, id string) (*Player, error) {
	return scanPlayer(db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id))
}

// GetPlayerByUsername retrieves a player by username (case-insensitive)
func (db *DB) GetPlayerByUsername(ctx context.Context, username string) (*Player, error) {
	return getPlayerByUsername(ctx, db.DB, username)
}

// ListPlayers retrieves all players ordered by username
func (db *DB) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+playerColumns+` FROM players ORDER BY username COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// DeletePlayer removes a player with their preferences and play history
func (db *DB) DeletePlayer(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("player not found: %s", id)
	}
	return nil
}

// UpsertPreferences creates or replaces a player's preferences
func (db *DB) UpsertPreferences(ctx context.Context, prefs *Preferences) error {
	return db.Transaction(ctx, func(tx *Tx) error {
		return tx.UpsertPreferences(ctx, prefs)
	})
}

// UpsertPreferences creates or replaces a player's preferences
func (t *Tx) UpsertPreferences(ctx context.Context, prefs *Preferences) error {
	now := time.Now().UTC()
	if prefs.ID == "" {
		prefs.ID = uuid.New().String()
	}
	if prefs.CreatedAt.IsZero() {
		prefs.CreatedAt = now
	}
	prefs.UpdatedAt = now

	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO player_preferences (
			id, player_id, min_play_time, max_play_time, preferred_player_count,
			complexity_min, complexity_max, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			min_play_time = excluded.min_play_time,
			max_play_time = excluded.max_play_time,
			preferred_player_count = excluded.preferred_player_count,
			complexity_min = excluded.complexity_min,
			complexity_max = excluded.complexity_max,
			updated_at = excluded.updated_at
	`,
		prefs.ID, prefs.PlayerID, NullInt64(prefs.MinPlayTime), NullInt64(prefs.MaxPlayTime),
		NullInt64(prefs.PreferredPlayerCount), NullFloat64(prefs.ComplexityMin),
		NullFloat64(prefs.ComplexityMax), prefs.CreatedAt, prefs.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if _, err := t.tx.ExecContext(ctx, `DELETE FROM preferred_categories WHERE player_id = ?`, prefs.PlayerID); err != nil {
		return err
	}
	for _, c := range prefs.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, err := t.tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO preferred_categories (player_id, category) VALUES (?, ?)
		`, prefs.PlayerID, c); err != nil {
			return err
		}
	}
	return nil
}

// GetPreferences retrieves a player's preferences, or nil if none are stored
func (db *DB) GetPreferences(ctx context.Context, playerID string) (*Preferences, error) {
	all, err := db.PreferencesFor(ctx, []string{playerID})
	if err != nil {
		return nil, err
	}
	return all[playerID], nil
}

// PreferencesFor retrieves stored preferences for the given players, keyed by
// player ID. Players without preferences are absent from the map.
func (db *DB) PreferencesFor(ctx context.Context, playerIDs []string) (map[string]*Preferences, error) {
	result := make(map[string]*Preferences)
	if len(playerIDs) == 0 {
		return result, nil
	}

	in, args := inClause(playerIDs)

	rows, err := db.QueryContext(ctx, `
		SELECT id, player_id, min_play_time, max_play_time, preferred_player_count,
			complexity_min, complexity_max, created_at, updated_at
		FROM player_preferences
		WHERE player_id IN (`+in+`)
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p := &Preferences{Categories: []string{}}
		var minTime, maxTime, count sql.NullInt64
		var cMin, cMax sql.NullFloat64

		if err := rows.Scan(
			&p.ID, &p.PlayerID, &minTime, &maxTime, &count,
			&cMin, &cMax, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}

		p.MinPlayTime = IntPtr(minTime)
		p.MaxPlayTime = IntPtr(maxTime)
		p.PreferredPlayerCount = IntPtr(count)
		p.ComplexityMin = Float64Ptr(cMin)
		p.ComplexityMax = Float64Ptr(cMax)
		result[p.PlayerID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	catRows, err := db.QueryContext(ctx, `
		SELECT player_id, category FROM preferred_categories WHERE player_id IN (`+in+`)
	`, args...)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()

	for catRows.Next() {
		var playerID, category string
		if err := catRows.Scan(&playerID, &category); err != nil {
			return nil, err
		}
		if p, ok := result[playerID]; ok {
			p.Categories = append(p.Categories, category)
		}
	}

	for _, p := range result {
		sort.Strings(p.Categories)
	}
	return result, catRows.Err()
}

func insertPlayer(ctx context.Context, q querier, p *Player) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Username
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := q.ExecContext(ctx, `
		INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Username, p.DisplayName, p.CreatedAt, p.UpdatedAt)
	return err
}

func getPlayerByUsername(ctx context.Context, q querier, username string) (*Player, error) {
	return scanPlayer(q.QueryRowContext(ctx, `
		SELECT `+playerColumns+` FROM players WHERE username = ? COLLATE NOCASE
	`, strings.TrimSpace(username)))
}

func scanPlayer(row rowScanner) (*Player, error) {
	p := &Player{}
	err := row.Scan(&p.ID, &p.Username, &p.DisplayName, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// inClause builds a placeholder list and argument slice for an IN clause
func inClause(values []string) (string, []any) {
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return strings.Join(placeholders, ", "), args
}

// GetPlayerByUsername retrieves a player by username inside the transaction
func (t *Tx) GetPlayerByUsername(ctx context.Context, username string) (*Player, error) {
	return getPlayerByUsername(ctx, t.tx, username)
}
