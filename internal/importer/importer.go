// Package importer loads game libraries from JSON files into the database.
package importer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dandam/gamenight/internal/database"
)

// Summary counts what an import changed
type Summary struct {
	GamesCreated   int `json:"games_created"`
	GamesUpdated   int `json:"games_updated"`
	PlayersCreated int `json:"players_created"`
	PlayersUpdated int `json:"players_updated"`
	Preferences    int `json:"preferences"`
	Plays          int `json:"plays"`
}

// Importer writes validated libraries to the database
type Importer struct {
	db     *database.DB
	logger zerolog.Logger
}

// New creates an Importer
func New(db *database.DB, logger zerolog.Logger) *Importer {
	return &Importer{
		db:     db,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// ImportFile decodes, validates and imports a library file
func (i *Importer) ImportFile(ctx context.Context, path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	defer f.Close()

	lib, err := Decode(f)
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, lib)
}

// Import writes a library in a single transaction. Games are matched by
// name and players by username; existing records are updated in place.
// Plays are always appended.
func (i *Importer) Import(ctx context.Context, lib *Library) (*Summary, error) {
	if err := lib.Validate(); err != nil {
		return nil, err
	}

	summary := &Summary{}

	err := i.db.Transaction(ctx, func(tx *database.Tx) error {
		gameIDs := make(map[string]string, len(lib.Games))
		for _, rec := range lib.Games {
			g := rec.toGame()
			created, err := tx.SaveGame(ctx, g)
			if err != nil {
				return fmt.Errorf("failed to save game %q: %w", rec.Name, err)
			}
			if created {
				summary.GamesCreated++
			} else {
				summary.GamesUpdated++
			}
			gameIDs[key(rec.Name)] = g.ID
		}

		playerIDs := make(map[string]string, len(lib.Players))
		for _, rec := range lib.Players {
			p := &database.Player{Username: strings.TrimSpace(rec.Username), DisplayName: rec.DisplayName}
			created, err := tx.SavePlayer(ctx, p)
			if err != nil {
				return fmt.Errorf("failed to save player %q: %w", rec.Username, err)
			}
			if created {
				summary.PlayersCreated++
			} else {
				summary.PlayersUpdated++
			}
			playerIDs[key(rec.Username)] = p.ID

			if rec.Preferences != nil {
				if err := tx.UpsertPreferences(ctx, rec.Preferences.toPreferences(p.ID)); err != nil {
					return fmt.Errorf("failed to save preferences for %q: %w", rec.Username, err)
				}
				summary.Preferences++
			}
		}

		for n, rec := range lib.Plays {
			playerID, err := resolvePlayer(ctx, tx, playerIDs, rec.Player)
			if err != nil {
				return fmt.Errorf("plays[%d]: %w", n, err)
			}
			gameID, err := resolveGame(ctx, tx, gameIDs, rec.Game)
			if err != nil {
				return fmt.Errorf("plays[%d]: %w", n, err)
			}

			play := &database.Play{
				PlayerID: playerID,
				GameID:   gameID,
				PlayedAt: rec.PlayedAt,
				Rating:   rec.Rating,
			}
			if rec.Notes != "" {
				notes := rec.Notes
				play.Notes = &notes
			}
			if err := tx.AddPlay(ctx, play); err != nil {
				return fmt.Errorf("plays[%d]: %w", n, err)
			}
			summary.Plays++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info().
		Int("games_created", summary.GamesCreated).
		Int("games_updated", summary.GamesUpdated).
		Int("players_created", summary.PlayersCreated).
		Int("plays", summary.Plays).
		Msg("library imported")

	return summary, nil
}

func resolvePlayer(ctx context.Context, tx *database.Tx, seen map[string]string, username string) (string, error) {
	if id, ok := seen[key(username)]; ok {
		return id, nil
	}
	p, err := tx.GetPlayerByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", fmt.Errorf("%w: unknown player %q", ErrInvalidLibrary, username)
	}
	seen[key(username)] = p.ID
	return p.ID, nil
}

func resolveGame(ctx context.Context, tx *database.Tx, seen map[string]string, name string) (string, error) {
	if id, ok := seen[key(name)]; ok {
		return id, nil
	}
	g, err := tx.GetGameByName(ctx, name)
	if err != nil {
		return "", err
	}
	if g == nil {
		return "", fmt.Errorf("%w: unknown game %q", ErrInvalidLibrary, name)
	}
	seen[key(name)] = g.ID
	return g.ID, nil
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (r GameRecord) toGame() *database.Game {
	g := &database.Game{
		Name:             strings.TrimSpace(r.Name),
		MinPlayers:       r.MinPlayers,
		MaxPlayers:       r.MaxPlayers,
		AveragePlayTime:  r.AveragePlayTime,
		ComplexityRating: r.ComplexityRating,
		Categories:       r.Categories,
	}
	if r.Description != "" {
		desc := r.Description
		g.Description = &desc
	}
	return g
}

func (r PreferencesRecord) toPreferences(playerID string) *database.Preferences {
	return &database.Preferences{
		PlayerID:             playerID,
		MinPlayTime:          r.MinPlayTime,
		MaxPlayTime:          r.MaxPlayTime,
		PreferredPlayerCount: r.PreferredPlayerCount,
		ComplexityMin:        r.ComplexityMin,
		ComplexityMax:        r.ComplexityMax,
		Categories:           r.Categories,
	}
}
