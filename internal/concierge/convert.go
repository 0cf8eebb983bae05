package concierge

import (
	"github.com/dandam/gamenight/internal/database"
	"github.com/dandam/gamenight/internal/recommend"
)

// EngineGame converts a stored game into the engine's catalog record
func EngineGame(g database.Game) recommend.Game {
	return recommend.Game{
		ID:               g.ID,
		Name:             g.Name,
		MinPlayers:       g.MinPlayers,
		MaxPlayers:       g.MaxPlayers,
		AveragePlayTime:  g.AveragePlayTime,
		ComplexityRating: g.ComplexityRating,
		Categories:       g.Categories,
	}
}

// EnginePreferences converts stored preferences into engine preferences
func EnginePreferences(p *database.Preferences) *recommend.PlayerPreferences {
	if p == nil {
		return nil
	}
	return &recommend.PlayerPreferences{
		ID:                   p.ID,
		PlayerID:             p.PlayerID,
		MinPlayTime:          p.MinPlayTime,
		MaxPlayTime:          p.MaxPlayTime,
		PreferredPlayerCount: p.PreferredPlayerCount,
		ComplexityMin:        p.ComplexityMin,
		ComplexityMax:        p.ComplexityMax,
		PreferredCategories:  p.Categories,
	}
}

// EngineHistory groups stored plays by (player, game)
func EngineHistory(plays []database.Play) map[recommend.HistoryKey][]recommend.HistoryEntry {
	history := make(map[recommend.HistoryKey][]recommend.HistoryEntry)
	for _, p := range plays {
		entry := recommend.HistoryEntry{
			PlayerID: p.PlayerID,
			GameID:   p.GameID,
			PlayedAt: p.PlayedAt,
			Rating:   p.Rating,
		}
		if p.Notes != nil {
			entry.Notes = *p.Notes
		}
		key := recommend.HistoryKey{PlayerID: p.PlayerID, GameID: p.GameID}
		history[key] = append(history[key], entry)
	}
	return history
}
