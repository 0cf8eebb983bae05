package concierge

import (
	"context"
	"fmt"
	"sort"

	"github.com/dandam/gamenight/internal/database"
	"github.com/dandam/gamenight/internal/recommend"
)

// recentPlayLimit caps the plays included in a profile
const recentPlayLimit = 10

// Profile is a player with their preferences and play record
type Profile struct {
	Player        database.Player       `json:"player"`
	Preferences   *database.Preferences `json:"preferences,omitempty"`
	TotalPlays    int                   `json:"total_plays"`
	AverageRating *float64              `json:"average_rating,omitempty"`
	RecentPlays   []database.Play       `json:"recent_plays"`
}

// Profile loads a player by username or ID
func (c *Concierge) Profile(ctx context.Context, ref string) (*Profile, error) {
	players, err := c.ResolvePlayers(ctx, []string{ref})
	if err != nil {
		return nil, err
	}
	p := players[0]

	prefs, err := c.store.PreferencesFor(ctx, []string{p.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	plays, err := c.store.HistoryFor(ctx, []string{p.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load play history: %w", err)
	}

	profile := &Profile{
		Player:      p,
		Preferences: prefs[p.ID],
		TotalPlays:  len(plays),
		RecentPlays: []database.Play{},
	}

	var sum float64
	var rated int
	for _, play := range plays {
		if play.Rating != nil && *play.Rating >= recommend.MinRating && *play.Rating <= recommend.MaxRating {
			sum += *play.Rating
			rated++
		}
	}
	if rated > 0 {
		avg := sum / float64(rated)
		profile.AverageRating = &avg
	}

	// newest first
	sort.SliceStable(plays, func(i, j int) bool {
		return plays[i].PlayedAt.After(plays[j].PlayedAt)
	})
	if len(plays) > recentPlayLimit {
		plays = plays[:recentPlayLimit]
	}
	profile.RecentPlays = append(profile.RecentPlays, plays...)

	return profile, nil
}
