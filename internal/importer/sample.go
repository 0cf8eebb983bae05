package importer

import "time"

// SampleLibrary returns a small starter library: four well-known games,
// four players with preferences, and a few rated plays
func SampleLibrary(now time.Time) *Library {
	day := func(daysAgo int) time.Time {
		return now.AddDate(0, 0, -daysAgo).Truncate(time.Hour)
	}

	return &Library{
		Games: []GameRecord{
			{
				Name:             "Catan",
				Description:      "Classic resource management and trading game",
				MinPlayers:       3,
				MaxPlayers:       4,
				AveragePlayTime:  90,
				ComplexityRating: 2.3,
				Categories:       []string{"Strategy", "Economic"},
			},
			{
				Name:             "Pandemic",
				Description:      "Save humanity from deadly diseases spreading across the globe",
				MinPlayers:       2,
				MaxPlayers:       4,
				AveragePlayTime:  45,
				ComplexityRating: 2.4,
				Categories:       []string{"Cooperative", "Strategy"},
			},
			{
				Name:             "7 Wonders",
				Description:      "Build ancient civilizations through card drafting",
				MinPlayers:       2,
				MaxPlayers:       7,
				AveragePlayTime:  30,
				ComplexityRating: 2.3,
				Categories:       []string{"Card Game", "Strategy"},
			},
			{
				Name:             "Ticket to Ride",
				Description:      "Build train routes across countries and continents",
				MinPlayers:       2,
				MaxPlayers:       5,
				AveragePlayTime:  60,
				ComplexityRating: 1.9,
				Categories:       []string{"Strategy", "Family"},
			},
		},
		Players: []PlayerRecord{
			{
				Username:    "alice_gamer",
				DisplayName: "Alice",
				Preferences: &PreferencesRecord{
					MinPlayTime:   intPtr(30),
					MaxPlayTime:   intPtr(120),
					ComplexityMin: floatPtr(2.0),
					ComplexityMax: floatPtr(3.5),
					Categories:    []string{"Strategy", "Economic"},
				},
			},
			{
				Username:    "bob_plays",
				DisplayName: "Bob",
				Preferences: &PreferencesRecord{
					MaxPlayTime:          intPtr(60),
					PreferredPlayerCount: intPtr(4),
					ComplexityMax:        floatPtr(2.5),
					Categories:           []string{"Family", "Card Game"},
				},
			},
			{
				Username:    "carol_dice",
				DisplayName: "Carol",
				Preferences: &PreferencesRecord{
					MinPlayTime:   intPtr(15),
					MaxPlayTime:   intPtr(90),
					ComplexityMin: floatPtr(1.5),
					ComplexityMax: floatPtr(3.0),
					Categories:    []string{"Cooperative", "Strategy"},
				},
			},
			{
				Username:    "dave_meeple",
				DisplayName: "Dave",
			},
		},
		Plays: []PlayRecord{
			{Player: "alice_gamer", Game: "Catan", PlayedAt: day(21), Rating: floatPtr(4.5), Notes: "Great game night!"},
			{Player: "alice_gamer", Game: "Pandemic", PlayedAt: day(14), Rating: floatPtr(3.5)},
			{Player: "bob_plays", Game: "Ticket to Ride", PlayedAt: day(14), Rating: floatPtr(5.0), Notes: "Would play again"},
			{Player: "bob_plays", Game: "Catan", PlayedAt: day(21), Rating: floatPtr(2.0)},
			{Player: "carol_dice", Game: "Pandemic", PlayedAt: day(7), Rating: floatPtr(4.0), Notes: "Fun with friends"},
			{Player: "dave_meeple", Game: "7 Wonders", PlayedAt: day(7)},
		},
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
