package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "recommend_games",
		Description: "Rank the game library for a group of players. Returns every candidate that seats the group with its group score, and flags those above the recommendation threshold.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"players": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Usernames or IDs of the players at the table",
				},
				"player_count": map[string]interface{}{
					"type":        "integer",
					"description": "Seat this many players instead of the number of listed players",
				},
				"time_budget": map[string]interface{}{
					"type":        "integer",
					"description": "Exclude games longer than this many minutes",
				},
				"top_n": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of games to return (default: all)",
				},
				"dissent_penalty": map[string]interface{}{
					"type":        "number",
					"description": "0 ranks by the average player, 1 by the least happy player",
				},
				"threshold": map[string]interface{}{
					"type":        "number",
					"description": "Group score at which a game counts as recommended",
				},
				"explain": map[string]interface{}{
					"type":        "boolean",
					"description": "Include a per-player explanation for each game",
				},
			},
			"required": []string{"players"},
		},
	},
	{
		Name:        "list_games",
		Description: "List games in the library, optionally filtered by player count, play time, category or a name search.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search game names and descriptions",
				},
				"player_count": map[string]interface{}{
					"type":        "integer",
					"description": "Only games that seat this many players",
				},
				"max_play_time": map[string]interface{}{
					"type":        "integer",
					"description": "Only games at most this many minutes long",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Only games in this category (case-insensitive)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 50)",
				},
			},
		},
	},
	{
		Name:        "get_player",
		Description: "Get a player's preferences and recent plays.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"identifier": map[string]interface{}{
					"type":        "string",
					"description": "Username or player ID",
				},
			},
			"required": []string{"identifier"},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get aggregate statistics about the game library and play history.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
