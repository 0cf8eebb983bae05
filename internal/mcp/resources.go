package mcp

// Resource URIs
const (
	uriGames   = "gamenight://games"
	uriPlayers = "gamenight://players"
	uriSummary = "gamenight://summary"
)

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         uriSummary,
		Name:        "Library Summary",
		Description: "Game, player and play counts with the most played games",
		MimeType:    "text/plain",
	},
	{
		URI:         uriGames,
		Name:        "Game Library",
		Description: "Every game with its player range, play time and complexity",
		MimeType:    "text/plain",
	},
	{
		URI:         uriPlayers,
		Name:        "Players",
		Description: "Known players and whether they have stated preferences",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
