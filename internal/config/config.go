package config

import (
	"github.com/dandam/gamenight/internal/logging"
	"github.com/dandam/gamenight/internal/recommend"
)

// DefaultPath is where Load looks when no --config flag is given
const DefaultPath = "~/.config/gamenight/config.toml"

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Recommend RecommendConfig `toml:"recommend"`
	Logging   LoggingConfig   `toml:"logging"`
	MCP       MCPConfig       `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// RecommendConfig contains recommendation engine tuning
type RecommendConfig struct {
	HistoryWeight           float64 `toml:"history_weight"`
	DissentPenalty          float64 `toml:"dissent_penalty"`
	RecommendationThreshold float64 `toml:"recommendation_threshold"`
	TopN                    int     `toml:"top_n"`
	ParallelThreshold       int     `toml:"parallel_threshold"`
	MaxWorkers              int     `toml:"max_workers"`
}

// EngineConfig converts the file settings into engine configuration
func (r RecommendConfig) EngineConfig() recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.HistoryWeight = r.HistoryWeight
	cfg.DissentPenalty = r.DissentPenalty
	cfg.RecommendationThreshold = r.RecommendationThreshold
	cfg.TopN = r.TopN
	cfg.ParallelThreshold = r.ParallelThreshold
	cfg.MaxWorkers = r.MaxWorkers
	return cfg
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LoggerConfig converts the file settings into logger configuration
func (l LoggingConfig) LoggerConfig() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format}
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	engine := recommend.DefaultConfig()

	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/gamenight/gamenight.db",
		},
		Recommend: RecommendConfig{
			HistoryWeight:           engine.HistoryWeight,
			DissentPenalty:          engine.DissentPenalty,
			RecommendationThreshold: engine.RecommendationThreshold,
			TopN:                    engine.TopN,
			ParallelThreshold:       engine.ParallelThreshold,
			MaxWorkers:              engine.MaxWorkers,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
