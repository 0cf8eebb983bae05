package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/concierge"
	"github.com/dandam/gamenight/internal/config"
	"github.com/dandam/gamenight/internal/database"
	"github.com/dandam/gamenight/internal/logging"
	"github.com/dandam/gamenight/internal/recommend"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	verbose    bool
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gamenight",
	Short: "Pick a board game the whole table will enjoy",
	Long: `gamenight keeps track of your board game library, the people you play
with and how they rated past sessions, and ranks the library for the group
sitting at the table tonight.

It provides:
  - A game library with player counts, play times, complexity and categories
  - Player preferences and rated play history
  - Group recommendations that balance the average and the least happy player
  - MCP server for AI assistant integration`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch outputFmt {
		case "table", "json":
			return nil
		default:
			return fmt.Errorf("unknown output format: %s (use table or json)", outputFmt)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log debug output to stderr")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and sets up logging from it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Logging.LoggerConfig()
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Init(logCfg); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return cfg, nil
}

// app bundles the configuration and open database most commands need
type app struct {
	cfg *config.Config
	db  *database.DB
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger := logging.WithComponent("cli")
	logger.Debug().Str("path", cfg.Database.Path).Msg("database opened")
	return &app{cfg: cfg, db: db}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// concierge builds a recommender from the configured engine settings
func (a *app) concierge() (*concierge.Concierge, error) {
	engine, err := recommend.NewEngine(a.cfg.Recommend.EngineConfig(), logging.Logger())
	if err != nil {
		return nil, err
	}
	return concierge.New(a.db, engine, logging.Logger()), nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gamenight %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
