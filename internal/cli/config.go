package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/dandam/gamenight/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func resolveConfigFile() (string, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath
	}
	return config.ExpandPath(path)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile, err := resolveConfigFile()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'gamenight config show' to view current configuration")
		return nil
	}

	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Run 'gamenight seed' to load a starter library, or")
	fmt.Println("     'gamenight import library.json' to load your own")
	fmt.Println("  2. Run 'gamenight recommend <player> <player> ...' on game night")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configFile, err := resolveConfigFile()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config: %w", err)
		}

		// show the effective defaults instead
		data, err = toml.Marshal(config.Default())
		if err != nil {
			return fmt.Errorf("failed to encode defaults: %w", err)
		}
		fmt.Println("# No config file found; these are the defaults.")
		fmt.Println("# Run 'gamenight config init' to create one.")
		fmt.Println()
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("# Config file: %s\n\n", configFile)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# gamenight configuration

[database]
path = "~/.local/share/gamenight/gamenight.db"

[recommend]
# Share of each player's score taken by how they rated the game before.
# The rest is the average of the play time, complexity and category fits.
history_weight = 0.5

# Pulls the group score from the average toward the least happy player.
# 0 = plain average, 1 = only the least happy player counts.
dissent_penalty = 0.5

# Group score at or above which a game is flagged as recommended
recommendation_threshold = 0.6

# Maximum games to show (0 = all that seat the group)
top_n = 0

# Libraries at least this large are scored in parallel
parallel_threshold = 256
max_workers = 0  # 0 = one per CPU

[logging]
level = "warn"       # trace, debug, info, warn, error, disabled
format = "console"   # console or json

[mcp]
enabled = true
transport = "stdio"
`
