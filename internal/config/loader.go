package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBricks loads the bricks configuration.
// Search order: customPath -> ~/.bricks/configs/bricks.yaml -> ./configs/bricks.yaml -> embedded default
func LoadBricks(customPath string) (BricksConfig, error) {
	var cfg BricksConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err = parse(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bricks.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/bricks.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultBricksYAML)
	if err != nil {
		return DefaultBricksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the hardcoded defaults so a partial file
// only overrides the keys it names.
func parse(data []byte) (BricksConfig, error) {
	cfg := DefaultBricksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c BricksConfig) Validate() error {
	switch {
	case c.Engine.Rate <= 0:
		return fmt.Errorf("engine.rate must be positive, got %d", c.Engine.Rate)
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("playfield must have positive size, got %vx%v", c.Playfield.Width, c.Playfield.Height)
	case c.Board.Columns <= 0 || c.Board.CellWidth <= 0 || c.Board.CellHeight <= 0:
		return fmt.Errorf("board cells must have positive size")
	case c.Paddle.Width <= 0:
		return fmt.Errorf("paddle.width must be positive, got %v", c.Paddle.Width)
	case c.Ball.VY <= 0:
		return fmt.Errorf("ball.vy must be positive, got %v", c.Ball.VY)
	case c.Rules.Lives <= 0:
		return fmt.Errorf("rules.lives must be positive, got %d", c.Rules.Lives)
	case c.Rules.VictoryLevel < 2:
		return fmt.Errorf("rules.victory_level must be at least 2, got %d", c.Rules.VictoryLevel)
	}
	switch c.Save.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("save.backend must be file or sqlite, got %q", c.Save.Backend)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bricks", "configs", filename)
}
