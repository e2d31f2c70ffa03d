// Package config provides YAML-based configuration loading and difficulty
// presets for the bricks game.
package config

import "time"

// BricksConfig contains all tunable parameters of a bricks session.
type BricksConfig struct {
	Engine    EngineConfig    `yaml:"engine"`
	Playfield PlayfieldConfig `yaml:"playfield"`
	Board     BoardConfig     `yaml:"board"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Ball      BallConfig      `yaml:"ball"`
	Rules     RulesConfig     `yaml:"rules"`
	Messages  []string        `yaml:"messages"` // Story line shown on entering level n (index n-1)
	Save      SaveConfig      `yaml:"save"`
}

// EngineConfig defines the scheduler rates.
type EngineConfig struct {
	Rate          int `yaml:"rate"`           // Update and physics steps per second
	ClockInterval int `yaml:"clock_interval"` // Clock period in milliseconds
}

// PlayfieldConfig defines the simulated area in playfield units.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BoardConfig defines the brick grid.
type BoardConfig struct {
	Columns     int     `yaml:"columns"`
	BaseRows    int     `yaml:"base_rows"` // Rows on level n = base_rows + n
	CellWidth   float64 `yaml:"cell_width"`
	CellHeight  float64 `yaml:"cell_height"`
	PaddingLeft float64 `yaml:"padding_left"`
}

// PaddleConfig defines the paddle and its move loop.
type PaddleConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	MoveSteps int     `yaml:"move_steps"` // Steps per key press
	StepDelay int     `yaml:"step_delay"` // Milliseconds between steps
	SlowAfter int     `yaml:"slow_after"` // Later steps wait their index minus one, in ms
}

// BallConfig defines the ball.
type BallConfig struct {
	Radius float64 `yaml:"radius"`
	VY     float64 `yaml:"vy"`
}

// RulesConfig defines scoring and progression rules.
type RulesConfig struct {
	Lives          int     `yaml:"lives"`
	PowerUps       int     `yaml:"power_ups"`
	VictoryLevel   int     `yaml:"victory_level"`
	GoldDuration   int64   `yaml:"gold_duration"` // Ticks
	GoldMultiplier int     `yaml:"gold_multiplier"`
	BonusPoints    int     `yaml:"bonus_points"`
	BonusSize      float64 `yaml:"bonus_size"`
}

// SaveConfig selects where saves go.
type SaveConfig struct {
	Backend string `yaml:"backend"` // "file" or "sqlite"
	Path    string `yaml:"path"`
	Slot    string `yaml:"slot"`
}

// StepPeriod returns the update/physics period derived from the rate.
func (e EngineConfig) StepPeriod() time.Duration {
	if e.Rate <= 0 {
		return time.Second / 120
	}
	return time.Second / time.Duration(e.Rate)
}

// ClockPeriod returns the clock period.
func (e EngineConfig) ClockPeriod() time.Duration {
	if e.ClockInterval <= 0 {
		return time.Millisecond
	}
	return time.Duration(e.ClockInterval) * time.Millisecond
}

// Message returns the story line for a level, or "" when none is configured.
func (c BricksConfig) Message(level int) string {
	if level < 1 || level > len(c.Messages) {
		return ""
	}
	return c.Messages[level-1]
}
