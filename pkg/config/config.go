package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

const (
	DefaultPlayer1    = "Player 1"
	DefaultPlayer2    = "Player 2"
	DefaultVitality   = 50
	DefaultSpeed      = 50
	DefaultStrength   = 50
	DefaultObjectives = 5
	MaxObjectives     = 100
	DefaultRefreshMS  = 30
	DefaultLogLevel   = "warn"
)

type Config struct {
	Player1    string `json:"player1"`
	Player2    string `json:"player2"`
	Vitality   uint32 `json:"vitality"`
	Speed      uint32 `json:"speed"`
	Strength   uint32 `json:"strength"`
	Objectives int    `json:"objectives"`
	RefreshMS  int    `json:"refresh_ms"`
	LogLevel   string `json:"log_level"`
}

// Default returns the settings used when no file or flag says otherwise.
func Default() *Config {
	return &Config{
		Player1:    DefaultPlayer1,
		Player2:    DefaultPlayer2,
		Vitality:   DefaultVitality,
		Speed:      DefaultSpeed,
		Strength:   DefaultStrength,
		Objectives: DefaultObjectives,
		RefreshMS:  DefaultRefreshMS,
		LogLevel:   DefaultLogLevel,
	}
}

// LoadConfig reads a JSON file on top of the defaults. Fields missing from
// the file keep their default value.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	if c.Player1 == "" || c.Player2 == "" {
		return fmt.Errorf("player names must not be empty")
	}
	if c.Vitality == 0 {
		return fmt.Errorf("vitality must be greater than zero")
	}
	if c.Speed == 0 {
		return fmt.Errorf("speed must be greater than zero")
	}
	if c.Objectives <= 0 || c.Objectives > MaxObjectives {
		return fmt.Errorf("objectives must be between 1 and %d, got %d", MaxObjectives, c.Objectives)
	}
	if c.RefreshMS <= 0 {
		return fmt.Errorf("refresh_ms must be greater than zero, got %d", c.RefreshMS)
	}
	return nil
}
