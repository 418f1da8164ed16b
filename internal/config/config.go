// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Difficulty selects a maze size, checkpoint count and ghost count preset.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// UnmarshalText parses "easy", "normal" or "hard" (case-insensitive).
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "normal", "":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// Config is the full set of runtime settings.
type Config struct {
	Difficulty   Difficulty `env:"LABYRINTH_DIFFICULTY" envDefault:"normal"`
	Seed         int64      `env:"LABYRINTH_SEED" envDefault:"0"` // 0 = time based
	TPS          int        `env:"LABYRINTH_TPS" envDefault:"60"`
	WindowWidth  int        `env:"LABYRINTH_WINDOW_WIDTH" envDefault:"1024"`
	WindowHeight int        `env:"LABYRINTH_WINDOW_HEIGHT" envDefault:"768"`
	AssetDir     string     `env:"LABYRINTH_ASSET_DIR" envDefault:"assets"`
	MazeFile     string     `env:"LABYRINTH_MAZE_FILE"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game loop cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be > 0, got %d", c.TPS))
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight))
	}
	if c.Difficulty < DifficultyEasy || c.Difficulty > DifficultyHard {
		errs = append(errs, fmt.Errorf("invalid difficulty %d", int(c.Difficulty)))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
