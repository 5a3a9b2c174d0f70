// Package config provides YAML-based configuration loading for the game:
// simulation timing, camera, hero tuning, starting world, storage and
// logging.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// GameConfig contains all configuration for a game session.
type GameConfig struct {
	Simulation   SimulationConfig `yaml:"simulation"`
	Camera       CameraConfig     `yaml:"camera"`
	Hero         HeroConfig       `yaml:"hero"`
	World        WorldConfig      `yaml:"world"`
	Storage      StorageConfig    `yaml:"storage"`
	Logging      LoggingConfig    `yaml:"logging"`
	Language     string           `yaml:"language"` // BCP 47 tag or Accept-Language list
	CreativeMode bool             `yaml:"creative_mode"`
}

// SimulationConfig defines tick timing.
type SimulationConfig struct {
	TickRate          int     `yaml:"tick_rate"`           // Ticks per second
	MaxDt             float64 `yaml:"max_dt"`              // Longest step a single tick may take, in seconds
	AnimationsFPS     float64 `yaml:"animations_fps"`      // Sprite animations
	TileVariationsFPS float64 `yaml:"tile_variations_fps"` // Biome texture variants
}

// CameraConfig defines the viewport size in tiles.
type CameraConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// HeroConfig defines hero tuning.
type HeroConfig struct {
	KunaiCooldown float64 `yaml:"kunai_cooldown"` // Seconds between throws
}

// WorldConfig defines where worlds and species come from.
type WorldConfig struct {
	StartLevel  uint32 `yaml:"start_level"`
	LevelsDir   string `yaml:"levels_dir"`   // Extra level files, empty for built-in only
	SpeciesFile string `yaml:"species_file"` // Extra species catalog, empty for built-in only
}

// StorageConfig defines the progress database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig defines log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty logs to stderr
}

// Validate reports values that would break the simulation.
func (c GameConfig) Validate() error {
	switch {
	case c.Simulation.TickRate <= 0:
		return fmt.Errorf("%w: simulation.tick_rate must be positive, got %d", ErrInvalidConfig, c.Simulation.TickRate)
	case c.Simulation.MaxDt <= 0:
		return fmt.Errorf("%w: simulation.max_dt must be positive, got %v", ErrInvalidConfig, c.Simulation.MaxDt)
	case c.Camera.Width <= 0 || c.Camera.Height <= 0:
		return fmt.Errorf("%w: camera must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Camera.Width, c.Camera.Height)
	case c.Hero.KunaiCooldown < 0:
		return fmt.Errorf("%w: hero.kunai_cooldown must not be negative", ErrInvalidConfig)
	case c.World.StartLevel == 0:
		return fmt.Errorf("%w: world.start_level is required", ErrInvalidConfig)
	}
	return nil
}

// TickDuration returns the length of one tick in seconds.
func (c GameConfig) TickDuration() float64 {
	return 1.0 / float64(c.Simulation.TickRate)
}
