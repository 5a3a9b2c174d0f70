package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Simulation: SimulationConfig{
			TickRate:          60,
			MaxDt:             0.1,
			AnimationsFPS:     10,
			TileVariationsFPS: 1,
		},
		Camera: CameraConfig{
			Width:  60,
			Height: 40,
		},
		Hero: HeroConfig{
			KunaiCooldown: 0.1,
		},
		World: WorldConfig{
			StartLevel: 1001,
		},
		Storage: StorageConfig{
			Path: "~/.nokemon/progress.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Language: "en",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
