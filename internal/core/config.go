package core

// RuntimeConfig contains configuration passed to the front end at initialization.
type RuntimeConfig struct {
	ScreenW      int  // Screen width in characters
	ScreenH      int  // Screen height in characters
	TickRate     int  // Simulation ticks per second (default 60)
	CreativeMode bool // Editing mode: entities show their options instead of acting
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickDuration returns the nominal seconds per tick.
func (c RuntimeConfig) TickDuration() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}
