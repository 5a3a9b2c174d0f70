// nokemon is a tile-based top-down adventure played in the terminal.
//
// Usage:
//
//	nokemon play [world]        - Play, resuming the latest save or from a world
//	nokemon simulate [world]    - Run the simulation headless and print the entities
//	nokemon levels              - List available worlds
//	nokemon species             - List entity species
//	nokemon progress            - Show saved progress
//	nokemon serve               - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: ~/.nokemon/game.yaml)
//	--db <path>         - Progress database path
//	--lang <tag>        - Language, e.g. "en" or "it"
//	--log-level <level> - debug, info, warn, error
//	--creative          - Start in creative mode
//	--fps <rate>        - Tick rate (frames per second)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/curzel-it/nokemon-sub001/internal/config"
	"github.com/curzel-it/nokemon-sub001/internal/engine"
	"github.com/curzel-it/nokemon-sub001/internal/lang"
	"github.com/curzel-it/nokemon-sub001/internal/levels"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLang     string
	flagLogLevel string
	flagCreative bool
	flagFPS      int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nokemon",
	Short: "Nokemon - a tile-based adventure in your terminal",
	Long: `Nokemon is a top-down adventure played on a grid of tiles: walk
around, talk to people, push boulders, open gates and travel between
worlds through teleporters.

Available commands:
  play      - Play, resuming the latest save
  simulate  - Run a world headless for a number of ticks
  levels    - Show all available worlds
  species   - Show all entity species
  progress  - View saved progress
  serve     - Start SSH server for remote play

Examples:
  nokemon play
  nokemon play 1002
  nokemon simulate --ticks 600 --walk right
  nokemon serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "Language tag (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagCreative, "creative", false, "Start in creative mode")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(speciesCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the config file and applies the global flags.
func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLang != "" {
		cfg.Language = flagLang
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagCreative {
		cfg.CreativeMode = true
	}
	if flagFPS > 0 {
		cfg.Simulation.TickRate = flagFPS
	}
	return cfg, cfg.Validate()
}

// newLogger builds the logger described by cfg. Without a log file,
// interactive commands log nowhere so the game screen stays clean.
func newLogger(cfg config.GameConfig, interactive bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logging.level: %w", err)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	switch {
	case cfg.Logging.File != "":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "nokemon",
		Level:           level,
	})
	return logger, closer, nil
}

// content holds what every engine is built from.
type content struct {
	loader  *levels.Loader
	species *species.Repository
	lang    *lang.Localizer
}

func loadContent(cfg config.GameConfig) (content, error) {
	repo, err := species.Load(cfg.World.SpeciesFile)
	if err != nil {
		return content{}, err
	}
	localizer, err := lang.New(cfg.Language)
	if err != nil {
		return content{}, err
	}
	return content{
		loader:  levels.NewLoader(cfg.World.LevelsDir),
		species: repo,
		lang:    localizer,
	}, nil
}

// newEngine creates an engine over c. store may be nil.
func newEngine(cfg config.GameConfig, c content, store engine.Persister, logger *log.Logger) (*engine.Engine, error) {
	return engine.New(engine.Options{
		Config:  cfg,
		Loader:  c.loader,
		Factory: world.NewFactory(c.species, cfg.Simulation.AnimationsFPS),
		Lang:    c.lang,
		Store:   store,
		Logger:  logger,
	})
}
