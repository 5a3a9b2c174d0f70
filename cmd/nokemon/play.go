package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/engine"
	"github.com/curzel-it/nokemon-sub001/internal/platform/tui"
	"github.com/curzel-it/nokemon-sub001/internal/storage"
)

var flagMenu bool

var playCmd = &cobra.Command{
	Use:   "play [world]",
	Short: "Play the game",
	Long: `Start playing. Without arguments the latest save is resumed, or the
configured start world is loaded on a fresh database.

Controls:
  Arrows/WASD  - Walk
  E/Space      - Interact
  F            - Throw kunai
  Enter        - Confirm
  Esc/B        - Back
  M/I          - Inventory
  ?            - Help
  Q/Ctrl+C     - Quit

Examples:
  nokemon play
  nokemon play 1002
  nokemon play --menu
  nokemon play --creative`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Pick the world from a menu")
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	c, err := loadContent(cfg)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	screen := core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickRate:     cfg.Simulation.TickRate,
		CreativeMode: cfg.CreativeMode,
	}

	levelID := tui.ContinueID
	switch {
	case len(args) == 1:
		id, parseErr := strconv.ParseUint(args[0], 10, 32)
		if parseErr != nil {
			return fmt.Errorf("invalid world id %q", args[0])
		}
		levelID = uint32(id)

	case flagMenu:
		list, listErr := c.loader.LoadAll()
		if listErr != nil {
			return listErr
		}
		result, menuErr := tui.RunMenu(list, screen)
		if menuErr != nil {
			return menuErr
		}
		if result.Quit {
			return nil
		}
		levelID = result.LevelID
		screen = result.Config
	}

	// Progress is optional, the game still works without it
	var store engine.Persister
	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
	} else {
		defer db.Close()
		store = db
	}

	e, err := newEngine(cfg, c, store, logger)
	if err != nil {
		return err
	}
	if levelID != tui.ContinueID {
		if err := e.LoadWorld(levelID, nil); err != nil {
			return err
		}
	}

	runErr := tui.Run(e, screen)
	if err := e.Save(); err != nil {
		logger.Warn("final save failed", "error", err)
	}
	return runErr
}
