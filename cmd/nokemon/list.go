package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available worlds",
	Long: `Shows the built-in worlds plus the ones found in world.levels_dir.
A file in levels_dir replaces the built-in world with the same id.`,
	RunE: runLevels,
}

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List all entity species",
	Long:  `Shows the built-in species catalog, extended by world.species_file.`,
	RunE:  runSpecies,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := loadContent(cfg)
	if err != nil {
		return err
	}
	list, err := c.loader.LoadAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No worlds available.")
		return nil
	}

	fmt.Fprintln(out, "Available worlds:")
	fmt.Fprintln(out)

	maxNameLen := len("Name")
	for _, lvl := range list {
		maxNameLen = max(maxNameLen, len(lvl.Name))
	}

	fmt.Fprintf(out, "  %-6s  %-*s  %-8s  %s\n", "ID", maxNameLen, "Name", "Size", "Entities")
	fmt.Fprintf(out, "  %-6s  %-*s  %-8s  %s\n", "--", maxNameLen, "----", "----", "--------")
	for _, lvl := range list {
		size := fmt.Sprintf("%dx%d", lvl.Cols(), lvl.Rows())
		fmt.Fprintf(out, "  %-6d  %-*s  %-8s  %d\n", lvl.ID, maxNameLen, lvl.Name, size, len(lvl.Entities))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'nokemon play <id>' to start from a world.")
	return nil
}

func runSpecies(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := loadContent(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	list := c.species.List()

	maxNameLen := len("Name")
	for _, sp := range list {
		maxNameLen = max(maxNameLen, len(sp.Name))
	}

	fmt.Fprintf(out, "  %-6s  %-*s  %-16s  %-5s  %s\n", "ID", maxNameLen, "Name", "Kind", "Size", "Glyph")
	fmt.Fprintf(out, "  %-6s  %-*s  %-16s  %-5s  %s\n", "--", maxNameLen, "----", "----", "----", "-----")
	for _, sp := range list {
		size := fmt.Sprintf("%dx%d", sp.Width, sp.Height)
		fmt.Fprintf(out, "  %-6d  %-*s  %-16s  %-5s  %s\n", sp.ID, maxNameLen, sp.Name, sp.Kind, size, sp.Glyph)
	}
	return nil
}
