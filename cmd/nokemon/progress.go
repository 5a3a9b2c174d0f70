package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/curzel-it/nokemon-sub001/internal/platform/tui"
	"github.com/curzel-it/nokemon-sub001/internal/storage"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress",
	Long: `Display the stored flags, the inventory and the latest save slot.
On a terminal an interactive viewer opens; otherwise plain text is printed.

Examples:
  nokemon progress
  nokemon progress --db ./progress.db | grep plate
  nokemon progress export backup.zst
  nokemon progress import backup.zst`,
	RunE: runProgress,
}

var progressExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a compressed backup of the progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressExport,
}

var progressImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the progress with a backup",
	Long: `Replace the stored flags and inventory with the ones in a backup made
by 'nokemon progress export'. The backup's hero position becomes the
latest save.`,
	Args: cobra.ExactArgs(1),
	RunE: runProgressImport,
}

func init() {
	progressCmd.AddCommand(progressExportCmd)
	progressCmd.AddCommand(progressImportCmd)
}

func openStore() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening progress database: %w", err)
	}
	return store, nil
}

func runProgressExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := store.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Progress written to %s\n", args[0])
	return nil
}

func runProgressImport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if err := store.Import(f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Progress restored from %s\n", args[0])
	return nil
}

func runProgress(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := loadContent(cfg)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		width, height, sizeErr := term.GetSize(fd)
		if sizeErr != nil {
			width, height = 80, 24
		}
		return tui.RunProgress(store, c.species, width, height)
	}

	values, err := store.AllValues()
	if err != nil {
		return err
	}
	items, err := store.LoadInventory()
	if err != nil {
		return err
	}
	slot, ok, err := store.LatestSlot()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if ok {
		fmt.Fprintf(out, "Latest save: world %d at (%d, %d), %s\n", slot.WorldID, slot.HeroX, slot.HeroY, slot.CreatedAt.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintln(out, "Latest save: none")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Values:")
	for _, row := range tui.ValueRows(values) {
		fmt.Fprintf(out, "  %s = %s\n", row[0], row[1])
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Inventory:")
	for _, row := range tui.InventoryRows(items, c.species) {
		fmt.Fprintf(out, "  %s x%s\n", row[0], row[1])
	}
	return nil
}
