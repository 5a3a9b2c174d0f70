package storage

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// Backup is the portable form of a progress database: a zstd-compressed
// YAML document.
type Backup struct {
	Values    map[string]int `yaml:"values"`
	Inventory []uint32       `yaml:"inventory"`
	Slot      *BackupSlot    `yaml:"slot,omitempty"`
}

// BackupSlot is the hero position of the latest save.
type BackupSlot struct {
	World uint32 `yaml:"world"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
}

// Export writes every value, the inventory and the latest slot to w.
func (s *Store) Export(w io.Writer) error {
	values, err := s.AllValues()
	if err != nil {
		return err
	}
	items, err := s.LoadInventory()
	if err != nil {
		return err
	}
	slot, ok, err := s.LatestSlot()
	if err != nil {
		return err
	}

	b := Backup{Values: values, Inventory: items}
	if ok {
		b.Slot = &BackupSlot{World: slot.WorldID, X: slot.HeroX, Y: slot.HeroY}
	}
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("storage: cannot encode backup: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("storage: cannot create compressor: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("storage: cannot write backup: %w", err)
	}
	return enc.Close()
}

// Import replaces the values and the inventory with the backup read from r
// and records its slot as the latest save.
func (s *Store) Import(r io.Reader) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("storage: cannot create decompressor: %w", err)
	}
	defer dec.Close()

	var b Backup
	if err := yaml.NewDecoder(dec).Decode(&b); err != nil {
		return fmt.Errorf("storage: cannot read backup: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.Exec("DELETE FROM kv_values"); err != nil {
		return fmt.Errorf("storage: cannot clear values: %w", err)
	}
	for key, value := range b.Values {
		if _, err := tx.Exec("INSERT INTO kv_values (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("storage: cannot import value %s: %w", key, err)
		}
	}
	if _, err := tx.Exec("DELETE FROM inventory"); err != nil {
		return fmt.Errorf("storage: cannot clear inventory: %w", err)
	}
	for _, id := range b.Inventory {
		if _, err := tx.Exec("INSERT INTO inventory (species_id) VALUES (?)", id); err != nil {
			return fmt.Errorf("storage: cannot import inventory item %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit backup: %w", err)
	}

	if b.Slot != nil {
		if _, err := s.SaveSlot(b.Slot.World, b.Slot.X, b.Slot.Y); err != nil {
			return err
		}
	}
	return nil
}
