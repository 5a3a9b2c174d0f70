package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/maps"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

func newFactory(t *testing.T) *world.Factory {
	t.Helper()
	repo, err := species.Default()
	if err != nil {
		t.Fatalf("species.Default() failed: %v", err)
	}
	return world.NewFactory(repo, 10)
}

const smallLevel = `
id: 7
name: Small
spawn: {x: 1, y: 1}
biome:
  - "1111"
  - "1121"
  - "1111"
entities:
  - id: 50
    species: coin
    x: 0
    y: 2
`

func TestBuiltinLevels(t *testing.T) {
	l := NewLoader("")

	ids, err := l.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != world.IDDemo || ids[1] != 1002 {
		t.Errorf("ListIDs() = %v, expected [1001 1002]", ids)
	}

	factory := newFactory(t)
	for _, id := range ids {
		lvl, err := l.LoadByID(id)
		if err != nil {
			t.Fatalf("LoadByID(%d) failed: %v", id, err)
		}
		if _, err := lvl.Build(BuildOptions{Factory: factory}); err != nil {
			t.Errorf("Build() of level %d failed: %v", id, err)
		}
	}
}

func TestDemoLevelLayout(t *testing.T) {
	lvl, err := NewLoader("").LoadByID(world.IDDemo)
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	if lvl.Rows() != 60 || lvl.Cols() != 80 {
		t.Errorf("size = %dx%d, expected 80x60", lvl.Cols(), lvl.Rows())
	}
	if got := lvl.Biome[12][52].Type; got != maps.BiomeWater {
		t.Errorf("Biome[12][52] = %v, expected water", got)
	}
	if got := lvl.Constructions[14][55].Type; got != maps.ConstructionBridge {
		t.Errorf("Constructions[14][55] = %v, expected bridge", got)
	}
	if got := lvl.Biome[10][49]; got.Right != maps.BiomeWater {
		t.Errorf("Biome[10][49].Right = %v, expected water", got.Right)
	}
}

func TestLoadByIDMissing(t *testing.T) {
	_, err := NewLoader("").LoadByID(999)
	if !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("LoadByID() error = %v, expected %v", err, ErrLevelNotFound)
	}
}

func TestDirectoryOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	data := []byte("id: 1002\nname: Custom\nwidth: 5\nheight: 5\nspawn: {x: 2, y: 2}\n")
	if err := os.WriteFile(filepath.Join(dir, "custom.yml"), data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	lvl, err := NewLoader(dir).LoadByID(1002)
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	if lvl.Name != "Custom" || lvl.FilePath != "custom.yml" {
		t.Errorf("LoadByID() = %q from %q, expected Custom from custom.yml", lvl.Name, lvl.FilePath)
	}
}

func TestInvalidFileFailsTheScan(t *testing.T) {
	src := fstest.MapFS{
		"ok.yaml":  {Data: []byte(smallLevel)},
		"bad.yaml": {Data: []byte("id: 8\nwidth: 0\n")},
	}
	if _, err := NewLoaderFS(src).LoadAll(); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("LoadAll() error = %v, expected %v", err, ErrInvalidLevel)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "id: [1"},
		{"missing id", "width: 3\nheight: 3\n"},
		{"no size", "id: 1\n"},
		{"unknown fill", "id: 1\nwidth: 3\nheight: 3\nfill: \"?\"\n"},
		{"unknown biome char", "id: 1\nbiome: [\"1?1\"]\n"},
		{"ragged biome", "id: 1\nbiome: [\"111\", \"11\"]\n"},
		{"constructions size", "id: 1\nbiome: [\"11\", \"11\"]\nconstructions: [\"00\"]\n"},
		{"region outside", "id: 1\nwidth: 3\nheight: 3\nregions: [{biome: \"2\", x: 2, y: 2, w: 2, h: 1}]\n"},
		{"empty region", "id: 1\nwidth: 3\nheight: 3\nregions: [{x: 0, y: 0, w: 1, h: 1}]\n"},
		{"spawn outside", "id: 1\nwidth: 3\nheight: 3\nspawn: {x: 3, y: 0}\n"},
		{"entity without species", "id: 1\nwidth: 3\nheight: 3\nentities: [{x: 0, y: 0}]\n"},
		{"empty scatter", "id: 1\nwidth: 3\nheight: 3\nscatter: [{scale: 0.1}]\n"},
		{"scatter without scale", "id: 1\nwidth: 3\nheight: 3\nscatter: [{biome: \"A\"}]\n"},
		{"scatter threshold", "id: 1\nwidth: 3\nheight: 3\nscatter: [{biome: \"A\", scale: 0.1, threshold: 2}]\n"},
		{"scatter unknown over", "id: 1\nwidth: 3\nheight: 3\nscatter: [{biome: \"A\", over: \"?\", scale: 0.1}]\n"},
		{"unknown lock", "id: 1\nwidth: 3\nheight: 3\nentities: [{species: gate, lock: purple}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Parse() error = %v, expected %v", err, ErrInvalidLevel)
			}
		})
	}
}

func TestBuildPlacesEntities(t *testing.T) {
	lvl, err := Parse([]byte(smallLevel))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	w, err := lvl.Build(BuildOptions{Factory: newFactory(t), Viewport: core.NewIntRect(0, 0, 4, 3)})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if w.ID() != 7 || w.Len() != 2 {
		t.Errorf("world %d has %d entities, expected world 7 with 2", w.ID(), w.Len())
	}

	hero, ok := w.Hero()
	if !ok {
		t.Fatal("Build() did not add a hero")
	}
	if hero.Frame.X != 1 || hero.Frame.Y != 1 {
		t.Errorf("hero at (%d, %d), expected (1, 1)", hero.Frame.X, hero.Frame.Y)
	}

	coin, ok := w.Entity(50)
	if !ok || coin.SpeciesID != 2100 {
		t.Errorf("Entity(50) = %v, %v, expected the coin", coin.SpeciesID, ok)
	}
	if !w.Hitmap().At(1, 2) {
		t.Error("Hitmap() should mark the water tile at (2, 1)")
	}
}

func TestBuildSpawnOverride(t *testing.T) {
	lvl, err := Parse([]byte(smallLevel))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	w, err := lvl.Build(BuildOptions{Factory: newFactory(t), Spawn: &Point{X: 3, Y: 2}})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	hero, _ := w.Hero()
	// The 1x2 hero is pulled up to stay inside the map.
	if hero.Frame.X != 3 || hero.Frame.Y != 1 {
		t.Errorf("hero at (%d, %d), expected (3, 1)", hero.Frame.X, hero.Frame.Y)
	}
}

func TestBuildWiresBehaviourState(t *testing.T) {
	lvl, err := NewLoader("").LoadByID(world.IDDemo)
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	w, err := lvl.Build(BuildOptions{Factory: newFactory(t)})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	npc, ok := w.Entity(10)
	if !ok || npc.Patrol == nil {
		t.Fatal("Entity(10) should be a patrolling npc")
	}
	if npc.Patrol.Origin != npc.Frame {
		t.Errorf("Patrol.Origin = %+v, expected %+v", npc.Patrol.Origin, npc.Frame)
	}
	if len(npc.Dialogues) != 2 || npc.Dialogues[0].Reward != species.KeyYellow {
		t.Errorf("Dialogues = %+v, expected two with a yellow key reward", npc.Dialogues)
	}

	door, ok := w.Entity(30)
	if !ok {
		t.Fatal("Entity(30) should be the house door")
	}
	if door.Lock != world.LockYellow || door.Destination.World != 1002 {
		t.Errorf("door lock %v to %d, expected yellow to 1002", door.Lock, door.Destination.World)
	}
}

func TestBuildRejectsBadEntities(t *testing.T) {
	tests := []struct {
		name     string
		entities string
	}{
		{"unknown species", "[{species: dragon, x: 0, y: 0}]"},
		{"outside the map", "[{species: table, x: 2, y: 2}]"},
		{"teleporter without destination", "[{species: teleporter, x: 0, y: 0}]"},
		{"two heroes", "[{species: hero, x: 0, y: 0}, {species: hero, x: 1, y: 0}]"},
	}
	factory := newFactory(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := Parse([]byte("id: 1\nwidth: 3\nheight: 3\nentities: " + tt.entities + "\n"))
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if _, err := lvl.Build(BuildOptions{Factory: factory}); err == nil {
				t.Error("Build() should fail")
			}
		})
	}
}

func TestBuildsAreIndependent(t *testing.T) {
	lvl, err := Parse([]byte(smallLevel))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	factory := newFactory(t)

	first, err := lvl.Build(BuildOptions{Factory: factory})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	second, err := lvl.Build(BuildOptions{Factory: factory})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	first.Apply(world.BiomeTileChange{Row: 0, Col: 0, Biome: maps.BiomeLava})
	if got, _ := second.Biome().At(0, 0); got.Type != maps.BiomeGrass {
		t.Errorf("second world tile = %v, expected grass", got.Type)
	}
}

func TestScatter(t *testing.T) {
	const base = "id: 1\nwidth: 40\nheight: 30\nregions: [{biome: \"2\", x: 0, y: 0, w: 40, h: 5}]\n"
	parse := func(t *testing.T, scatter string) Level {
		t.Helper()
		lvl, err := Parse([]byte(base + scatter))
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		return lvl
	}
	count := func(lvl Level, b maps.Biome) int {
		n := 0
		for _, row := range lvl.Biome {
			for _, tile := range row {
				if tile.Type == b {
					n++
				}
			}
		}
		return n
	}

	t.Run("same seed paints the same tiles", func(t *testing.T) {
		layer := "scatter: [{biome: \"A\", over: \"1\", threshold: 0.5, scale: 0.15, seed: 3}]\n"
		a, b := parse(t, layer), parse(t, layer)
		for row := range a.Biome {
			for col := range a.Biome[row] {
				if a.Biome[row][col].Type != b.Biome[row][col].Type {
					t.Fatalf("Biome[%d][%d] differs between parses", row, col)
				}
			}
		}
		if count(a, maps.BiomeDarkGrass) == 0 {
			t.Error("threshold 0.5 painted nothing")
		}
	})

	t.Run("over keeps other biomes", func(t *testing.T) {
		lvl := parse(t, "scatter: [{biome: \"A\", over: \"1\", threshold: 0, scale: 0.15}]\n")
		if got := count(lvl, maps.BiomeWater); got != 40*5 {
			t.Errorf("water tiles = %d, expected %d", got, 40*5)
		}
		if got := count(lvl, maps.BiomeDarkGrass); got != 40*25 {
			t.Errorf("dark grass tiles = %d, expected %d", got, 40*25)
		}
	})

	t.Run("threshold one paints almost nothing", func(t *testing.T) {
		lvl := parse(t, "scatter: [{construction: \"7\", threshold: 1, scale: 0.15}]\n")
		n := 0
		for _, row := range lvl.Constructions {
			for _, tile := range row {
				if tile.Type == maps.ConstructionTallGrass {
					n++
				}
			}
		}
		if n > 1 {
			t.Errorf("tall grass tiles = %d, expected at most 1", n)
		}
	})
}
