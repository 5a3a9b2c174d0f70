// Package levels loads world definitions from YAML files and turns them
// into ready-to-run worlds.
package levels

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/maps"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

var (
	// ErrLevelNotFound is returned when no level has the requested id.
	ErrLevelNotFound = errors.New("levels: level not found")

	// ErrInvalidLevel is wrapped by every validation failure.
	ErrInvalidLevel = errors.New("levels: invalid level")
)

// Point is a tile position.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Region paints a rectangle of biome and/or construction tiles.
type Region struct {
	Biome        string `yaml:"biome"`
	Construction string `yaml:"construction"`
	X            int    `yaml:"x"`
	Y            int    `yaml:"y"`
	W            int    `yaml:"w"`
	H            int    `yaml:"h"`
}

// EntitySpec places one entity.
type EntitySpec struct {
	ID          uint32                `yaml:"id"` // Optional, 0 picks a fresh id
	Species     string                `yaml:"species"`
	X           int                   `yaml:"x"`
	Y           int                   `yaml:"y"`
	Direction   core.Direction        `yaml:"direction"`
	Lock        world.LockType        `yaml:"lock"`
	Destination *world.Destination    `yaml:"destination"`
	Hint        string                `yaml:"hint"`
	Patrol      []world.PatrolSegment `yaml:"patrol"`
	Dialogues   []world.Dialogue      `yaml:"dialogues"`
}

// fileFormat is the on-disk layout. Tiles come either as one string per
// row or as a fill biome, then painted regions and scatter layers go on top
// in file order.
type fileFormat struct {
	ID            uint32       `yaml:"id"`
	Name          string       `yaml:"name"`
	Width         int          `yaml:"width"`
	Height        int          `yaml:"height"`
	Fill          string       `yaml:"fill"`
	Spawn         Point        `yaml:"spawn"`
	Biome         []string     `yaml:"biome"`
	Constructions []string     `yaml:"constructions"`
	Regions       []Region     `yaml:"regions"`
	Scatter       []Scatter    `yaml:"scatter"`
	Entities      []EntitySpec `yaml:"entities"`
}

// Level is a parsed and validated world definition.
type Level struct {
	ID            uint32
	Name          string
	Spawn         Point
	Biome         [][]maps.BiomeTile
	Constructions [][]maps.ConstructionTile
	Entities      []EntitySpec
	FilePath      string
}

// Rows returns the height of the level in tiles.
func (l *Level) Rows() int {
	return len(l.Biome)
}

// Cols returns the width of the level in tiles.
func (l *Level) Cols() int {
	if len(l.Biome) == 0 {
		return 0
	}
	return len(l.Biome[0])
}

// Parse decodes and validates one level file.
func Parse(data []byte) (Level, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Level{}, fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}
	if f.ID == 0 {
		return Level{}, fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}

	biome, err := parseBiome(f)
	if err != nil {
		return Level{}, fmt.Errorf("%w: level %d: %w", ErrInvalidLevel, f.ID, err)
	}
	rows, cols := len(biome), len(biome[0])

	constructions := maps.EmptyConstructionTiles(rows, cols)
	if len(f.Constructions) > 0 {
		constructions, err = maps.ParseConstructionTiles(f.Constructions)
		if err != nil {
			return Level{}, fmt.Errorf("%w: level %d: %w", ErrInvalidLevel, f.ID, err)
		}
		if len(constructions) != rows || !isRectangular(constructions, cols) {
			return Level{}, fmt.Errorf("%w: level %d: constructions do not match the %dx%d biome", ErrInvalidLevel, f.ID, cols, rows)
		}
	}

	for i, r := range f.Regions {
		if err := paintRegion(biome, constructions, r); err != nil {
			return Level{}, fmt.Errorf("%w: level %d region %d: %w", ErrInvalidLevel, f.ID, i, err)
		}
	}
	for i, sc := range f.Scatter {
		if err := paintScatter(biome, constructions, sc); err != nil {
			return Level{}, fmt.Errorf("%w: level %d scatter %d: %w", ErrInvalidLevel, f.ID, i, err)
		}
	}
	for row := range biome {
		for col := range biome[row] {
			maps.RefreshBiomeNeighbours(biome, row, col)
		}
	}

	if f.Spawn.X < 0 || f.Spawn.Y < 0 || f.Spawn.X >= cols || f.Spawn.Y >= rows {
		return Level{}, fmt.Errorf("%w: level %d: spawn (%d, %d) outside the map", ErrInvalidLevel, f.ID, f.Spawn.X, f.Spawn.Y)
	}
	for i, e := range f.Entities {
		if e.Species == "" {
			return Level{}, fmt.Errorf("%w: level %d entity %d: missing species", ErrInvalidLevel, f.ID, i)
		}
	}

	return Level{
		ID:            f.ID,
		Name:          f.Name,
		Spawn:         f.Spawn,
		Biome:         biome,
		Constructions: constructions,
		Entities:      f.Entities,
	}, nil
}

func parseBiome(f fileFormat) ([][]maps.BiomeTile, error) {
	if len(f.Biome) > 0 {
		biome, err := maps.ParseBiomeTiles(f.Biome)
		if err != nil {
			return nil, err
		}
		if len(biome[0]) == 0 || !isRectangular(biome, len(biome[0])) {
			return nil, errors.New("biome rows must be non-empty and of equal length")
		}
		return biome, nil
	}

	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("size %dx%d must be positive when no biome rows are given", f.Width, f.Height)
	}
	fill := maps.BiomeGrass
	if f.Fill != "" {
		b, ok := parseBiomeChar(f.Fill)
		if !ok {
			return nil, fmt.Errorf("unknown fill biome %q", f.Fill)
		}
		fill = b
	}
	biome := make([][]maps.BiomeTile, f.Height)
	for row := range biome {
		biome[row] = make([]maps.BiomeTile, f.Width)
		for col := range biome[row] {
			biome[row][col] = maps.BiomeTile{Type: fill}
		}
	}
	return biome, nil
}

func paintRegion(biome [][]maps.BiomeTile, constructions [][]maps.ConstructionTile, r Region) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("size %dx%d must be positive", r.W, r.H)
	}
	if r.X < 0 || r.Y < 0 || r.Y+r.H > len(biome) || r.X+r.W > len(biome[0]) {
		return fmt.Errorf("rectangle (%d, %d, %d, %d) outside the map", r.X, r.Y, r.W, r.H)
	}

	if r.Biome == "" && r.Construction == "" {
		return errors.New("nothing to paint")
	}
	var (
		b maps.Biome
		c maps.Construction
	)
	if r.Biome != "" {
		var ok bool
		if b, ok = parseBiomeChar(r.Biome); !ok {
			return fmt.Errorf("unknown biome %q", r.Biome)
		}
	}
	if r.Construction != "" {
		var ok bool
		if c, ok = parseConstructionChar(r.Construction); !ok {
			return fmt.Errorf("unknown construction %q", r.Construction)
		}
	}

	for row := r.Y; row < r.Y+r.H; row++ {
		for col := r.X; col < r.X+r.W; col++ {
			if r.Biome != "" {
				biome[row][col] = maps.BiomeTile{Type: b}
			}
			if r.Construction != "" {
				constructions[row][col] = maps.ConstructionTile{Type: c}
			}
		}
	}
	return nil
}

func parseBiomeChar(s string) (maps.Biome, bool) {
	if len(s) != 1 {
		return 0, false
	}
	return maps.ParseBiome(s[0])
}

func parseConstructionChar(s string) (maps.Construction, bool) {
	if len(s) != 1 {
		return 0, false
	}
	return maps.ParseConstruction(s[0])
}

func isRectangular[T any](tiles [][]T, cols int) bool {
	for _, row := range tiles {
		if len(row) != cols {
			return false
		}
	}
	return true
}
