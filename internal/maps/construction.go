package maps

import (
	"fmt"

	"github.com/curzel-it/nokemon-sub001/internal/core"
)

// Construction is what stands on top of the ground of a tile.
type Construction uint8

const (
	ConstructionNothing Construction = iota
	ConstructionWoodenFence
	ConstructionMetalFence
	ConstructionDarkRock
	ConstructionLightWall
	ConstructionCounter
	ConstructionLibrary
	ConstructionTallGrass
	ConstructionForest
	ConstructionBamboo
	ConstructionBox
	ConstructionRail
	ConstructionStoneWall
	ConstructionBridge
)

type constructionInfo struct {
	char     byte
	name     string
	glyph    rune
	color    core.Color
	obstacle bool
}

var constructions = [...]constructionInfo{
	ConstructionNothing:     {'0', "nothing", 0, core.ColorDefault, false},
	ConstructionWoodenFence: {'1', "wooden_fence", '+', core.ColorBrown, true},
	ConstructionMetalFence:  {'2', "metal_fence", '+', core.ColorSilver, true},
	ConstructionDarkRock:    {'3', "dark_rock", '@', core.ColorGray, true},
	ConstructionLightWall:   {'4', "light_wall", '#', core.ColorWhite, true},
	ConstructionCounter:     {'5', "counter", '=', core.ColorOrange, true},
	ConstructionLibrary:     {'6', "library", '|', core.ColorBrown, true},
	ConstructionTallGrass:   {'7', "tall_grass", '"', core.ColorBrightGreen, false},
	ConstructionForest:      {'8', "forest", 'T', core.ColorDarkGreen, true},
	ConstructionBamboo:      {'9', "bamboo", '!', core.ColorGreen, true},
	ConstructionBox:         {'A', "box", 'x', core.ColorOrange, true},
	ConstructionRail:        {'B', "rail", '=', core.ColorGray, false},
	ConstructionStoneWall:   {'C', "stone_wall", '#', core.ColorGray, true},
	ConstructionBridge:      {'D', "bridge", '=', core.ColorBrown, false},
}

// ParseConstruction maps a level-file character to its construction.
func ParseConstruction(c byte) (Construction, bool) {
	for k, info := range constructions {
		if info.char == c {
			return Construction(k), true
		}
	}
	return ConstructionNothing, false
}

// Char returns the level-file character of the construction.
func (c Construction) Char() byte {
	if int(c) >= len(constructions) {
		return constructions[ConstructionNothing].char
	}
	return constructions[c].char
}

// String returns the construction name.
func (c Construction) String() string {
	if int(c) >= len(constructions) {
		return "unknown"
	}
	return constructions[c].name
}

// Glyph returns the rune and color terminal renderers draw the construction
// with. A zero rune means nothing is drawn.
func (c Construction) Glyph() (rune, core.Color) {
	if int(c) >= len(constructions) {
		return 0, core.ColorDefault
	}
	return constructions[c].glyph, constructions[c].color
}

// IsObstacle reports whether walkers are blocked by the construction.
func (c Construction) IsObstacle() bool {
	if int(c) >= len(constructions) {
		return false
	}
	return constructions[c].obstacle
}

// ConstructionTile is one tile of the constructions layer.
type ConstructionTile struct {
	Type Construction
}

// IsObstacle reports whether the tile blocks movement.
func (t ConstructionTile) IsObstacle() bool {
	return t.Type.IsObstacle()
}

// IsSomething reports whether anything is built on the tile.
func (t ConstructionTile) IsSomething() bool {
	return t.Type != ConstructionNothing
}

// IsBridge reports whether the tile makes the ground below walkable.
func (t ConstructionTile) IsBridge() bool {
	return t.Type == ConstructionBridge
}

// ParseConstructionTiles decodes one string per row, one character per tile.
func ParseConstructionTiles(rows []string) ([][]ConstructionTile, error) {
	tiles := make([][]ConstructionTile, len(rows))
	for r, line := range rows {
		tiles[r] = make([]ConstructionTile, len(line))
		for c := 0; c < len(line); c++ {
			kind, ok := ParseConstruction(line[c])
			if !ok {
				return nil, fmt.Errorf("maps: unknown construction %q at row %d, col %d", line[c], r, c)
			}
			tiles[r][c] = ConstructionTile{Type: kind}
		}
	}
	return tiles, nil
}

// EmptyConstructionTiles returns a rows x cols layer with nothing built.
func EmptyConstructionTiles(rows, cols int) [][]ConstructionTile {
	tiles := make([][]ConstructionTile, rows)
	for r := range tiles {
		tiles[r] = make([]ConstructionTile, cols)
	}
	return tiles
}

// IsObstacleAt combines both layers: a bridge makes any tile walkable,
// otherwise either layer can block.
func IsObstacleAt(biome *TileSet[BiomeTile], built *TileSet[ConstructionTile], row, col int) bool {
	construction, hasConstruction := built.At(row, col)
	if hasConstruction && construction.IsBridge() {
		return false
	}
	ground, hasGround := biome.At(row, col)
	if hasGround && ground.IsObstacle() {
		return true
	}
	return hasConstruction && construction.IsObstacle()
}
