package maps

import (
	"fmt"

	"github.com/curzel-it/nokemon-sub001/internal/core"
)

// Biome is the ground type of a tile.
type Biome uint8

const (
	BiomeNothing Biome = iota
	BiomeGrass
	BiomeWater
	BiomeRock
	BiomeDesert
	BiomeSnow
	BiomeDarkWood
	BiomeLightWood
	BiomeDarkRock
	BiomeIce
	BiomeDarkGrass
	BiomeRockPlates
	BiomeGrassFlowersRed
	BiomeGrassFlowersYellow
	BiomeGrassFlowersBlue
	BiomeGrassFlowersPurple
	BiomeLava
	BiomeFarmland
)

type biomeInfo struct {
	char     byte
	name     string
	glyph    rune
	color    core.Color
	obstacle bool
}

var biomes = [...]biomeInfo{
	BiomeNothing:            {'0', "nothing", ' ', core.ColorDefault, true},
	BiomeGrass:              {'1', "grass", '.', core.ColorGreen, false},
	BiomeWater:              {'2', "water", '~', core.ColorBlue, true},
	BiomeRock:               {'3', "rock", ':', core.ColorGray, false},
	BiomeDesert:             {'4', "desert", '.', core.ColorYellow, false},
	BiomeSnow:               {'5', "snow", '.', core.ColorBrightWhite, false},
	BiomeDarkWood:           {'6', "dark_wood", '=', core.ColorBrown, false},
	BiomeLightWood:          {'7', "light_wood", '=', core.ColorOrange, false},
	BiomeDarkRock:           {'8', "dark_rock", ':', core.ColorWhite, false},
	BiomeIce:                {'9', "ice", '-', core.ColorBrightCyan, false},
	BiomeDarkGrass:          {'A', "dark_grass", ',', core.ColorDarkGreen, false},
	BiomeRockPlates:         {'B', "rock_plates", '#', core.ColorGray, false},
	BiomeGrassFlowersRed:    {'C', "grass_flowers_red", '*', core.ColorRed, false},
	BiomeGrassFlowersYellow: {'D', "grass_flowers_yellow", '*', core.ColorYellow, false},
	BiomeGrassFlowersBlue:   {'E', "grass_flowers_blue", '*', core.ColorBlue, false},
	BiomeGrassFlowersPurple: {'F', "grass_flowers_purple", '*', core.ColorMagenta, false},
	BiomeLava:               {'G', "lava", '^', core.ColorBrightRed, true},
	BiomeFarmland:           {'H', "farmland", '"', core.ColorBrown, false},
}

// ParseBiome maps a level-file character to its biome.
func ParseBiome(c byte) (Biome, bool) {
	for b, info := range biomes {
		if info.char == c {
			return Biome(b), true
		}
	}
	return BiomeNothing, false
}

// Char returns the level-file character of the biome.
func (b Biome) Char() byte {
	if int(b) >= len(biomes) {
		return biomes[BiomeNothing].char
	}
	return biomes[b].char
}

// String returns the biome name.
func (b Biome) String() string {
	if int(b) >= len(biomes) {
		return "unknown"
	}
	return biomes[b].name
}

// Glyph returns the rune and color terminal renderers draw the biome with.
func (b Biome) Glyph() (rune, core.Color) {
	if int(b) >= len(biomes) {
		return ' ', core.ColorDefault
	}
	return biomes[b].glyph, biomes[b].color
}

// IsObstacle reports whether walkers are blocked by the biome.
func (b Biome) IsObstacle() bool {
	if int(b) >= len(biomes) {
		return true
	}
	return biomes[b].obstacle
}

// BiomeTile is one ground tile, aware of its four neighbours so renderers
// can pick blended borders.
type BiomeTile struct {
	Type  Biome
	Up    Biome
	Right Biome
	Down  Biome
	Left  Biome
}

// IsObstacle reports whether the tile blocks movement.
func (t BiomeTile) IsObstacle() bool {
	return t.Type.IsObstacle()
}

// IsWater reports whether the tile is water.
func (t BiomeTile) IsWater() bool {
	return t.Type == BiomeWater
}

// ParseBiomeTiles decodes one string per row, one character per tile.
// Unknown characters are rejected.
func ParseBiomeTiles(rows []string) ([][]BiomeTile, error) {
	tiles := make([][]BiomeTile, len(rows))
	for r, line := range rows {
		tiles[r] = make([]BiomeTile, len(line))
		for c := 0; c < len(line); c++ {
			biome, ok := ParseBiome(line[c])
			if !ok {
				return nil, fmt.Errorf("maps: unknown biome %q at row %d, col %d", line[c], r, c)
			}
			tiles[r][c] = BiomeTile{Type: biome}
		}
	}
	for r := range tiles {
		for c := range tiles[r] {
			RefreshBiomeNeighbours(tiles, r, c)
		}
	}
	return tiles, nil
}

// EncodeBiomeTiles is the inverse of ParseBiomeTiles.
func EncodeBiomeTiles(tiles [][]BiomeTile) []string {
	rows := make([]string, len(tiles))
	for r, line := range tiles {
		buf := make([]byte, len(line))
		for c, tile := range line {
			buf[c] = tile.Type.Char()
		}
		rows[r] = string(buf)
	}
	return rows
}

// RefreshBiomeNeighbours recomputes the neighbour types of the tile at
// (row, col). Off-grid neighbours read as the tile's own biome.
func RefreshBiomeNeighbours(tiles [][]BiomeTile, row, col int) {
	if row < 0 || row >= len(tiles) || col < 0 || col >= len(tiles[row]) {
		return
	}
	tile := &tiles[row][col]
	at := func(r, c int) Biome {
		if r < 0 || r >= len(tiles) || c < 0 || c >= len(tiles[r]) {
			return tile.Type
		}
		return tiles[r][c].Type
	}
	tile.Up = at(row-1, col)
	tile.Right = at(row, col+1)
	tile.Down = at(row+1, col)
	tile.Left = at(row, col-1)
}

// UpdateBiomeTile replaces the tile at (row, col) and refreshes it together
// with its four neighbours. Out-of-bounds addresses are ignored and reported
// through the return value.
func UpdateBiomeTile(set *TileSet[BiomeTile], row, col int, biome Biome) bool {
	if !set.Set(row, col, BiomeTile{Type: biome}) {
		return false
	}
	RefreshBiomeNeighbours(set.Tiles, row, col)
	RefreshBiomeNeighbours(set.Tiles, row-1, col)
	RefreshBiomeNeighbours(set.Tiles, row, col+1)
	RefreshBiomeNeighbours(set.Tiles, row+1, col)
	RefreshBiomeNeighbours(set.Tiles, row, col-1)
	return true
}
