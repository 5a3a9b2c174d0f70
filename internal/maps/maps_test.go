package maps

import "testing"

func TestParseBiomeTilesRoundTrip(t *testing.T) {
	rows := []string{
		"1112",
		"1G0H",
	}

	tiles, err := ParseBiomeTiles(rows)
	if err != nil {
		t.Fatalf("ParseBiomeTiles() error = %v", err)
	}
	if tiles[0][3].Type != BiomeWater {
		t.Errorf("tile (0,3) = %v, expected water", tiles[0][3].Type)
	}
	if tiles[1][1].Type != BiomeLava || tiles[1][3].Type != BiomeFarmland {
		t.Errorf("row 1 = %v %v, expected lava and farmland", tiles[1][1].Type, tiles[1][3].Type)
	}

	encoded := EncodeBiomeTiles(tiles)
	for i := range rows {
		if encoded[i] != rows[i] {
			t.Errorf("EncodeBiomeTiles()[%d] = %q, expected %q", i, encoded[i], rows[i])
		}
	}
}

func TestParseBiomeTilesRejectsUnknownChars(t *testing.T) {
	if _, err := ParseBiomeTiles([]string{"11Z"}); err == nil {
		t.Error("ParseBiomeTiles() expected error for unknown biome")
	}
}

func TestBiomeObstacles(t *testing.T) {
	tests := []struct {
		biome    Biome
		obstacle bool
	}{
		{BiomeNothing, true},
		{BiomeWater, true},
		{BiomeLava, true},
		{BiomeGrass, false},
		{BiomeIce, false},
		{BiomeFarmland, false},
	}

	for _, tc := range tests {
		t.Run(tc.biome.String(), func(t *testing.T) {
			if got := tc.biome.IsObstacle(); got != tc.obstacle {
				t.Errorf("IsObstacle() = %v, expected %v", got, tc.obstacle)
			}
		})
	}
}

func TestBiomeNeighbours(t *testing.T) {
	tiles, err := ParseBiomeTiles([]string{
		"121",
		"131",
		"141",
	})
	if err != nil {
		t.Fatalf("ParseBiomeTiles() error = %v", err)
	}

	center := tiles[1][1]
	if center.Up != BiomeWater || center.Down != BiomeDesert || center.Left != BiomeGrass || center.Right != BiomeGrass {
		t.Errorf("center neighbours = %+v", center)
	}

	corner := tiles[0][0]
	if corner.Up != BiomeGrass || corner.Left != BiomeGrass {
		t.Errorf("off-grid neighbours should read as the tile itself, got %+v", corner)
	}
}

func TestUpdateBiomeTileRefreshesNeighbours(t *testing.T) {
	tiles, _ := ParseBiomeTiles([]string{"111", "111", "111"})
	set := NewTileSet(1002, tiles, 1.0)

	if !UpdateBiomeTile(set, 1, 1, BiomeWater) {
		t.Fatal("UpdateBiomeTile() = false for in-bounds tile")
	}
	if set.Tiles[0][1].Down != BiomeWater {
		t.Errorf("upper neighbour Down = %v, expected water", set.Tiles[0][1].Down)
	}
	if set.Tiles[1][0].Right != BiomeWater {
		t.Errorf("left neighbour Right = %v, expected water", set.Tiles[1][0].Right)
	}
	if set.Tiles[1][1].Up != BiomeGrass {
		t.Errorf("updated tile Up = %v, expected grass", set.Tiles[1][1].Up)
	}

	if UpdateBiomeTile(set, 3, 0, BiomeWater) {
		t.Error("UpdateBiomeTile() = true for out-of-bounds tile")
	}
}

func TestTileSetVariants(t *testing.T) {
	set := NewTileSet(1002, [][]int{{0}}, 1.0)

	for i := 0; i < BiomeNumberOfFrames; i++ {
		if got := set.CurrentVariant(); got != i {
			t.Errorf("CurrentVariant() = %d, expected %d", got, i)
		}
		set.Update(1.0)
	}
	if set.CurrentVariant() != 0 {
		t.Errorf("CurrentVariant() = %d, expected wrap to 0", set.CurrentVariant())
	}
}

func TestTileSetBounds(t *testing.T) {
	set := NewTileSet(1003, EmptyConstructionTiles(2, 3), 1.0)

	if set.Rows() != 2 || set.Cols() != 3 {
		t.Errorf("size = %dx%d, expected 2x3", set.Rows(), set.Cols())
	}
	if _, ok := set.At(-1, 0); ok {
		t.Error("At(-1, 0) should be out of bounds")
	}
	if set.Set(2, 0, ConstructionTile{Type: ConstructionBox}) {
		t.Error("Set(2, 0) should be out of bounds")
	}
}

func TestIsObstacleAt(t *testing.T) {
	ground, _ := ParseBiomeTiles([]string{"1221"})
	built, _ := ParseConstructionTiles([]string{"0D01"})
	biomeSet := NewTileSet(1002, ground, 1.0)
	builtSet := NewTileSet(1003, built, 1.0)

	expected := []bool{false, false, true, true}
	for col, want := range expected {
		if got := IsObstacleAt(biomeSet, builtSet, 0, col); got != want {
			t.Errorf("IsObstacleAt(0, %d) = %v, expected %v", col, got, want)
		}
	}
}
