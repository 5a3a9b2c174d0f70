package levels

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/curzel-it/nokemon-sub001/internal/maps"
)

// Noise shape shared by every scatter layer.
const (
	noiseAlpha   = 2.0 // Smoothing
	noiseBeta    = 2.0 // Frequency
	noiseOctaves = 3
)

// Scatter sprinkles biome and/or construction tiles wherever the perlin
// noise of the tile is at least Threshold. The same seed always paints the
// same tiles.
type Scatter struct {
	Biome        string  `yaml:"biome"`
	Construction string  `yaml:"construction"`
	Over         string  `yaml:"over"`      // Only tiles of this biome, empty for any
	Threshold    float64 `yaml:"threshold"` // 0..1, higher paints fewer tiles
	Scale        float64 `yaml:"scale"`     // Noise units per tile, e.g. 0.15
	Seed         int64   `yaml:"seed"`
}

func paintScatter(biome [][]maps.BiomeTile, constructions [][]maps.ConstructionTile, s Scatter) error {
	if s.Biome == "" && s.Construction == "" {
		return errors.New("nothing to paint")
	}
	if s.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", s.Scale)
	}
	if s.Threshold < 0 || s.Threshold > 1 {
		return fmt.Errorf("threshold must be within 0 and 1, got %v", s.Threshold)
	}

	var (
		b, over     maps.Biome
		c           maps.Construction
		hasB, hasC  bool
		hasOver, ok bool
	)
	if s.Biome != "" {
		if b, ok = parseBiomeChar(s.Biome); !ok {
			return fmt.Errorf("unknown biome %q", s.Biome)
		}
		hasB = true
	}
	if s.Construction != "" {
		if c, ok = parseConstructionChar(s.Construction); !ok {
			return fmt.Errorf("unknown construction %q", s.Construction)
		}
		hasC = true
	}
	if s.Over != "" {
		if over, ok = parseBiomeChar(s.Over); !ok {
			return fmt.Errorf("unknown biome %q", s.Over)
		}
		hasOver = true
	}

	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, s.Seed)
	for row := range biome {
		for col := range biome[row] {
			if hasOver && biome[row][col].Type != over {
				continue
			}
			// Perlin noise is zero on integer coordinates, sample tile centers.
			v := (noise.Noise2D((float64(col)+0.5)*s.Scale, (float64(row)+0.5)*s.Scale) + 1) / 2
			if v < s.Threshold {
				continue
			}
			if hasB {
				biome[row][col].Type = b
			}
			if hasC {
				constructions[row][col].Type = c
			}
		}
	}
	return nil
}
