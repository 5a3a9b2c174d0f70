// Package species provides the catalog of entity templates. Levels and
// factories refer to species by id; the catalog turns an id into the
// initial body values, sprite and capabilities of a new entity.
package species

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/curzel-it/nokemon-sub001/internal/core"
)

// ID identifies a species.
type ID uint32

// None is the zero species, used by locks without a key.
const None ID = 0

// Well-known species the simulation refers to directly.
const (
	Hero      ID = 1001
	DeepHole  ID = 1120
	Kunai     ID = 7000
	KeyYellow ID = 2000
	KeyRed    ID = 2001
	KeyBlue   ID = 2002
	KeyGreen  ID = 2003
	KeySilver ID = 2004
)

// Sprite sheets referenced by the catalog.
const (
	SheetBlank             uint32 = 1000
	SheetInventory         uint32 = 1001
	SheetBiomeTiles        uint32 = 1002
	SheetConstructionTiles uint32 = 1003
	SheetBuildings         uint32 = 1004
	SheetHumanoids1x2      uint32 = 1009
	SheetStaticObjects     uint32 = 1010
	SheetAnimatedObjects   uint32 = 1012
)

// ErrUnknownSpecies is returned for ids missing from the catalog.
var ErrUnknownSpecies = errors.New("species: unknown species")

//go:embed defaults/species.yaml
var defaultSpeciesYAML []byte

// Species is one entity template.
type Species struct {
	ID             ID           `yaml:"id"`
	Name           string       `yaml:"name"`
	Kind           Kind         `yaml:"kind"`
	ZIndex         int          `yaml:"z_index"`
	Speed          float64      `yaml:"speed"` // Tiles per second
	IsRigid        bool         `yaml:"is_rigid"`
	IsInvulnerable bool         `yaml:"is_invulnerable"`
	Width          int          `yaml:"width"`
	Height         int          `yaml:"height"`
	Hp             float64      `yaml:"hp"`
	Dp             float64      `yaml:"dp"`
	Lifespan       float64      `yaml:"lifespan"` // Seconds, 0 for unlimited
	SpriteSheetID  uint32       `yaml:"sprite_sheet_id"`
	SpriteFrame    core.IntRect `yaml:"sprite_frame"`
	SpriteFrames   int          `yaml:"sprite_number_of_frames"`
	BundleContents []ID         `yaml:"bundle_contents"`
	Glyph          string       `yaml:"glyph"`
	Color          string       `yaml:"color"`
}

// LocalizedNameKey is the localization key of the species display name.
func (s Species) LocalizedNameKey() string {
	return "species." + s.Name
}

// Validate reports template values that would produce a broken entity.
func (s Species) Validate() error {
	if s.ID == None {
		return fmt.Errorf("species: %q has no id", s.Name)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("species: %d (%s) has invalid size %dx%d", s.ID, s.Name, s.Width, s.Height)
	}
	return nil
}

type catalogFile struct {
	Species []Species `yaml:"species"`
}

// Repository is a read-mostly catalog of species, safe for concurrent use
// by several worlds (one per SSH session).
type Repository struct {
	mu     sync.RWMutex
	byID   map[ID]Species
	byName map[string]ID
}

// NewRepository creates an empty catalog.
func NewRepository() *Repository {
	return &Repository{
		byID:   make(map[ID]Species),
		byName: make(map[string]ID),
	}
}

// Default returns the catalog built into the binary.
func Default() (*Repository, error) {
	repo := NewRepository()
	if err := repo.LoadYAML(defaultSpeciesYAML); err != nil {
		return nil, err
	}
	return repo, nil
}

// Load returns the built-in catalog, extended or overridden by the file at
// path when path is not empty.
func Load(path string) (*Repository, error) {
	repo, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return repo, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("species: failed to read %s: %w", path, err)
	}
	if err := repo.LoadYAML(data); err != nil {
		return nil, fmt.Errorf("species: failed to load %s: %w", path, err)
	}
	return repo, nil
}

// LoadYAML decodes a catalog document and registers every entry in it.
// Entries with an id already present replace the previous template.
func (r *Repository) LoadYAML(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("species: failed to parse catalog: %w", err)
	}
	for _, s := range file.Species {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range file.Species {
		r.byID[s.ID] = s
		r.byName[s.Name] = s.ID
	}
	return nil
}

// Register adds a template. It panics if the id is already taken.
func (r *Repository) Register(s Species) {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; exists {
		panic(fmt.Sprintf("species: %d already registered", s.ID))
	}
	r.byID[s.ID] = s
	r.byName[s.Name] = s.ID
}

// ByID returns the template with the given id.
func (r *Repository) ByID(id ID) (Species, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return Species{}, fmt.Errorf("%w: %d", ErrUnknownSpecies, id)
	}
	return s, nil
}

// ByName returns the template with the given name.
func (r *Repository) ByName(name string) (Species, error) {
	r.mu.RLock()
	id, ok := r.byName[name]
	r.mu.RUnlock()

	if !ok {
		return Species{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
	}
	return r.ByID(id)
}

// List returns every template, sorted by id.
func (r *Repository) List() []Species {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Species, 0, len(r.byID))
	for _, s := range r.byID {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Exists checks if a template with the given id is registered.
func (r *Repository) Exists(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok
}
