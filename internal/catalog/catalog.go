// Package catalog loads and validates the plant catalog and constructs the
// session's entity set from it.
package catalog

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/verdant-labs/grove/internal/domain"
)

// Default growth duration range, applied when a plant has no override.
const (
	DefaultGrowthMin = 30 * time.Second
	DefaultGrowthMax = 180 * time.Second
)

// Plant describes one catalog entry.
type Plant struct {
	// ID is the unique entity identifier.
	ID string

	// Name is the human-readable label.
	Name string

	// InitialAsset references the representation placed on selection.
	InitialAsset string

	// BloomedAsset references the terminal representation.
	BloomedAsset string

	// GrowthMin/GrowthMax optionally override the catalog-wide range.
	GrowthMin time.Duration
	GrowthMax time.Duration
}

// Catalog is the fixed set of placeable plants for a session.
type Catalog struct {
	GrowthMin time.Duration
	GrowthMax time.Duration
	Plants    []Plant
}

// Default returns the built-in three-plant catalog.
func Default() Catalog {
	return Catalog{
		GrowthMin: DefaultGrowthMin,
		GrowthMax: DefaultGrowthMax,
		Plants: []Plant{
			{ID: "sunflower", Name: "Sunflower", InitialAsset: "models/sunflower_sprout.usdz", BloomedAsset: "models/sunflower_bloom.usdz"},
			{ID: "fern", Name: "Fern", InitialAsset: "models/fern_sprout.usdz", BloomedAsset: "models/fern_frond.usdz"},
			{ID: "bonsai", Name: "Bonsai", InitialAsset: "models/bonsai_sapling.usdz", BloomedAsset: "models/bonsai_full.usdz"},
		},
	}
}

// fileCatalog mirrors Catalog but uses strings for durations to make TOML friendly.
type fileCatalog struct {
	GrowthMin string      `toml:"growth_min"`
	GrowthMax string      `toml:"growth_max"`
	Plants    []filePlant `toml:"plants"`
}

type filePlant struct {
	ID           string `toml:"id"`
	Name         string `toml:"name"`
	Asset        string `toml:"asset"`
	BloomedAsset string `toml:"bloomed_asset"`
	GrowthMin    string `toml:"growth_min"`
	GrowthMax    string `toml:"growth_max"`
}

// Load reads and validates a TOML catalog file.
func Load(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var fc fileCatalog
	if err := toml.Unmarshal(b, &fc); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	var c Catalog
	if c.GrowthMin, err = parseDuration(fc.GrowthMin, DefaultGrowthMin); err != nil {
		return Catalog{}, fmt.Errorf("%w: growth_min: %s", domain.ErrInvalidConfig, err)
	}
	if c.GrowthMax, err = parseDuration(fc.GrowthMax, DefaultGrowthMax); err != nil {
		return Catalog{}, fmt.Errorf("%w: growth_max: %s", domain.ErrInvalidConfig, err)
	}

	for _, fp := range fc.Plants {
		p := Plant{
			ID:           fp.ID,
			Name:         fp.Name,
			InitialAsset: fp.Asset,
			BloomedAsset: fp.BloomedAsset,
		}
		if p.GrowthMin, err = parseDuration(fp.GrowthMin, 0); err != nil {
			return Catalog{}, fmt.Errorf("%w: plant %q growth_min: %s", domain.ErrInvalidConfig, fp.ID, err)
		}
		if p.GrowthMax, err = parseDuration(fp.GrowthMax, 0); err != nil {
			return Catalog{}, fmt.Errorf("%w: plant %q growth_max: %s", domain.ErrInvalidConfig, fp.ID, err)
		}
		c.Plants = append(c.Plants, p)
	}

	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	return time.ParseDuration(s)
}

// Validate checks the catalog for errors. Duplicate ids are the only
// programming-contract violation; everything else is configuration.
func (c Catalog) Validate() error {
	if len(c.Plants) == 0 {
		return fmt.Errorf("%w: catalog has no plants", domain.ErrInvalidConfig)
	}
	if c.GrowthMin <= 0 || c.GrowthMax < c.GrowthMin {
		return fmt.Errorf("%w: growth range %s..%s", domain.ErrInvalidConfig, c.GrowthMin, c.GrowthMax)
	}

	seen := make(map[string]bool, len(c.Plants))
	for _, p := range c.Plants {
		if p.ID == "" {
			return fmt.Errorf("%w: plant %q has no id", domain.ErrInvalidConfig, p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateEntity, p.ID)
		}
		seen[p.ID] = true

		if p.InitialAsset == "" || p.BloomedAsset == "" {
			return fmt.Errorf("%w: plant %q is missing an asset reference", domain.ErrInvalidConfig, p.ID)
		}
		min, max := p.growthRange(c)
		if min <= 0 || max < min {
			return fmt.Errorf("%w: plant %q growth range %s..%s", domain.ErrInvalidConfig, p.ID, min, max)
		}
	}
	return nil
}

// Build constructs the entity set, drawing each growth duration uniformly
// from the plant's inclusive range using rng. The source is injected so tests
// can seed and inspect it.
func (c Catalog) Build(rng *rand.Rand) ([]*domain.Entity, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entities := make([]*domain.Entity, 0, len(c.Plants))
	for _, p := range c.Plants {
		min, max := p.growthRange(c)
		growth := min
		if max > min {
			growth = min + time.Duration(rng.Int63n(int64(max-min)+1))
		}
		entities = append(entities, domain.NewEntity(p.ID, p.Name, p.InitialAsset, p.BloomedAsset, growth))
	}
	return entities, nil
}

// growthRange returns the plant's effective range, falling back to the
// catalog-wide one.
func (p Plant) growthRange(c Catalog) (time.Duration, time.Duration) {
	min, max := p.GrowthMin, p.GrowthMax
	if min == 0 {
		min = c.GrowthMin
	}
	if max == 0 {
		max = c.GrowthMax
	}
	return min, max
}
