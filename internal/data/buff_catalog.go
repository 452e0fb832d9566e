package data

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// BuffCatalog is an immutable buffID → BuffConfig table.
// Safe for concurrent reads once built.
type BuffCatalog struct {
	byID map[int32]*BuffConfig
}

// NewBuffCatalog validates configs and builds a catalog.
// Duplicate ids and timed buffs without a positive tick interval are rejected.
func NewBuffCatalog(configs []BuffConfig) (*BuffCatalog, error) {
	c := &BuffCatalog{byID: make(map[int32]*BuffConfig, len(configs))}

	for i := range configs {
		cfg := configs[i]
		if _, dup := c.byID[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate buff id %d", cfg.ID)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		cfg.Params = maps.Clone(cfg.Params)
		c.byID[cfg.ID] = &cfg
	}

	return c, nil
}

// DefaultBuffCatalog builds the catalog from the built-in table.
func DefaultBuffCatalog() *BuffCatalog {
	c, err := NewBuffCatalog(buffDefs)
	if err != nil {
		// встроенная таблица проверяется тестами
		panic(fmt.Sprintf("built-in buff table: %v", err))
	}
	slog.Info("loaded buff catalog", "source", "builtin", "count", c.Len())
	return c
}

type buffCatalogFile struct {
	Buffs []BuffConfig `yaml:"buffs"`
}

// ParseBuffCatalog decodes a YAML document with a top-level "buffs" list.
func ParseBuffCatalog(raw []byte) (*BuffCatalog, error) {
	var f buffCatalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding buff catalog: %w", err)
	}
	return NewBuffCatalog(f.Buffs)
}

// LoadBuffCatalogFile reads a YAML buff catalog from path.
func LoadBuffCatalogFile(path string) (*BuffCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading buff catalog %s: %w", path, err)
	}

	c, err := ParseBuffCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("loading buff catalog %s: %w", path, err)
	}

	slog.Info("loaded buff catalog", "source", path, "count", c.Len())
	return c, nil
}

// Get returns the config for id.
func (c *BuffCatalog) Get(id int32) (*BuffConfig, bool) {
	cfg, ok := c.byID[id]
	return cfg, ok
}

// Lookup is Get with an error wrapping ErrUnknownBuff.
func (c *BuffCatalog) Lookup(id int32) (*BuffConfig, error) {
	cfg, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("buff %d: %w", id, ErrUnknownBuff)
	}
	return cfg, nil
}

// Len returns the number of configs.
func (c *BuffCatalog) Len() int {
	return len(c.byID)
}

// IDs returns all buff ids in ascending order.
func (c *BuffCatalog) IDs() []int32 {
	return slices.Sorted(maps.Keys(c.byID))
}

// Configs returns all configs ordered by id.
func (c *BuffCatalog) Configs() []*BuffConfig {
	ids := c.IDs()
	out := make([]*BuffConfig, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.byID[id])
	}
	return out
}
