package data

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/unitsim/internal/model"
)

// AttributeBase задаёт начальное значение атрибута в шаблоне юнита.
type AttributeBase struct {
	Kind model.AttributeKind
	Base float64
}

// UnitTemplate describes a spawnable unit kind.
// Units spawned from the same template share TemplateID.
type UnitTemplate struct {
	TemplateID int32
	Name       string
	Attributes []AttributeBase
}

// PrefabLoader resolves a prefab path to a template.
// Returns nil when the path cannot be loaded; callers abort the spawn.
type PrefabLoader interface {
	LoadPrefab(path string) *UnitTemplate
}

// TemplateLibrary maps prefab names to paths and paths to templates.
// Safe for concurrent use.
type TemplateLibrary struct {
	mu     sync.RWMutex
	paths  map[string]string
	byPath map[string]*UnitTemplate
}

// NewTemplateLibrary creates an empty library.
func NewTemplateLibrary() *TemplateLibrary {
	return &TemplateLibrary{
		paths:  make(map[string]string),
		byPath: make(map[string]*UnitTemplate),
	}
}

// DefaultTemplateLibrary returns a library filled with the built-in prefabs.
func DefaultTemplateLibrary() *TemplateLibrary {
	lib := NewTemplateLibrary()
	for _, def := range prefabDefs {
		lib.Register(def.name, def.path, def.template)
	}
	slog.Info("loaded unit templates", "source", "builtin", "count", lib.Len())
	return lib
}

// Register binds a prefab name to path and path to tmpl.
// A later registration of the same name or path replaces the earlier one.
func (l *TemplateLibrary) Register(name, path string, tmpl *UnitTemplate) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths[name] = path
	l.byPath[path] = tmpl
}

// Path returns the prefab path for name.
func (l *TemplateLibrary) Path(name string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.paths[name]
	return p, ok
}

// LoadPrefab implements PrefabLoader.
func (l *TemplateLibrary) LoadPrefab(path string) *UnitTemplate {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.byPath[path]
}

// Resolve maps a prefab name to its template in one step.
// Returns nil if the name or its path is unknown.
func (l *TemplateLibrary) Resolve(name string) *UnitTemplate {
	path, ok := l.Path(name)
	if !ok {
		slog.Warn("unknown prefab name", "prefab", name)
		return nil
	}
	return l.LoadPrefab(path)
}

// Names returns registered prefab names, sorted.
func (l *TemplateLibrary) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.paths))
}

// Len returns the number of registered prefab names.
func (l *TemplateLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.paths)
}

type prefabFile struct {
	Prefabs []prefabEntry `yaml:"prefabs"`
}

type prefabEntry struct {
	Name       string             `yaml:"name"`
	Path       string             `yaml:"path"`
	TemplateID int32              `yaml:"template_id"`
	Attributes map[string]float64 `yaml:"attributes"`
}

// ParseTemplateLibrary decodes a YAML document with a top-level "prefabs" list.
func ParseTemplateLibrary(raw []byte) (*TemplateLibrary, error) {
	var f prefabFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding prefab catalog: %w", err)
	}

	lib := NewTemplateLibrary()
	for _, e := range f.Prefabs {
		if e.Name == "" || e.Path == "" {
			return nil, fmt.Errorf("prefab %q: name and path are required", e.Name)
		}

		attrs := make([]AttributeBase, 0, len(e.Attributes))
		for name, base := range e.Attributes {
			kind, err := model.ParseAttributeKind(name)
			if err != nil {
				return nil, fmt.Errorf("prefab %q: %w", e.Name, err)
			}
			attrs = append(attrs, AttributeBase{Kind: kind, Base: base})
		}
		slices.SortFunc(attrs, func(a, b AttributeBase) int { return int(a.Kind) - int(b.Kind) })

		lib.Register(e.Name, e.Path, &UnitTemplate{
			TemplateID: e.TemplateID,
			Name:       e.Name,
			Attributes: attrs,
		})
	}
	return lib, nil
}

// LoadTemplateLibraryFile reads a YAML prefab catalog from path.
func LoadTemplateLibraryFile(path string) (*TemplateLibrary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prefab catalog %s: %w", path, err)
	}

	lib, err := ParseTemplateLibrary(raw)
	if err != nil {
		return nil, fmt.Errorf("loading prefab catalog %s: %w", path, err)
	}

	slog.Info("loaded unit templates", "source", path, "count", lib.Len())
	return lib, nil
}
