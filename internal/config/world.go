package config

import (
	"errors"
	"fmt"

	"github.com/udisondev/unitsim/internal/faction"
	"github.com/udisondev/unitsim/internal/model"
	"github.com/udisondev/unitsim/internal/world"
)

// ApplyRelations writes the configured overrides into m.
// m must already be set up; entries naming factions outside m's set fail.
func (c Simulation) ApplyRelations(m *faction.RelationMatrix) error {
	var errs []error
	for i, r := range c.Relations {
		from, err := model.ParseFaction(r.From)
		if err != nil {
			errs = append(errs, fmt.Errorf("relation %d: %w", i, err))
			continue
		}
		to, err := model.ParseFaction(r.To)
		if err != nil {
			errs = append(errs, fmt.Errorf("relation %d: %w", i, err))
			continue
		}
		rel, err := model.ParseRelation(r.Relation)
		if err != nil {
			errs = append(errs, fmt.Errorf("relation %d: %w", i, err))
			continue
		}
		if !m.SetRelation(from, to, rel) {
			errs = append(errs, fmt.Errorf("relation %d: %s → %s not applicable", i, from, to))
		}
	}
	return errors.Join(errs...)
}

// StaticScenes converts the configured scenes into a scene loader.
func (c Simulation) StaticScenes() (world.StaticScenes, error) {
	scenes := make(world.StaticScenes, len(c.Scenes))
	var errs []error

	for name, entries := range c.Scenes {
		spawns := make([]world.Spawn, 0, len(entries))
		for i, e := range entries {
			f, err := model.ParseFaction(e.Faction)
			if err != nil {
				errs = append(errs, fmt.Errorf("scene %s spawn %d: %w", name, i, err))
				continue
			}
			if e.Prefab == "" {
				errs = append(errs, fmt.Errorf("scene %s spawn %d: prefab is required", name, i))
				continue
			}
			spawns = append(spawns, world.Spawn{
				Prefab:     e.Prefab,
				Faction:    f,
				Location:   model.NewLocation(e.X, e.Y, e.Z, e.Heading),
				Persistent: e.Persistent,
				Inactive:   !e.IsActive(),
			})
		}
		scenes[name] = spawns
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return scenes, nil
}
