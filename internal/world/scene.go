package world

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/unitsim/internal/event"
	"github.com/udisondev/unitsim/internal/model"
)

// SceneLoader populates a freshly unloaded simulation with a scene's content.
type SceneLoader interface {
	LoadScene(ctx context.Context, name string, sim *Simulation) error
}

// Spawn is one unit placement of a static scene.
type Spawn struct {
	Prefab     string
	Faction    model.Faction
	Location   model.Location
	Persistent bool
	Inactive   bool
}

// StaticScenes is a SceneLoader over fixed spawn lists keyed by scene name.
type StaticScenes map[string][]Spawn

// LoadScene implements SceneLoader. Spawns that fail are logged and skipped.
func (sc StaticScenes) LoadScene(ctx context.Context, name string, sim *Simulation) error {
	spawns, ok := sc[name]
	if !ok {
		return fmt.Errorf("unknown scene %q", name)
	}

	failed := 0
	for _, sp := range spawns {
		if err := ctx.Err(); err != nil {
			return err
		}
		opts := SpawnOptions{Persistent: sp.Persistent, Inactive: sp.Inactive}
		if _, ok := sim.SpawnUnit(sp.Prefab, sp.Location, sp.Faction, opts); !ok {
			failed++
		}
	}

	if failed > 0 {
		slog.Warn("scene spawns failed", "scene", name, "failed", failed, "total", len(spawns))
	}
	return nil
}

// LoadScene runs a scene transition:
//
//  1. SceneLoadBegin is published;
//  2. non-persistent objects are destroyed, dead listeners pruned and the
//     faction buckets filtered down to the surviving units, in order;
//  3. loader fills the new scene;
//  4. SceneLoadComplete is published.
//
// Scene events are published untyped and then with a SceneEvent payload.
// If loader fails, SceneLoadComplete is not published.
func (s *Simulation) LoadScene(ctx context.Context, name string, loader SceneLoader) error {
	slog.Info("scene load begin", "scene", name, "previous", s.scene)
	s.publishScene(event.SceneLoadBegin, name)

	s.unloadScene()

	if err := loader.LoadScene(ctx, name, s); err != nil {
		return fmt.Errorf("loading scene %s: %w", name, err)
	}
	s.scene = name

	slog.Info("scene loaded", "scene", name, "units", len(s.buffs))
	s.publishScene(event.SceneLoadComplete, name)
	return nil
}

func (s *Simulation) unloadScene() {
	destroyed := 0
	for _, id := range s.objects.IDs() {
		obj, ok := s.objects.Get(id)
		if !ok {
			continue
		}
		unit, isUnit := obj.AsUnit()
		switch {
		case isUnit && unit.Persistent():
			continue
		case isUnit:
			s.DestroyUnit(id)
		default:
			s.objects.Destroy(id)
		}
		destroyed++
	}

	pruned := s.bus.PruneDeadListeners()

	stale := s.factions.Retain(func(id int64) bool {
		_, ok := s.Unit(id)
		return ok
	})

	slog.Debug("scene unloaded", "destroyed", destroyed, "prunedListeners", pruned, "staleBucketEntries", stale)
}

func (s *Simulation) publishScene(kind event.Kind, name string) {
	s.bus.Publish(kind)
	event.PublishTyped(s.bus, kind, event.SceneEvent{Name: name})
}
