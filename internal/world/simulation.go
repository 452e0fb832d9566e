package world

import (
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/unitsim/internal/buff"
	"github.com/udisondev/unitsim/internal/data"
	"github.com/udisondev/unitsim/internal/event"
	"github.com/udisondev/unitsim/internal/faction"
	"github.com/udisondev/unitsim/internal/model"
	"github.com/udisondev/unitsim/internal/scheduler"
)

// PrefabSource resolves prefab names to paths and paths to templates.
// data.TemplateLibrary implements it.
type PrefabSource interface {
	Path(name string) (string, bool)
	data.PrefabLoader
}

// Deps are the collaborators of a Simulation. Nil fields get defaults:
// an empty Objects registry, a set-up RelationMatrix over all factions,
// the built-in buff catalog and prefab library.
type Deps struct {
	Objects   ObjectRegistry
	Relations *faction.RelationMatrix
	Catalog   *data.BuffCatalog
	Prefabs   PrefabSource
}

// SpawnOptions tune a single spawn.
type SpawnOptions struct {
	// Persistent units survive scene transitions.
	Persistent bool
	// Inactive units are spawned disabled; they are pruned from the bus
	// like destroyed ones.
	Inactive bool
}

// Simulation is the context every operation runs against: object
// registry, faction table and buckets, event bus, scheduler and the buff
// managers of live units.
//
// Not safe for concurrent use. A multi-threaded host goes through Runner.
type Simulation struct {
	objects   ObjectRegistry
	relations *faction.RelationMatrix
	factions  *faction.Registry
	bus       *event.Bus
	sched     *scheduler.Scheduler
	catalog   *data.BuffCatalog
	prefabs   PrefabSource

	buffs map[int64]*buff.Manager
	scene string
}

// NewSimulation creates a simulation from deps.
func NewSimulation(deps Deps) *Simulation {
	if deps.Objects == nil {
		deps.Objects = NewObjects()
	}
	if deps.Relations == nil {
		deps.Relations = faction.NewRelationMatrix()
	}
	if !deps.Relations.Ready() {
		deps.Relations.Setup()
	}
	if deps.Catalog == nil {
		deps.Catalog = data.DefaultBuffCatalog()
	}
	if deps.Prefabs == nil {
		deps.Prefabs = data.DefaultTemplateLibrary()
	}

	return &Simulation{
		objects:   deps.Objects,
		relations: deps.Relations,
		factions:  faction.NewRegistry(),
		bus:       event.NewBus(),
		sched:     scheduler.New(),
		catalog:   deps.Catalog,
		prefabs:   deps.Prefabs,
		buffs:     make(map[int64]*buff.Manager),
	}
}

// Bus returns the simulation event bus.
func (s *Simulation) Bus() *event.Bus { return s.bus }

// Scheduler returns the simulation timer queue.
func (s *Simulation) Scheduler() *scheduler.Scheduler { return s.sched }

// Relations returns the faction relation table.
func (s *Simulation) Relations() *faction.RelationMatrix { return s.relations }

// Factions returns the faction buckets.
func (s *Simulation) Factions() *faction.Registry { return s.factions }

// Objects returns the object registry.
func (s *Simulation) Objects() ObjectRegistry { return s.objects }

// Catalog returns the buff catalog.
func (s *Simulation) Catalog() *data.BuffCatalog { return s.catalog }

// Scene returns the name of the loaded scene, "" before the first load.
func (s *Simulation) Scene() string { return s.scene }

// Now returns the simulation clock.
func (s *Simulation) Now() time.Duration { return s.sched.Now() }

// Advance moves the simulation clock, firing due buff ticks.
// Returns the number of executed callbacks.
func (s *Simulation) Advance(dt time.Duration) int {
	return s.sched.Advance(dt)
}

// SpawnUnit instantiates prefab at loc with faction f.
// Returns the unit id, or false if the faction is outside the configured
// set or the prefab cannot be loaded.
func (s *Simulation) SpawnUnit(prefab string, loc model.Location, f model.Faction, opts SpawnOptions) (int64, bool) {
	if !s.relations.Contains(f) {
		slog.Warn("spawn rejected: faction not configured", "prefab", prefab, "faction", f)
		return 0, false
	}

	path, ok := s.prefabs.Path(prefab)
	if !ok {
		slog.Error("spawn aborted: unknown prefab", "prefab", prefab)
		return 0, false
	}
	tmpl := s.prefabs.LoadPrefab(path)
	if tmpl == nil {
		slog.Error("spawn aborted: prefab not loaded", "prefab", prefab, "path", path)
		return 0, false
	}

	var unit *model.Unit
	obj := s.objects.Instantiate(func(id int64) *model.WorldObject {
		unit = model.NewUnit(id, tmpl.TemplateID, tmpl.Name, loc, f)
		for _, a := range tmpl.Attributes {
			unit.Attributes().AddAttribute(a.Kind, a.Base)
		}
		unit.SetPersistent(opts.Persistent)
		unit.SetActive(!opts.Inactive)
		return unit.WorldObject
	})
	if obj == nil {
		return 0, false
	}
	id := obj.ObjectID()

	mgr := buff.NewManager(buff.Deps{Catalog: s.catalog, Scheduler: s.sched, Bus: s.bus})
	mgr.Bind(unit)
	s.buffs[id] = mgr
	s.factions.Record(f, id)

	slog.Debug("unit spawned", "unit", id, "prefab", prefab, "faction", f)
	event.PublishTyped(s.bus, event.UnitSpawned, event.UnitEvent{UnitID: id, Faction: f, PrevFaction: f})
	return id, true
}

// SpawnProp instantiates a non-unit object. Props carry no faction,
// attributes or buffs and never survive a scene transition.
// Returns 0 if the object registry refused the object.
func (s *Simulation) SpawnProp(name string, loc model.Location) int64 {
	obj := s.objects.Instantiate(func(id int64) *model.WorldObject {
		return model.NewWorldObject(id, name, loc)
	})
	if obj == nil {
		slog.Error("spawn prop aborted: object not registered", "prop", name)
		return 0
	}
	return obj.ObjectID()
}

// DestroyUnit removes every buff of the unit, drops it from the faction
// buckets and releases its identity, in that order.
func (s *Simulation) DestroyUnit(id int64) bool {
	unit, ok := s.Unit(id)
	if !ok {
		slog.Warn("destroy: not a unit", "unit", id)
		return false
	}

	if mgr, ok := s.buffs[id]; ok {
		mgr.Close(buff.NoRemover)
		delete(s.buffs, id)
	}
	s.factions.RemoveEverywhere(id)
	s.objects.Destroy(id)

	slog.Debug("unit destroyed", "unit", id)
	f := unit.Faction()
	event.PublishTyped(s.bus, event.UnitDestroyed, event.UnitEvent{UnitID: id, Faction: f, PrevFaction: f})
	return true
}

// ChangeUnitFaction moves the unit to faction f. The unit ends up in
// exactly one bucket.
func (s *Simulation) ChangeUnitFaction(id int64, f model.Faction) bool {
	unit, ok := s.Unit(id)
	if !ok {
		slog.Warn("change faction: not a unit", "unit", id)
		return false
	}
	if !s.relations.Contains(f) {
		slog.Warn("change faction rejected: faction not configured", "unit", id, "faction", f)
		return false
	}

	prev := unit.Faction()
	unit.SetFaction(f)
	s.factions.Move(id, f)

	event.PublishTyped(s.bus, event.UnitFactionChanged, event.UnitEvent{UnitID: id, Faction: f, PrevFaction: prev})
	return true
}

// Unit resolves id to a live unit. Props and unknown ids return false.
func (s *Simulation) Unit(id int64) (*model.Unit, bool) {
	obj, ok := s.objects.Get(id)
	if !ok {
		return nil, false
	}
	return obj.AsUnit()
}

// Units returns the ids of live units, ascending.
func (s *Simulation) Units() []int64 {
	var ids []int64
	for _, id := range s.objects.IDs() {
		if _, ok := s.Unit(id); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// GetFactionUnitCount returns the number of units recorded under f.
func (s *Simulation) GetFactionUnitCount(f model.Faction) int {
	return s.factions.Count(f)
}

// FilterTarget reports whether target passes the faction and relation
// filters as seen from instigator. A nil or empty filter allows
// everything; an empty list does not mean "match nothing".
func (s *Simulation) FilterTarget(instigator, target *model.Unit, relations []model.Relation, factions []model.Faction) bool {
	if instigator == nil || target == nil {
		return false
	}

	targetFaction := target.Faction()
	if len(factions) > 0 && !slices.Contains(factions, targetFaction) {
		return false
	}

	rel := s.relations.Relation(instigator.Faction(), targetFaction)
	if len(relations) > 0 && !slices.Contains(relations, rel) {
		return false
	}
	return true
}

// FilterTargetByID is FilterTarget over unit ids; unknown ids never pass.
func (s *Simulation) FilterTargetByID(instigatorID, targetID int64, relations []model.Relation, factions []model.Faction) bool {
	instigator, ok := s.Unit(instigatorID)
	if !ok {
		return false
	}
	target, ok := s.Unit(targetID)
	if !ok {
		return false
	}
	return s.FilterTarget(instigator, target, relations, factions)
}
