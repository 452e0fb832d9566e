package buff

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/udisondev/unitsim/internal/data"
	"github.com/udisondev/unitsim/internal/event"
	"github.com/udisondev/unitsim/internal/model"
	"github.com/udisondev/unitsim/internal/scheduler"
)

// Deps are the shared collaborators of every buff manager.
// Bus may be nil to disable buff events.
type Deps struct {
	Catalog   *data.BuffCatalog
	Scheduler *scheduler.Scheduler
	Bus       *event.Bus
}

// Manager tracks the buffs of one unit: at most one Instance per buff id,
// plus a per-tag counter.
//
// Not safe for concurrent use: all calls run on the simulation goroutine.
type Manager struct {
	deps Deps
	unit *model.Unit

	buffs     map[int32]*Instance
	tagCounts map[data.BuffTag]int
	closed    bool
}

// NewManager creates an unbound manager. Call Bind before adding buffs.
func NewManager(deps Deps) *Manager {
	return &Manager{
		deps:      deps,
		buffs:     make(map[int32]*Instance),
		tagCounts: make(map[data.BuffTag]int),
	}
}

// Bind attaches the manager to its unit. A second Bind is rejected.
func (m *Manager) Bind(unit *model.Unit) bool {
	if unit == nil {
		slog.Error("buff manager bind: nil unit")
		return false
	}
	if m.unit != nil {
		slog.Error("buff manager already bound",
			"unit", m.unit.ObjectID(),
			"rejected", unit.ObjectID())
		return false
	}
	m.unit = unit
	return true
}

// Unit returns the bound unit or nil.
func (m *Manager) Unit() *model.Unit {
	return m.unit
}

// AddBuff applies buffID to the unit. An existing instance gains a layer;
// otherwise a new instance is created and started.
// Returns false if the buff could not be applied.
func (m *Manager) AddBuff(instigatorID int64, buffID int32) bool {
	if m.unit == nil {
		slog.Error("buff manager not bound", "buffID", buffID)
		return false
	}
	if m.closed {
		slog.Warn("buff manager closed", "buffID", buffID, "unit", m.unit.ObjectID())
		return false
	}

	if inst, ok := m.buffs[buffID]; ok {
		if !inst.Removed() {
			inst.AddLayer()
			return true
		}
		// инстанс уже удаляется (OnRemoved или BuffRemoved ещё не вернулись)
		m.detach(inst)
	}

	cfg, ok := m.deps.Catalog.Get(buffID)
	if !ok {
		slog.Warn("unknown buff", "buffID", buffID, "unit", m.unit.ObjectID())
		return false
	}

	behavior, err := NewBehavior(cfg.Class, cfg.Params)
	if err != nil {
		slog.Error("buff behavior unavailable",
			"buffID", buffID,
			"class", cfg.Class,
			"error", err)
		return false
	}

	inst := newInstance(m, cfg, behavior, instigatorID)
	m.buffs[buffID] = inst
	m.tagCounts[cfg.Tag]++

	slog.Debug("buff added",
		"buffID", buffID,
		"unit", m.unit.ObjectID(),
		"instigator", instigatorID)

	inst.Start()
	return true
}

// RemoveBuff strips one layer of buffID. No-op if absent.
func (m *Manager) RemoveBuff(removerID int64, buffID int32) {
	inst, ok := m.buffs[buffID]
	if !ok {
		return
	}
	inst.LayerDown(removerID)
}

// DeleteBuff removes buffID regardless of its layers. No-op if absent.
// OnRemoved still runs: the instance is force-removed, which detaches it.
func (m *Manager) DeleteBuff(removerID int64, buffID int32) {
	inst, ok := m.buffs[buffID]
	if !ok {
		return
	}
	inst.ForceRemove(removerID)
}

// RemoveAll force-removes every buff, in buff id order.
// Returns the number of removed instances.
func (m *Manager) RemoveAll(removerID int64) int {
	removed := 0
	for _, id := range m.IDs() {
		if inst, ok := m.buffs[id]; ok {
			inst.ForceRemove(removerID)
			removed++
		}
	}
	return removed
}

// Close removes every buff and rejects any later AddBuff, including calls
// made by OnRemoved callbacks and BuffRemoved listeners. Used when the
// unit is destroyed. Returns the number of removed instances.
func (m *Manager) Close(removerID int64) int {
	m.closed = true
	return m.RemoveAll(removerID)
}

// Closed reports whether Close was called.
func (m *Manager) Closed() bool { return m.closed }

// Buff returns the live instance for buffID.
func (m *Manager) Buff(buffID int32) (*Instance, bool) {
	inst, ok := m.buffs[buffID]
	return inst, ok
}

// Has reports whether buffID is on the unit.
func (m *Manager) Has(buffID int32) bool {
	_, ok := m.buffs[buffID]
	return ok
}

// IDs returns the ids of live buffs, sorted.
func (m *Manager) IDs() []int32 {
	return slices.Sorted(maps.Keys(m.buffs))
}

// BuffCount returns the number of buffs on the unit.
func (m *Manager) BuffCount() int {
	total := 0
	for _, n := range m.tagCounts {
		total += n
	}
	return total
}

// BuffCountByTag returns the number of buffs with tag; 0 for unknown tags.
func (m *Manager) BuffCountByTag(tag data.BuffTag) int {
	return m.tagCounts[tag]
}

// detach is the terminal cleanup step, called by Instance.ForceRemove.
func (m *Manager) detach(inst *Instance) {
	cur, ok := m.buffs[inst.cfg.ID]
	if !ok || cur != inst {
		return
	}
	delete(m.buffs, inst.cfg.ID)

	tag := inst.cfg.Tag
	if n := m.tagCounts[tag] - 1; n > 0 {
		m.tagCounts[tag] = n
	} else {
		delete(m.tagCounts, tag)
	}
}
