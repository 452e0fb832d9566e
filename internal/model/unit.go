package model

import "sync"

// Unit is a combat-capable entity with a faction and attributes.
// TemplateID is shared by all units spawned from the same template;
// ObjectID is unique per instance.
type Unit struct {
	*WorldObject // embedded

	templateID int32
	persistent bool
	attrs      *AttributeStore

	factionMu sync.RWMutex
	faction   Faction
}

// NewUnit creates a unit object. The attribute store starts empty.
func NewUnit(objectID int64, templateID int32, name string, loc Location, faction Faction) *Unit {
	obj := NewWorldObject(objectID, name, loc)
	obj.kind = ObjectKindUnit

	u := &Unit{
		WorldObject: obj,
		templateID:  templateID,
		attrs:       NewAttributeStore(),
		faction:     faction,
	}
	obj.unit = u
	return u
}

// TemplateID returns the id of the template the unit was spawned from.
func (u *Unit) TemplateID() int32 {
	return u.templateID
}

// Attributes returns the unit's attribute store.
func (u *Unit) Attributes() *AttributeStore {
	return u.attrs
}

// Faction returns the current faction.
func (u *Unit) Faction() Faction {
	u.factionMu.RLock()
	defer u.factionMu.RUnlock()
	return u.faction
}

// SetFaction changes the unit's own faction tag.
// Faction buckets are maintained by the simulation, not here.
func (u *Unit) SetFaction(f Faction) {
	u.factionMu.Lock()
	defer u.factionMu.Unlock()
	u.faction = f
}

// Persistent reports whether the unit survives scene transitions.
func (u *Unit) Persistent() bool {
	return u.persistent
}

// SetPersistent marks the unit as surviving scene transitions.
func (u *Unit) SetPersistent(persistent bool) {
	u.persistent = persistent
}
