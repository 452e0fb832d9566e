package model

import "sync"

// ObjectKind discriminates what a WorldObject is.
// Resolved once at creation; use AsUnit for a safe downcast.
type ObjectKind uint8

const (
	ObjectKindProp ObjectKind = iota // plain object without unit behaviour
	ObjectKindUnit                   // combat-capable unit
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectKindProp:
		return "prop"
	case ObjectKindUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// WorldObject is the base object of the simulation.
// Все объекты имеют ObjectID, Name и Location.
type WorldObject struct {
	objectID int64
	name     string
	kind     ObjectKind
	unit     *Unit // set only for ObjectKindUnit

	mu        sync.RWMutex
	location  Location
	active    bool
	destroyed bool
}

// NewWorldObject создаёт prop-объект (не юнит).
func NewWorldObject(objectID int64, name string, loc Location) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
		kind:     ObjectKindProp,
		location: loc,
		active:   true,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ObjectID() int64 {
	return w.objectID
}

// Name возвращает имя объекта.
func (w *WorldObject) Name() string {
	return w.name
}

// Kind returns the object discriminator.
func (w *WorldObject) Kind() ObjectKind {
	return w.kind
}

// AsUnit returns the unit view of the object if it is one.
func (w *WorldObject) AsUnit() (*Unit, bool) {
	if w == nil || w.kind != ObjectKindUnit || w.unit == nil {
		return nil, false
	}
	return w.unit, true
}

// Location возвращает копию координат объекта.
func (w *WorldObject) Location() Location {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.location
}

// SetLocation устанавливает новые координаты объекта.
func (w *WorldObject) SetLocation(loc Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.location = loc
}

// Active reports whether the object participates in the simulation.
func (w *WorldObject) Active() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// SetActive toggles participation. Inactive objects count as not alive
// for event listener pruning.
func (w *WorldObject) SetActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}

// MarkDestroyed flags the object as released. Irreversible.
func (w *WorldObject) MarkDestroyed() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroyed = true
	w.active = false
}

// Destroyed reports whether the object was released.
func (w *WorldObject) Destroyed() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.destroyed
}

// Alive reports whether listeners bound to this object are still valid.
func (w *WorldObject) Alive() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return !w.destroyed && w.active
}
