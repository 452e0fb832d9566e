package world

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/udisondev/unitsim/internal/model"
)

// ObjectRegistry owns object identity and lifetime.
//
// Identities are monotonically increasing non-negative integers, unique for
// the lifetime of the process and never reused.
type ObjectRegistry interface {
	// Instantiate assigns a fresh identity and registers the object built with it.
	Instantiate(build func(id int64) *model.WorldObject) *model.WorldObject
	// Destroy releases the object. Returns false for unknown ids.
	Destroy(id int64) bool
	// Get resolves an identity to its object.
	Get(id int64) (*model.WorldObject, bool)
	// IDs returns live identities in ascending order.
	IDs() []int64
}

// Objects is the default in-memory ObjectRegistry. Safe for concurrent use.
type Objects struct {
	nextID atomic.Int64

	mu      sync.RWMutex
	objects map[int64]*model.WorldObject
}

// NewObjects creates an empty registry. The first identity is 1;
// 0 is never handed out.
func NewObjects() *Objects {
	return &Objects{
		objects: make(map[int64]*model.WorldObject),
	}
}

// NextID reserves the next identity. Thread-safe via atomic increment.
func (o *Objects) NextID() int64 {
	return o.nextID.Add(1)
}

// Instantiate implements ObjectRegistry.
func (o *Objects) Instantiate(build func(id int64) *model.WorldObject) *model.WorldObject {
	id := o.NextID()
	obj := build(id)
	if obj == nil {
		slog.Warn("object builder returned nil", "objectID", id)
		return nil
	}

	o.mu.Lock()
	o.objects[id] = obj
	o.mu.Unlock()
	return obj
}

// Destroy implements ObjectRegistry.
func (o *Objects) Destroy(id int64) bool {
	o.mu.Lock()
	obj, ok := o.objects[id]
	delete(o.objects, id)
	o.mu.Unlock()

	if !ok {
		return false
	}
	obj.MarkDestroyed()
	return true
}

// Get implements ObjectRegistry.
func (o *Objects) Get(id int64) (*model.WorldObject, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	obj, ok := o.objects[id]
	return obj, ok
}

// IDs implements ObjectRegistry.
func (o *Objects) IDs() []int64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Sorted(maps.Keys(o.objects))
}

// Len returns the number of live objects.
func (o *Objects) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.objects)
}
