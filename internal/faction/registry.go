package faction

import (
	"slices"
	"sync"

	"github.com/udisondev/unitsim/internal/model"
)

// Registry records which units belong to which faction.
// A unit id appears in at most one bucket; buckets keep insertion order.
//
// Thread-safe: all methods are protected by sync.RWMutex.
type Registry struct {
	mu      sync.RWMutex
	buckets map[model.Faction][]int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		buckets: make(map[model.Faction][]int64),
	}
}

// Record appends unitID to faction f.
// An id already present anywhere is moved instead of duplicated.
func (r *Registry) Record(f model.Faction, unitID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeEverywhereLocked(unitID)
	r.buckets[f] = append(r.buckets[f], unitID)
}

// Move removes unitID from every bucket and appends it to faction f.
func (r *Registry) Move(unitID int64, f model.Faction) {
	r.Record(f, unitID)
}

// Remove deletes unitID from faction f only.
// Returns false if the unit was not in that bucket.
func (r *Registry) Remove(f model.Faction, unitID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.buckets[f]
	idx := slices.Index(bucket, unitID)
	if idx < 0 {
		return false
	}
	r.buckets[f] = slices.Delete(bucket, idx, idx+1)
	return true
}

// RemoveEverywhere deletes unitID from all buckets.
func (r *Registry) RemoveEverywhere(unitID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeEverywhereLocked(unitID)
}

// Count returns the number of units in faction f.
func (r *Registry) Count(f model.Faction) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buckets[f])
}

// Total returns the number of recorded units across all factions.
func (r *Registry) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, bucket := range r.buckets {
		total += len(bucket)
	}
	return total
}

// Units returns a copy of faction f's bucket in insertion order.
func (r *Registry) Units(f model.Faction) []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.buckets[f])
}

// FactionOf returns the faction whose bucket holds unitID.
func (r *Registry) FactionOf(unitID int64) (model.Faction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for f, bucket := range r.buckets {
		if slices.Contains(bucket, unitID) {
			return f, true
		}
	}
	return 0, false
}

// Retain keeps only the ids for which keep returns true.
// Surviving ids keep their bucket order. Returns the number of dropped ids.
func (r *Registry) Retain(keep func(unitID int64) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for f, bucket := range r.buckets {
		n := len(bucket)
		bucket = slices.DeleteFunc(bucket, func(id int64) bool { return !keep(id) })
		dropped += n - len(bucket)
		if len(bucket) == 0 {
			delete(r.buckets, f)
			continue
		}
		r.buckets[f] = bucket
	}
	return dropped
}

// Clear drops every bucket.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.buckets)
}

// removeEverywhereLocked must be called with mu held.
func (r *Registry) removeEverywhereLocked(unitID int64) {
	for f, bucket := range r.buckets {
		if idx := slices.Index(bucket, unitID); idx >= 0 {
			r.buckets[f] = slices.Delete(bucket, idx, idx+1)
		}
	}
}
