package model

import (
	"log/slog"
	"slices"
	"sync"
)

// AttributeStore holds the attributes of a single unit.
//
// Attributes are registered once (AddAttribute) and afterwards changed
// only by relative deltas. There is no per-source ledger: callers that
// want to revert a contribution apply the inverse delta themselves.
//
// Thread-safe: all methods are protected by sync.RWMutex.
type AttributeStore struct {
	mu    sync.RWMutex
	attrs map[AttributeKind]*Attribute
}

// NewAttributeStore creates an empty store.
func NewAttributeStore() *AttributeStore {
	return &AttributeStore{
		attrs: make(map[AttributeKind]*Attribute, 8),
	}
}

// AddAttribute registers kind with the given base value.
// Returns false if kind is already registered; the existing record is kept.
func (s *AttributeStore) AddAttribute(kind AttributeKind, base float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attrs[kind]; ok {
		slog.Warn("attribute already registered", "kind", kind)
		return false
	}

	attr := NewAttribute(kind, base)
	s.attrs[kind] = &attr
	return true
}

// Has reports whether kind is registered.
func (s *AttributeStore) Has(kind AttributeKind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.attrs[kind]
	return ok
}

// Value returns the derived value of kind.
// Unknown kinds yield DefaultAttribute().Value().
func (s *AttributeStore) Value(kind AttributeKind) float64 {
	return s.Get(kind).Value()
}

// Get returns a copy of the attribute record, or DefaultAttribute() if absent.
func (s *AttributeStore) Get(kind AttributeKind) Attribute {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if attr, ok := s.attrs[kind]; ok {
		return *attr
	}
	return DefaultAttribute()
}

// ApplyDelta adds the deltas to the additive, temp-additive and multiplier
// fields. Deltas are relative: a multiplier of 1.5 is reached by +0.5.
// No-op (returns false) if kind is absent or locked.
func (s *AttributeStore) ApplyDelta(kind AttributeKind, dAdditive, dTempAdditive, dPreMul, dPostMul float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	attr, ok := s.mutable(kind)
	if !ok {
		return false
	}

	attr.TempAdditive += dTempAdditive
	attr.Additive += dAdditive
	attr.PreMultiplier += dPreMul
	attr.PostMultiplier += dPostMul
	return true
}

// ChangeBase adds delta to the base value. Same guards as ApplyDelta.
func (s *AttributeStore) ChangeBase(kind AttributeKind, delta float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	attr, ok := s.mutable(kind)
	if !ok {
		return false
	}
	attr.Base += delta
	return true
}

// SetBase overwrites the base value. Same guards as ApplyDelta.
func (s *AttributeStore) SetBase(kind AttributeKind, value float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	attr, ok := s.mutable(kind)
	if !ok {
		return false
	}
	attr.Base = value
	return true
}

// SetLocked locks or unlocks kind. No-op if kind is absent.
func (s *AttributeStore) SetLocked(kind AttributeKind, locked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	attr, ok := s.attrs[kind]
	if !ok {
		slog.Warn("lock on unregistered attribute", "kind", kind)
		return false
	}
	attr.Locked = locked
	return true
}

// Kinds returns the registered kinds in ascending order.
func (s *AttributeStore) Kinds() []AttributeKind {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kinds := make([]AttributeKind, 0, len(s.attrs))
	for k := range s.attrs {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// mutable returns the mutable record if it exists and is unlocked.
// Must be called with mu held.
func (s *AttributeStore) mutable(kind AttributeKind) (*Attribute, bool) {
	attr, ok := s.attrs[kind]
	if !ok {
		slog.Debug("delta on unregistered attribute", "kind", kind)
		return nil, false
	}
	if attr.Locked {
		slog.Warn("delta on locked attribute rejected", "kind", kind)
		return nil, false
	}
	return attr, true
}
