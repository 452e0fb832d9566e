package faction

import (
	"log/slog"
	"sync"

	"github.com/udisondev/unitsim/internal/model"
)

// RelationMatrix stores the directional relation of every ordered faction
// pair over a closed faction set.
//
// Relations are NOT symmetric: SetRelation(a, b) leaves (b, a) untouched,
// which allows one-sided aggression.
//
// Thread-safe: all methods are protected by sync.RWMutex.
type RelationMatrix struct {
	mu        sync.RWMutex
	factions  []model.Faction
	relations map[model.Faction]map[model.Faction]model.Relation
}

// NewRelationMatrix creates a matrix over the given faction set.
// Without arguments the set is model.AllFactions().
// Setup must be called before use.
func NewRelationMatrix(factions ...model.Faction) *RelationMatrix {
	if len(factions) == 0 {
		factions = model.AllFactions()
	}
	return &RelationMatrix{
		factions: append([]model.Faction(nil), factions...),
	}
}

// Setup populates every ordered pair with RelationNeutral.
// A second Setup is rejected: returns false and the existing table is kept.
func (m *RelationMatrix) Setup() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.relations != nil {
		slog.Error("faction relation matrix already set up")
		return false
	}

	m.relations = make(map[model.Faction]map[model.Faction]model.Relation, len(m.factions))
	for _, f := range m.factions {
		row := make(map[model.Faction]model.Relation, len(m.factions))
		for _, other := range m.factions {
			row[other] = model.RelationNeutral
		}
		m.relations[f] = row
	}
	return true
}

// Ready reports whether Setup has been called.
func (m *RelationMatrix) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.relations != nil
}

// Contains reports whether f belongs to the configured faction set.
func (m *RelationMatrix) Contains(f model.Faction) bool {
	for _, known := range m.factions {
		if known == f {
			return true
		}
	}
	return false
}

// SetRelation sets the attitude of faction a towards faction b.
// Out-of-set factions are rejected with a warning.
func (m *RelationMatrix) SetRelation(a, b model.Faction, relation model.Relation) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.relations[a]
	if ok {
		_, ok = row[b]
	}
	if !ok {
		slog.Warn("faction relation set aborted: invalid parameters",
			"from", a,
			"to", b,
			"relation", relation)
		return false
	}

	row[b] = relation
	return true
}

// Relation returns the attitude of faction a towards faction b,
// or model.RelationNone if either faction is outside the configured set.
func (m *RelationMatrix) Relation(a, b model.Faction) model.Relation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if row, ok := m.relations[a]; ok {
		if r, ok := row[b]; ok {
			return r
		}
	}

	slog.Warn("faction relation query out of set", "from", a, "to", b)
	return model.RelationNone
}

// ResetAll restores RelationNeutral for every pair.
func (m *RelationMatrix) ResetAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.relations {
		for other := range row {
			row[other] = model.RelationNeutral
		}
	}
}
