package world

import (
	"log/slog"

	"github.com/udisondev/unitsim/internal/buff"
	"github.com/udisondev/unitsim/internal/data"
	"github.com/udisondev/unitsim/internal/model"
)

// Buff and attribute operations addressed by unit id.
// Unknown units degrade to no-ops and default values.

// BuffManager returns the buff manager of a live unit.
func (s *Simulation) BuffManager(unitID int64) (*buff.Manager, bool) {
	mgr, ok := s.buffs[unitID]
	return mgr, ok
}

// AddBuff applies buffID to the unit on behalf of instigatorID.
func (s *Simulation) AddBuff(unitID, instigatorID int64, buffID int32) bool {
	mgr, ok := s.buffs[unitID]
	if !ok {
		slog.Warn("add buff: unknown unit", "unit", unitID, "buffID", buffID)
		return false
	}
	return mgr.AddBuff(instigatorID, buffID)
}

// RemoveBuff strips one layer of buffID.
func (s *Simulation) RemoveBuff(unitID, removerID int64, buffID int32) {
	if mgr, ok := s.buffs[unitID]; ok {
		mgr.RemoveBuff(removerID, buffID)
	}
}

// DeleteBuff removes buffID regardless of its layers.
func (s *Simulation) DeleteBuff(unitID, removerID int64, buffID int32) {
	if mgr, ok := s.buffs[unitID]; ok {
		mgr.DeleteBuff(removerID, buffID)
	}
}

// BuffCount returns the number of buffs on the unit.
func (s *Simulation) BuffCount(unitID int64) int {
	if mgr, ok := s.buffs[unitID]; ok {
		return mgr.BuffCount()
	}
	return 0
}

// BuffCountByTag returns the number of buffs with tag on the unit.
func (s *Simulation) BuffCountByTag(unitID int64, tag data.BuffTag) int {
	if mgr, ok := s.buffs[unitID]; ok {
		return mgr.BuffCountByTag(tag)
	}
	return 0
}

// AddAttribute registers an attribute on the unit (create-once).
func (s *Simulation) AddAttribute(unitID int64, kind model.AttributeKind, base float64) bool {
	unit, ok := s.Unit(unitID)
	if !ok {
		return false
	}
	return unit.Attributes().AddAttribute(kind, base)
}

// GetAttributeValue returns the derived value, or the default value when
// the unit or attribute is unknown.
func (s *Simulation) GetAttributeValue(unitID int64, kind model.AttributeKind) float64 {
	unit, ok := s.Unit(unitID)
	if !ok {
		return model.DefaultAttribute().Value()
	}
	return unit.Attributes().Value(kind)
}

// GetAttributeStruct returns a copy of the attribute record.
func (s *Simulation) GetAttributeStruct(unitID int64, kind model.AttributeKind) model.Attribute {
	unit, ok := s.Unit(unitID)
	if !ok {
		return model.DefaultAttribute()
	}
	return unit.Attributes().Get(kind)
}

// SetAttributeDelta shifts the attribute's components by the given deltas.
func (s *Simulation) SetAttributeDelta(unitID int64, kind model.AttributeKind, dAdditive, dTempAdditive, dPreMul, dPostMul float64) bool {
	unit, ok := s.Unit(unitID)
	if !ok {
		slog.Warn("set attribute delta: unknown unit", "unit", unitID, "attribute", kind)
		return false
	}
	return unit.Attributes().ApplyDelta(kind, dAdditive, dTempAdditive, dPreMul, dPostMul)
}

// SetAttributeLocked locks or unlocks the attribute.
func (s *Simulation) SetAttributeLocked(unitID int64, kind model.AttributeKind, locked bool) bool {
	unit, ok := s.Unit(unitID)
	if !ok {
		return false
	}
	return unit.Attributes().SetLocked(kind, locked)
}
