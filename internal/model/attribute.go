package model

import (
	"fmt"
	"strings"
)

// AttributeKind identifies a numeric unit attribute.
// Closed enumeration: new kinds are added here at build time.
type AttributeKind int32

const (
	AttributeUnknown     AttributeKind = -1
	AttributeHealth      AttributeKind = 0
	AttributeMaxHealth   AttributeKind = 1
	AttributeAttack      AttributeKind = 2
	AttributeDefense     AttributeKind = 3
	AttributeMoveSpeed   AttributeKind = 4
	AttributeAttackSpeed AttributeKind = 5
)

var attributeNames = map[AttributeKind]string{
	AttributeUnknown:     "Unknown",
	AttributeHealth:      "Health",
	AttributeMaxHealth:   "MaxHealth",
	AttributeAttack:      "Attack",
	AttributeDefense:     "Defense",
	AttributeMoveSpeed:   "MoveSpeed",
	AttributeAttackSpeed: "AttackSpeed",
}

// String returns the attribute name used in configs and logs.
func (k AttributeKind) String() string {
	if name, ok := attributeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("AttributeKind(%d)", int32(k))
}

// ParseAttributeKind resolves an attribute name (case-insensitive).
func ParseAttributeKind(s string) (AttributeKind, error) {
	for kind, name := range attributeNames {
		if kind == AttributeUnknown {
			continue
		}
		if strings.EqualFold(name, s) {
			return kind, nil
		}
	}
	return AttributeUnknown, fmt.Errorf("unknown attribute kind %q", s)
}

// Attribute is a layered numeric value of a unit.
//
// Final value = (Base + Additive + TempAdditive) * PreMultiplier * PostMultiplier.
// Additive is meant for permanent sources (equipment, level), TempAdditive
// for transient ones (buffs). Value is always recomputed, never stored.
type Attribute struct {
	Kind           AttributeKind
	Name           string
	Base           float64
	Additive       float64
	TempAdditive   float64
	PreMultiplier  float64
	PostMultiplier float64
	Locked         bool
}

// NewAttribute creates an attribute with neutral modifiers.
func NewAttribute(kind AttributeKind, base float64) Attribute {
	return Attribute{
		Kind:           kind,
		Name:           kind.String(),
		Base:           base,
		PreMultiplier:  1,
		PostMultiplier: 1,
	}
}

// DefaultAttribute is returned for lookups of kinds a unit does not have.
func DefaultAttribute() Attribute {
	return NewAttribute(AttributeUnknown, 0)
}

// Value returns the derived attribute value.
func (a Attribute) Value() float64 {
	return (a.Base + a.Additive + a.TempAdditive) * a.PreMultiplier * a.PostMultiplier
}
