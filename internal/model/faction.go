package model

import (
	"fmt"
	"strings"
)

// Faction is the allegiance tag of a unit, used for relation-based targeting.
type Faction int32

const (
	FactionFriend             Faction = 0
	FactionHostile            Faction = 1
	FactionNeutral            Faction = 2
	FactionObject             Faction = 3
	FactionSpecial            Faction = 998
	FactionInvulnerableExcept Faction = 999
	FactionAll                Faction = 1000
)

var factionNames = map[Faction]string{
	FactionFriend:             "FRIEND",
	FactionHostile:            "HOSTILE",
	FactionNeutral:            "NEUTRAL",
	FactionObject:             "OBJECT",
	FactionSpecial:            "SPECIAL",
	FactionInvulnerableExcept: "INVULNERABLE_EXCEPT",
	FactionAll:                "ALL",
}

// AllFactions returns every declared faction in ascending order.
func AllFactions() []Faction {
	return []Faction{
		FactionFriend,
		FactionHostile,
		FactionNeutral,
		FactionObject,
		FactionSpecial,
		FactionInvulnerableExcept,
		FactionAll,
	}
}

func (f Faction) String() string {
	if name, ok := factionNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Faction(%d)", int32(f))
}

// ParseFaction resolves a faction name (case-insensitive).
func ParseFaction(s string) (Faction, error) {
	for f, name := range factionNames {
		if strings.EqualFold(name, s) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown faction %q", s)
}

// Relation is the directional attitude of one faction towards another.
type Relation int32

const (
	RelationAlly    Relation = 0
	RelationEnemy   Relation = 1
	RelationNeutral Relation = 2
	// RelationNone is returned for pairs outside the configured faction set.
	// Distinct from RelationNeutral.
	RelationNone Relation = 999
)

var relationNames = map[Relation]string{
	RelationAlly:    "ALLY",
	RelationEnemy:   "ENEMY",
	RelationNeutral: "NEUTRAL",
	RelationNone:    "NO_RELATION",
}

func (r Relation) String() string {
	if name, ok := relationNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Relation(%d)", int32(r))
}

// ParseRelation resolves a relation name (case-insensitive).
func ParseRelation(s string) (Relation, error) {
	for r, name := range relationNames {
		if strings.EqualFold(name, s) {
			return r, nil
		}
	}
	return RelationNone, fmt.Errorf("unknown relation %q", s)
}
