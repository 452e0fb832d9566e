package event

import (
	"fmt"

	"github.com/udisondev/unitsim/internal/model"
)

// Kind identifies a class of notifiable occurrence. Closed enumeration.
type Kind uint16

const (
	SceneLoadBegin Kind = iota
	SceneLoadComplete
	UnitSpawned
	UnitDestroyed
	UnitFactionChanged
	BuffAdded
	BuffLayerChanged
	BuffRemoved
)

var kindNames = [...]string{
	SceneLoadBegin:     "SCENE_LOAD_BEGIN",
	SceneLoadComplete:  "SCENE_LOAD_COMPLETE",
	UnitSpawned:        "UNIT_SPAWNED",
	UnitDestroyed:      "UNIT_DESTROYED",
	UnitFactionChanged: "UNIT_FACTION_CHANGED",
	BuffAdded:          "BUFF_ADDED",
	BuffLayerChanged:   "BUFF_LAYER_CHANGED",
	BuffRemoved:        "BUFF_REMOVED",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// SceneEvent is the payload of SceneLoadBegin / SceneLoadComplete.
type SceneEvent struct {
	Name string
}

// UnitEvent is the payload of unit lifecycle events.
// PrevFaction is meaningful only for UnitFactionChanged.
type UnitEvent struct {
	UnitID      int64
	Faction     model.Faction
	PrevFaction model.Faction
}

// BuffEvent is the payload of buff lifecycle events.
// RemoverID is -1 for self-expiry; PrevLayer is set for BuffLayerChanged.
type BuffEvent struct {
	UnitID       int64
	BuffID       int32
	InstigatorID int64
	RemoverID    int64
	Layer        int32
	PrevLayer    int32
}
