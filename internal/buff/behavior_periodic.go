package buff

import (
	"log/slog"

	"github.com/udisondev/unitsim/internal/model"
)

// PeriodicBehavior changes an attribute's base value on every tick
// (damage over time, regeneration).
// Params: "attribute", "delta" (per tick), "per_layer" (scale by layer, default true).
type PeriodicBehavior struct {
	kind     model.AttributeKind
	delta    float64
	perLayer bool
}

func NewPeriodicBehavior(params map[string]string) (Behavior, error) {
	kind, err := attributeParam(params)
	if err != nil {
		return nil, err
	}
	delta, err := floatParam(params, "delta", 0)
	if err != nil {
		return nil, err
	}
	perLayer, err := boolParam(params, "per_layer", true)
	if err != nil {
		return nil, err
	}
	return &PeriodicBehavior{kind: kind, delta: delta, perLayer: perLayer}, nil
}

func (b *PeriodicBehavior) OnAdded(*Instance)          {}
func (b *PeriodicBehavior) OnActivated(*Instance)      {}
func (b *PeriodicBehavior) OnDeactivated(*Instance)    {}
func (b *PeriodicBehavior) OnRemoved(*Instance, int64) {}

func (b *PeriodicBehavior) OnTick(inst *Instance) {
	unit := inst.Unit()
	if unit == nil {
		return
	}

	amount := b.delta
	if b.perLayer {
		amount *= float64(inst.Layer())
	}
	if !unit.Attributes().ChangeBase(b.kind, amount) {
		return
	}

	slog.Debug("periodic buff tick",
		"buffID", inst.BuffID(),
		"unit", unit.ObjectID(),
		"attribute", b.kind,
		"amount", amount)
}
