package buff

import (
	"log/slog"

	"github.com/udisondev/unitsim/internal/model"
)

// StatModifierBehavior shifts one attribute by a fixed delta per layer
// while the buff is active, and reverts it on deactivation and removal.
//
// Params: "attribute" (kind name), "additive", "temp_additive",
// "pre_multiplier", "post_multiplier" (per-layer deltas, default 0).
type StatModifierBehavior struct {
	kind         model.AttributeKind
	additive     float64
	tempAdditive float64
	pre          float64
	post         float64

	// applied: сколько слоёв сейчас учтено в атрибуте
	applied int32
}

func NewStatModifierBehavior(params map[string]string) (Behavior, error) {
	kind, err := attributeParam(params)
	if err != nil {
		return nil, err
	}

	b := &StatModifierBehavior{kind: kind}
	for key, dst := range map[string]*float64{
		"additive":        &b.additive,
		"temp_additive":   &b.tempAdditive,
		"pre_multiplier":  &b.pre,
		"post_multiplier": &b.post,
	} {
		if *dst, err = floatParam(params, key, 0); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Applied returns the number of layers currently reflected in the attribute.
func (b *StatModifierBehavior) Applied() int32 { return b.applied }

func (b *StatModifierBehavior) OnAdded(*Instance) {}

func (b *StatModifierBehavior) OnActivated(inst *Instance) { b.sync(inst) }

func (b *StatModifierBehavior) OnTick(*Instance) {}

func (b *StatModifierBehavior) OnDeactivated(inst *Instance) { b.sync(inst) }

func (b *StatModifierBehavior) OnRemoved(inst *Instance, _ int64) { b.sync(inst) }

func (b *StatModifierBehavior) OnLayerChanged(inst *Instance, _, _ int32) { b.sync(inst) }

// sync brings the applied layer count to the instance's effective layers:
// its layer while active, zero otherwise.
func (b *StatModifierBehavior) sync(inst *Instance) {
	var target int32
	if inst.Activated() {
		target = inst.Layer()
	}
	diff := float64(target - b.applied)
	if diff == 0 {
		return
	}

	unit := inst.Unit()
	if unit == nil {
		return
	}
	ok := unit.Attributes().ApplyDelta(b.kind,
		diff*b.additive, diff*b.tempAdditive, diff*b.pre, diff*b.post)
	if !ok {
		slog.Warn("stat modifier not applied",
			"buffID", inst.BuffID(),
			"unit", unit.ObjectID(),
			"attribute", b.kind,
			"layers", target)
		return
	}
	b.applied = target
}
