package buff

import "github.com/udisondev/unitsim/internal/model"

// InstantBehavior changes an attribute's base value once, when added.
// Paired with one-shot configs. Params: "attribute", "delta".
type InstantBehavior struct {
	kind  model.AttributeKind
	delta float64
}

func NewInstantBehavior(params map[string]string) (Behavior, error) {
	kind, err := attributeParam(params)
	if err != nil {
		return nil, err
	}
	delta, err := floatParam(params, "delta", 0)
	if err != nil {
		return nil, err
	}
	return &InstantBehavior{kind: kind, delta: delta}, nil
}

func (b *InstantBehavior) OnAdded(inst *Instance) {
	if unit := inst.Unit(); unit != nil {
		unit.Attributes().ChangeBase(b.kind, b.delta)
	}
}

func (b *InstantBehavior) OnActivated(*Instance)      {}
func (b *InstantBehavior) OnTick(*Instance)           {}
func (b *InstantBehavior) OnDeactivated(*Instance)    {}
func (b *InstantBehavior) OnRemoved(*Instance, int64) {}
