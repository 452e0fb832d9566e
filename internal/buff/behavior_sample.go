package buff

import "log/slog"

// SampleBehavior only logs its lifecycle. Used by the sample buff.
type SampleBehavior struct{}

func NewSampleBehavior(map[string]string) (Behavior, error) {
	return SampleBehavior{}, nil
}

func (SampleBehavior) OnAdded(inst *Instance) {
	slog.Debug("sample buff added", "buffID", inst.BuffID(), "instigator", inst.InstigatorID())
}

func (SampleBehavior) OnActivated(inst *Instance) {
	slog.Debug("sample buff activated", "buffID", inst.BuffID())
}

func (SampleBehavior) OnTick(inst *Instance) {
	slog.Debug("sample buff tick", "buffID", inst.BuffID(), "layer", inst.Layer(), "life", inst.Life())
}

func (SampleBehavior) OnDeactivated(inst *Instance) {
	slog.Debug("sample buff deactivated", "buffID", inst.BuffID())
}

func (SampleBehavior) OnRemoved(inst *Instance, removerID int64) {
	slog.Debug("sample buff removed", "buffID", inst.BuffID(), "remover", removerID)
}
