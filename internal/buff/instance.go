package buff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/looplab/fsm"

	"github.com/udisondev/unitsim/internal/data"
	"github.com/udisondev/unitsim/internal/event"
	"github.com/udisondev/unitsim/internal/model"
	"github.com/udisondev/unitsim/internal/scheduler"
)

// State of a buff instance.
type State uint8

const (
	StateInactive State = iota
	StateActive
	StateRemoved // terminal
)

var stateNames = [...]string{
	StateInactive: "INACTIVE",
	StateActive:   "ACTIVE",
	StateRemoved:  "REMOVED",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Lifecycle transitions. REMOVED has no way out.
const (
	eventActivate   = "activate"
	eventDeactivate = "deactivate"
	eventRemove     = "remove"
)

var lifecycleEvents = fsm.Events{
	{Name: eventActivate, Src: []string{StateInactive.String()}, Dst: StateActive.String()},
	{Name: eventDeactivate, Src: []string{StateActive.String()}, Dst: StateInactive.String()},
	{Name: eventRemove, Src: []string{StateInactive.String(), StateActive.String()}, Dst: StateRemoved.String()},
}

// Instance is one buff on one unit.
//
// Layers start at 1 and never exceed the configured max layer. While
// active, the instance ticks every TickInterval until its life reaches
// Duration or it is deactivated; then it either loses one layer (and
// restarts the cycle for the remaining layers once active) or is removed
// entirely, depending on RemoveAllOnExpiry.
//
// Instances are created by Manager and must only be used on the
// simulation goroutine.
type Instance struct {
	manager      *Manager
	cfg          *data.BuffConfig
	behavior     Behavior
	instigatorID int64

	layer     int32
	life      time.Duration
	activated bool
	started   bool
	lifecycle *fsm.FSM

	tick scheduler.TimerID // 0 when no tick is pending
}

func newInstance(m *Manager, cfg *data.BuffConfig, b Behavior, instigatorID int64) *Instance {
	return &Instance{
		manager:      m,
		cfg:          cfg,
		behavior:     b,
		instigatorID: instigatorID,
		layer:        1,
		lifecycle:    fsm.NewFSM(StateInactive.String(), lifecycleEvents, nil),
	}
}

// BuffID returns the catalog id.
func (i *Instance) BuffID() int32 { return i.cfg.ID }

// Config returns the static buff config.
func (i *Instance) Config() *data.BuffConfig { return i.cfg }

// Behavior returns the concrete buff logic.
func (i *Instance) Behavior() Behavior { return i.behavior }

// Unit returns the unit carrying the buff.
func (i *Instance) Unit() *model.Unit { return i.manager.unit }

// InstigatorID returns the id of the unit that applied the buff.
func (i *Instance) InstigatorID() int64 { return i.instigatorID }

// Layer returns the current stack count.
func (i *Instance) Layer() int32 { return i.layer }

// Life returns the time elapsed in the current tick cycle.
func (i *Instance) Life() time.Duration { return i.life }

// Activated reports whether the instance is ticking.
func (i *Instance) Activated() bool { return i.activated }

// State returns the lifecycle state.
func (i *Instance) State() State {
	cur := i.lifecycle.Current()
	for st, name := range stateNames {
		if name == cur {
			return State(st)
		}
	}
	return StateRemoved
}

// Removed reports whether the instance reached its terminal state.
func (i *Instance) Removed() bool { return i.lifecycle.Is(StateRemoved.String()) }

// Start runs OnAdded, activates the instance and begins the tick cycle.
// One-shot buffs are removed before Start returns.
func (i *Instance) Start() {
	if i.started || i.Removed() {
		slog.Warn("buff already started", "buffID", i.cfg.ID, "unit", i.unitID())
		return
	}
	i.started = true

	if !i.activated {
		i.behavior.OnAdded(i)
		if i.Removed() {
			return
		}
		i.publish(event.BuffAdded, event.BuffEvent{RemoverID: NoRemover, Layer: i.layer})
		i.Activate()
	}

	if i.cfg.OneShot {
		i.ForceRemove(NoRemover)
	}
}

// Activate starts a new tick cycle unless one is still pending.
// No-op if already active or removed.
func (i *Instance) Activate() {
	if i.activated || i.Removed() {
		return
	}
	i.activated = true
	i.transition(eventActivate)
	slog.Debug("buff activated", "buffID", i.cfg.ID, "unit", i.unitID())

	i.behavior.OnActivated(i)
	if i.started {
		i.scheduleTick()
	}
}

// Deactivate ends the current cycle: the pending tick still fires and
// then expires the cycle as if its duration had run out. No-op if not active.
func (i *Instance) Deactivate() {
	if !i.activated {
		return
	}
	i.activated = false
	i.transition(eventDeactivate)
	slog.Debug("buff deactivated", "buffID", i.cfg.ID, "unit", i.unitID())

	i.behavior.OnDeactivated(i)
}

// AddLayer stacks one more layer, bounded by the max layer.
// With RefreshOnLayer the current cycle restarts even at the bound.
func (i *Instance) AddLayer() {
	if i.Removed() {
		return
	}

	if i.layer < i.cfg.EffectiveMaxLayer() {
		i.setLayer(i.layer+1, NoRemover)
	}
	if i.cfg.RefreshOnLayer {
		i.life = 0
	}
}

// LayerDown removes one layer; the last layer removes the instance.
func (i *Instance) LayerDown(removerID int64) {
	if i.Removed() {
		return
	}

	if i.layer-1 <= 0 {
		i.layer = 0
		i.ForceRemove(removerID)
		return
	}
	i.setLayer(i.layer-1, removerID)
}

// ForceRemove cancels the pending tick, runs OnRemoved and detaches the
// instance from its manager. Only the first call has an effect.
func (i *Instance) ForceRemove(removerID int64) {
	if i.Removed() {
		return
	}
	i.transition(eventRemove)
	i.tick = 0
	i.manager.deps.Scheduler.CancelOwner(i)
	i.activated = false

	slog.Debug("buff removed",
		"buffID", i.cfg.ID,
		"unit", i.unitID(),
		"remover", removerID)

	i.behavior.OnRemoved(i, removerID)
	i.publish(event.BuffRemoved, event.BuffEvent{RemoverID: removerID, Layer: i.layer})
	i.manager.detach(i)
}

func (i *Instance) transition(name string) {
	if err := i.lifecycle.Event(context.Background(), name); err != nil {
		slog.Error("buff lifecycle transition failed",
			"buffID", i.cfg.ID,
			"unit", i.unitID(),
			"event", name,
			"state", i.lifecycle.Current(),
			"error", err)
	}
}

func (i *Instance) setLayer(layer int32, removerID int64) {
	prev := i.layer
	i.layer = layer

	if obs, ok := i.behavior.(LayerObserver); ok {
		obs.OnLayerChanged(i, prev, layer)
	}
	i.publish(event.BuffLayerChanged, event.BuffEvent{
		RemoverID: removerID,
		Layer:     layer,
		PrevLayer: prev,
	})
}

func (i *Instance) scheduleTick() {
	if i.cfg.OneShot || !i.activated || i.tick != 0 {
		return
	}
	if i.life >= i.cfg.Duration {
		i.expire()
		return
	}
	i.tick = i.manager.deps.Scheduler.After(i, i.cfg.TickInterval, i.onTimer)
}

func (i *Instance) onTimer() {
	i.tick = 0
	if i.Removed() {
		return
	}

	i.life += i.cfg.TickInterval
	i.behavior.OnTick(i)

	// OnTick may have removed the instance
	if i.Removed() {
		return
	}
	if !i.activated {
		i.expire()
		return
	}
	i.scheduleTick()
}

// expire ends the current cycle.
func (i *Instance) expire() {
	if i.cfg.RemoveAllOnExpiry {
		i.ForceRemove(NoRemover)
		return
	}

	i.LayerDown(NoRemover)
	if i.Removed() {
		return
	}
	// оставшиеся слои начинают новый цикл; неактивный бафф ждёт Activate
	i.life = 0
	i.scheduleTick()
}

func (i *Instance) unitID() int64 {
	if i.manager.unit == nil {
		return -1
	}
	return i.manager.unit.ObjectID()
}

func (i *Instance) publish(kind event.Kind, ev event.BuffEvent) {
	bus := i.manager.deps.Bus
	if bus == nil {
		return
	}
	ev.UnitID = i.unitID()
	ev.BuffID = i.cfg.ID
	ev.InstigatorID = i.instigatorID
	event.PublishTyped(bus, kind, ev)
}
