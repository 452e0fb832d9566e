package buff

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/udisondev/unitsim/internal/data"
)

// ErrUnknownBehavior is returned when a buff class has no registered factory.
var ErrUnknownBehavior = errors.New("unknown buff behavior")

// NoRemover is the remover id for self-expiry and unit teardown.
const NoRemover int64 = -1

// Behavior is the concrete logic of a buff class.
// Callbacks run on the simulation goroutine, one Behavior value per Instance.
type Behavior interface {
	// OnAdded is called once, when the instance is created on a unit.
	OnAdded(inst *Instance)
	// OnActivated is called on every Inactive → Active transition.
	OnActivated(inst *Instance)
	// OnTick is called every tick interval while active.
	OnTick(inst *Instance)
	// OnDeactivated is called on every Active → Inactive transition.
	OnDeactivated(inst *Instance)
	// OnRemoved is called once, when the instance is destroyed.
	// removerID is NoRemover for self-expiry.
	OnRemoved(inst *Instance, removerID int64)
}

// LayerObserver is implemented by behaviors that react to stack changes.
type LayerObserver interface {
	OnLayerChanged(inst *Instance, prev, cur int32)
}

// Factory creates a Behavior from catalog params.
type Factory func(params map[string]string) (Behavior, error)

// behaviorRegistry maps buff class → factory.
// Populated by init() functions in individual behavior files.
var behaviorRegistry = map[string]Factory{}

// RegisterBehavior registers a behavior factory by class name.
// Called from init(); a later registration replaces the earlier one.
func RegisterBehavior(class string, factory Factory) {
	behaviorRegistry[class] = factory
}

// NewBehavior creates a behavior for class using the registered factory.
func NewBehavior(class string, params map[string]string) (Behavior, error) {
	factory, ok := behaviorRegistry[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBehavior, class)
	}
	b, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("building %s behavior: %w", class, err)
	}
	return b, nil
}

// RegisteredClasses returns registered class names, sorted.
func RegisteredClasses() []string {
	return slices.Sorted(maps.Keys(behaviorRegistry))
}

// ValidateCatalog checks that every buff in c resolves to a behavior.
// Intended to run once at startup; a non-nil error is fatal.
func ValidateCatalog(c *data.BuffCatalog) error {
	var errs []error
	for _, cfg := range c.Configs() {
		if _, err := NewBehavior(cfg.Class, cfg.Params); err != nil {
			errs = append(errs, fmt.Errorf("buff %d: %w", cfg.ID, err))
		}
	}
	return errors.Join(errs...)
}

func init() {
	RegisterBehavior("SampleBuff", NewSampleBehavior)
	RegisterBehavior("StatModifier", NewStatModifierBehavior)
	RegisterBehavior("Periodic", NewPeriodicBehavior)
	RegisterBehavior("Instant", NewInstantBehavior)
}
