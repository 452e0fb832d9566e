package event

import "log/slog"

// Handle identifies one subscription. Go function values are not
// comparable, so a listener is unsubscribed by its handle.
type Handle uint64

// Owner is the receiver a listener is bound to.
// Listeners whose owner is no longer alive are dropped by PruneDeadListeners.
type Owner interface {
	Alive() bool
}

type listener struct {
	handle Handle
	fn     any // func() or func(T)
	owner  Owner
}

// Bus is a synchronous publish/subscribe dispatcher keyed by Kind.
//
// Publish binds every matching listener into a FIFO queue and drains it
// before returning. A listener that publishes re-enters the drain, so the
// nested event is fully delivered before the outer publish continues.
// Listeners of one kind are delivered in subscription order.
//
// Not safe for concurrent use: the bus runs on the simulation goroutine.
type Bus struct {
	listeners  map[Kind][]listener
	queue      []func()
	nextHandle Handle
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[Kind][]listener),
	}
}

// Subscribe registers a parameterless listener for kind.
// The same function subscribed twice is delivered twice.
// owner may be nil for listeners that are never pruned.
func (b *Bus) Subscribe(kind Kind, fn func(), owner Owner) Handle {
	if fn == nil {
		slog.Warn("nil listener ignored", "kind", kind)
		return 0
	}
	return b.add(kind, fn, owner)
}

// SubscribeTyped registers a listener receiving a payload of type T.
// It only matches PublishTyped calls with the same T.
func SubscribeTyped[T any](b *Bus, kind Kind, fn func(T), owner Owner) Handle {
	if fn == nil {
		slog.Warn("nil listener ignored", "kind", kind)
		return 0
	}
	return b.add(kind, fn, owner)
}

// Unsubscribe removes the subscription identified by h from kind.
// Returns false if kind or handle is unknown.
// Invocations already queued by an in-flight publish still run.
func (b *Bus) Unsubscribe(kind Kind, h Handle) bool {
	list, ok := b.listeners[kind]
	if !ok {
		return false
	}
	for i, l := range list {
		if l.handle == h {
			b.listeners[kind] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers a parameterless event to the untyped listeners of kind.
func (b *Bus) Publish(kind Kind) {
	for _, l := range b.listeners[kind] {
		if fn, ok := l.fn.(func()); ok {
			b.queue = append(b.queue, fn)
		}
	}
	b.drain()
}

// PublishTyped delivers payload to the listeners of kind subscribed with
// the same payload type.
func PublishTyped[T any](b *Bus, kind Kind, payload T) {
	for _, l := range b.listeners[kind] {
		if fn, ok := l.fn.(func(T)); ok {
			b.queue = append(b.queue, func() { fn(payload) })
		}
	}
	b.drain()
}

// PruneDeadListeners drops listeners whose owner is not alive and deletes
// kinds left without listeners. Returns the number of removed listeners.
func (b *Bus) PruneDeadListeners() int {
	removed := 0
	for kind, list := range b.listeners {
		kept := list[:0]
		for _, l := range list {
			if l.owner != nil && !l.owner.Alive() {
				removed++
				continue
			}
			kept = append(kept, l)
		}
		clear(list[len(kept):])

		if len(kept) == 0 {
			delete(b.listeners, kind)
			continue
		}
		b.listeners[kind] = kept
	}

	if removed > 0 {
		slog.Debug("pruned dead listeners", "removed", removed)
	}
	return removed
}

// ListenerCount returns the number of listeners registered for kind.
func (b *Bus) ListenerCount(kind Kind) int {
	return len(b.listeners[kind])
}

// HasKind reports whether kind has an entry (even an empty one).
func (b *Bus) HasKind(kind Kind) bool {
	_, ok := b.listeners[kind]
	return ok
}

func (b *Bus) add(kind Kind, fn any, owner Owner) Handle {
	b.nextHandle++
	h := b.nextHandle
	b.listeners[kind] = append(b.listeners[kind], listener{handle: h, fn: fn, owner: owner})
	return h
}

// drain runs queued invocations in FIFO order until the queue is empty.
func (b *Bus) drain() {
	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue[0] = nil
		b.queue = b.queue[1:]
		next()
	}
}
