package scheduler

import (
	"container/heap"
	"time"
)

// TimerID identifies a pending callback.
type TimerID uint64

// Owner groups timers so they can be cancelled together
// (e.g. every pending tick of one buff instance). Must be comparable,
// usually a pointer.
type Owner any

type timer struct {
	id    TimerID
	due   time.Duration
	seq   uint64
	owner Owner
	fn    func()
	index int // index in the heap, -1 once popped/removed
}

// timerQueue реализует heap.Interface: min-heap по (due, seq).
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil // избегаем утечки памяти
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs continuations after a delay on a virtual clock.
//
// Time only moves in Advance, so the simulation is driven either by a
// wall-clock runner or step by step from tests. Callbacks with equal due
// time run in scheduling order.
//
// Not safe for concurrent use: the scheduler runs on the simulation goroutine.
type Scheduler struct {
	now    time.Duration
	queue  timerQueue
	byID   map[TimerID]*timer
	nextID TimerID
	seq    uint64
}

// New creates a scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{
		byID: make(map[TimerID]*timer),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of scheduled callbacks.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// After schedules fn to run once d has elapsed. Negative d is treated as 0.
func (s *Scheduler) After(owner Owner, d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++

	t := &timer{
		id:    s.nextID,
		due:   s.now + d,
		seq:   s.seq,
		owner: owner,
		fn:    fn,
	}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending callback. Returns false if it already ran or
// was cancelled.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	s.remove(t)
	return true
}

// CancelOwner removes every pending callback scheduled for owner.
// Returns the number of cancelled callbacks.
func (s *Scheduler) CancelOwner(owner Owner) int {
	if owner == nil {
		return 0
	}

	var victims []*timer
	for _, t := range s.queue {
		if t.owner == owner {
			victims = append(victims, t)
		}
	}
	for _, t := range victims {
		s.remove(t)
	}
	return len(victims)
}

// Advance moves the clock forward by dt and runs every callback that
// becomes due, in due order. Callbacks scheduled by running callbacks are
// also executed if they fall inside the window.
// Returns the number of executed callbacks.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	ran := 0

	for len(s.queue) > 0 && s.queue[0].due <= target {
		t := heap.Pop(&s.queue).(*timer)
		delete(s.byID, t.id)

		s.now = t.due
		t.fn()
		ran++
	}

	s.now = target
	return ran
}

func (s *Scheduler) remove(t *timer) {
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	delete(s.byID, t.id)
}
