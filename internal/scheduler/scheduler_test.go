package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsInDueOrder(t *testing.T) {
	s := New()
	var got []string

	s.After(nil, 3*time.Second, func() { got = append(got, "c") })
	s.After(nil, 1*time.Second, func() { got = append(got, "a") })
	s.After(nil, 2*time.Second, func() { got = append(got, "b") })

	ran := s.Advance(5 * time.Second)

	assert.Equal(t, 3, ran)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 5*time.Second, s.Now())
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_EqualDueKeepsSchedulingOrder(t *testing.T) {
	s := New()
	var got []int

	for i := range 10 {
		s.After(nil, time.Second, func() { got = append(got, i) })
	}
	s.Advance(time.Second)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestScheduler_NotDueYet(t *testing.T) {
	s := New()
	fired := false
	s.After(nil, time.Second, func() { fired = true })

	assert.Equal(t, 0, s.Advance(999*time.Millisecond))
	assert.False(t, fired)

	assert.Equal(t, 1, s.Advance(time.Millisecond))
	assert.True(t, fired)
}

func TestScheduler_NowDuringCallback(t *testing.T) {
	s := New()
	var at time.Duration
	s.After(nil, 2*time.Second, func() { at = s.Now() })

	s.Advance(10 * time.Second)

	assert.Equal(t, 2*time.Second, at)
}

func TestScheduler_ChainedCallbacksInsideWindow(t *testing.T) {
	s := New()
	ticks := 0

	var tick func()
	tick = func() {
		ticks++
		s.After(nil, time.Second, tick)
	}
	s.After(nil, time.Second, tick)

	s.Advance(5 * time.Second)
	assert.Equal(t, 5, ticks)
	assert.Equal(t, 1, s.Pending())
}

func TestScheduler_Cancel(t *testing.T) {
	s := New()
	fired := false
	id := s.After(nil, time.Second, func() { fired = true })

	require.True(t, s.Cancel(id))
	assert.False(t, s.Cancel(id))

	s.Advance(time.Minute)
	assert.False(t, fired)
}

func TestScheduler_CancelAfterRun(t *testing.T) {
	s := New()
	id := s.After(nil, time.Second, func() {})
	s.Advance(time.Second)

	assert.False(t, s.Cancel(id))
}

func TestScheduler_CancelOwner(t *testing.T) {
	s := New()
	type owner struct{ name string }
	a, b := &owner{"a"}, &owner{"b"}
	var got []string

	s.After(a, time.Second, func() { got = append(got, "a1") })
	s.After(b, time.Second, func() { got = append(got, "b1") })
	s.After(a, 2*time.Second, func() { got = append(got, "a2") })

	assert.Equal(t, 2, s.CancelOwner(a))
	assert.Equal(t, 0, s.CancelOwner(a))
	assert.Equal(t, 0, s.CancelOwner(nil))

	s.Advance(time.Minute)
	assert.Equal(t, []string{"b1"}, got)
}

func TestScheduler_CancelFromCallback(t *testing.T) {
	s := New()
	fired := false
	var victim TimerID

	s.After(nil, time.Second, func() { s.Cancel(victim) })
	victim = s.After(nil, 2*time.Second, func() { fired = true })

	s.Advance(time.Minute)
	assert.False(t, fired)
}

func TestScheduler_NegativeDurations(t *testing.T) {
	s := New()
	fired := false
	s.After(nil, -time.Second, func() { fired = true })

	s.Advance(-time.Second)
	assert.True(t, fired)
	assert.Equal(t, time.Duration(0), s.Now())
}
