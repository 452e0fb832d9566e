package world

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/unitsim/internal/event"
	"github.com/udisondev/unitsim/internal/model"
)

var testScenes = StaticScenes{
	"arena": {
		{Prefab: samplePrefab, Faction: model.FactionFriend},
		{Prefab: "Soldier", Faction: model.FactionHostile, Location: model.NewLocation(100, 0, 0, 0)},
		{Prefab: "Soldier", Faction: model.FactionHostile, Persistent: true},
	},
	"town": {
		{Prefab: samplePrefab, Faction: model.FactionNeutral},
		{Prefab: "Dragon", Faction: model.FactionHostile}, // unknown prefab, skipped
	},
}

func TestLoadScene_EventOrder(t *testing.T) {
	s := newTestSimulation(t)
	var trace []string

	s.Bus().Subscribe(event.SceneLoadBegin, func() { trace = append(trace, "begin") }, nil)
	s.Bus().Subscribe(event.SceneLoadComplete, func() { trace = append(trace, "complete") }, nil)
	event.SubscribeTyped(s.Bus(), event.SceneLoadBegin, func(e event.SceneEvent) {
		trace = append(trace, "begin:"+e.Name)
	}, nil)
	event.SubscribeTyped(s.Bus(), event.SceneLoadComplete, func(e event.SceneEvent) {
		trace = append(trace, "complete:"+e.Name)
		assert.Equal(t, 3, len(s.Units()), "scene content is loaded before completion")
	}, nil)

	require.NoError(t, s.LoadScene(context.Background(), "arena", testScenes))

	assert.Equal(t, []string{"begin", "begin:arena", "complete", "complete:arena"}, trace)
	assert.Equal(t, "arena", s.Scene())
}

func TestLoadScene_UnloadsNonPersistentState(t *testing.T) {
	s := newTestSimulation(t)
	require.NoError(t, s.LoadScene(context.Background(), "arena", testScenes))
	s.SpawnProp("Barrel", model.Location{})

	require.Equal(t, 1, s.GetFactionUnitCount(model.FactionFriend))
	require.Equal(t, 2, s.GetFactionUnitCount(model.FactionHostile))
	persistent := s.Factions().Units(model.FactionHostile)[1]
	require.True(t, s.AddBuff(persistent, persistent, 0))

	require.NoError(t, s.LoadScene(context.Background(), "town", testScenes))

	assert.Equal(t, "town", s.Scene())
	assert.Equal(t, 0, s.GetFactionUnitCount(model.FactionFriend))
	assert.Equal(t, []int64{persistent}, s.Factions().Units(model.FactionHostile))
	assert.Equal(t, 1, s.GetFactionUnitCount(model.FactionNeutral))
	assert.Len(t, s.Units(), 2)
	assert.Len(t, s.Objects().IDs(), 2, "props are not kept")
	assert.Equal(t, 1, s.BuffCount(persistent), "persistent units keep their buffs")
}

func TestLoadScene_PrunesListenersOfDestroyedUnits(t *testing.T) {
	s := newTestSimulation(t)
	require.NoError(t, s.LoadScene(context.Background(), "arena", testScenes))

	var owners []*model.Unit
	for _, id := range s.Units() {
		unit, _ := s.Unit(id)
		owners = append(owners, unit)
		s.Bus().Subscribe(event.UnitSpawned, func() {}, unit)
	}
	require.Equal(t, 3, s.Bus().ListenerCount(event.UnitSpawned))

	require.NoError(t, s.LoadScene(context.Background(), "town", testScenes))

	assert.Equal(t, 1, s.Bus().ListenerCount(event.UnitSpawned), "only the persistent owner remains")
	for _, u := range owners {
		if !u.Persistent() {
			assert.True(t, u.Destroyed())
		}
	}
}

func TestLoadScene_KeepsBucketOrderOfSurvivors(t *testing.T) {
	s := newTestSimulation(t)
	persistent := SpawnOptions{Persistent: true}

	a, ok := s.SpawnUnit(samplePrefab, model.Location{}, model.FactionFriend, persistent)
	require.True(t, ok)
	b, ok := s.SpawnUnit(samplePrefab, model.Location{}, model.FactionFriend, persistent)
	require.True(t, ok)
	c, ok := s.SpawnUnit(samplePrefab, model.Location{}, model.FactionFriend, SpawnOptions{})
	require.True(t, ok)

	require.True(t, s.ChangeUnitFaction(a, model.FactionHostile))
	require.True(t, s.ChangeUnitFaction(a, model.FactionFriend))
	require.Equal(t, []int64{b, c, a}, s.Factions().Units(model.FactionFriend))

	empty := loaderFunc(func(context.Context, string, *Simulation) error { return nil })
	require.NoError(t, s.LoadScene(context.Background(), "empty", empty))

	assert.Equal(t, []int64{b, a}, s.Factions().Units(model.FactionFriend))
	assert.Equal(t, 0, s.GetFactionUnitCount(model.FactionHostile))
}

func TestLoadScene_UnknownScene(t *testing.T) {
	s := newTestSimulation(t)
	require.NoError(t, s.LoadScene(context.Background(), "arena", testScenes))

	completed := 0
	s.Bus().Subscribe(event.SceneLoadComplete, func() { completed++ }, nil)

	err := s.LoadScene(context.Background(), "moon", testScenes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scene "moon"`)
	assert.Equal(t, 0, completed)
	assert.Equal(t, "arena", s.Scene())
}

func TestLoadScene_Cancelled(t *testing.T) {
	s := newTestSimulation(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.LoadScene(ctx, "arena", testScenes)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, s.Units())
}

type loaderFunc func(ctx context.Context, name string, sim *Simulation) error

func (f loaderFunc) LoadScene(ctx context.Context, name string, sim *Simulation) error {
	return f(ctx, name, sim)
}

func TestLoadScene_CustomLoader(t *testing.T) {
	s := newTestSimulation(t)
	loader := loaderFunc(func(_ context.Context, name string, sim *Simulation) error {
		_, ok := sim.SpawnUnit(samplePrefab, model.Location{}, model.FactionObject, SpawnOptions{})
		require.True(t, ok)
		return nil
	})

	require.NoError(t, s.LoadScene(context.Background(), "custom", loader))
	assert.Equal(t, 1, s.GetFactionUnitCount(model.FactionObject))
}
