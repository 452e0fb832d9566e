package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldObject_PropIsNotUnit(t *testing.T) {
	obj := NewWorldObject(7, "Crate", NewLocation(1, 2, 3, 0))

	assert.Equal(t, int64(7), obj.ObjectID())
	assert.Equal(t, ObjectKindProp, obj.Kind())

	u, ok := obj.AsUnit()
	assert.False(t, ok)
	assert.Nil(t, u)
}

func TestUnit_AsUnitRoundTrip(t *testing.T) {
	u := NewUnit(42, 1000, "Wolf", NewLocation(10, 20, 30, 0), FactionHostile)

	assert.Equal(t, ObjectKindUnit, u.Kind())
	got, ok := u.WorldObject.AsUnit()
	require.True(t, ok)
	assert.Same(t, u, got)
	assert.Equal(t, int32(1000), got.TemplateID())
	assert.Equal(t, FactionHostile, got.Faction())
	assert.NotNil(t, got.Attributes())
}

func TestWorldObject_Alive(t *testing.T) {
	obj := NewWorldObject(1, "Crate", Location{})
	assert.True(t, obj.Alive())

	obj.SetActive(false)
	assert.False(t, obj.Alive())

	obj.SetActive(true)
	assert.True(t, obj.Alive())

	obj.MarkDestroyed()
	assert.False(t, obj.Alive())
	assert.True(t, obj.Destroyed())

	// Reactivation does not resurrect a destroyed object
	obj.SetActive(true)
	assert.False(t, obj.Alive())
}

func TestNilWorldObject_AsUnit(t *testing.T) {
	var obj *WorldObject
	_, ok := obj.AsUnit()
	assert.False(t, ok)
}

func TestUnit_SetFaction(t *testing.T) {
	u := NewUnit(1, 1, "Guard", Location{}, FactionFriend)
	u.SetFaction(FactionNeutral)
	assert.Equal(t, FactionNeutral, u.Faction())
}

func TestParseFactionAndRelation(t *testing.T) {
	f, err := ParseFaction("hostile")
	require.NoError(t, err)
	assert.Equal(t, FactionHostile, f)

	f, err = ParseFaction("INVULNERABLE_EXCEPT")
	require.NoError(t, err)
	assert.Equal(t, FactionInvulnerableExcept, f)

	_, err = ParseFaction("pirates")
	assert.Error(t, err)

	r, err := ParseRelation("enemy")
	require.NoError(t, err)
	assert.Equal(t, RelationEnemy, r)

	_, err = ParseRelation("frenemy")
	assert.Error(t, err)

	assert.Equal(t, "NO_RELATION", RelationNone.String())
	assert.Equal(t, "Faction(42)", Faction(42).String())
}
