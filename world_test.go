package ecs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type vec2 struct{ x, y float64 }

func TestMovementTickScenario(t *testing.T) {
	// Scenario E1: register Position/Velocity, spawn an entity, query
	// both, mutate Position, re-query.
	w := NewWorld()
	position := w.RegisterComponent("Position")
	velocity := w.RegisterComponent("Velocity")

	e1 := w.Spawn()
	require.NoError(t, w.Set(e1, position, vec2{0, 0}))
	require.NoError(t, w.Set(e1, velocity, vec2{1, 2}))

	it := w.NewQuery(position, velocity).Iter()
	require.True(t, it.Next())
	require.Equal(t, e1, it.Entity())
	require.Equal(t, vec2{0, 0}, it.Value(0))
	require.Equal(t, vec2{1, 2}, it.Value(1))
	require.False(t, it.Next())

	require.NoError(t, w.Set(e1, position, vec2{1, 2}))

	it2 := w.NewQuery(position).Iter()
	require.True(t, it2.Next())
	require.Equal(t, vec2{1, 2}, it2.Value(0))
}

func TestSetThenGetLaw(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("Health")
	e := w.Spawn()
	require.NoError(t, w.Set(e, health, 10))
	v, ok := w.Get(e, health)
	require.True(t, ok)
	require.Equal(t, 10, v)
}

func TestAddRemoveTagLaw(t *testing.T) {
	w := NewWorld()
	enemy := w.RegisterTag("Enemy")
	e := w.Spawn()
	require.NoError(t, w.Add(e, enemy, nil))
	require.True(t, w.Has(e, enemy))

	removed, err := w.Remove(e, enemy)
	require.NoError(t, err)
	require.True(t, removed)
	require.False(t, w.Has(e, enemy))
}

func TestAddIsIdempotentNoDoubleHook(t *testing.T) {
	w := NewWorld()
	enemy := w.RegisterTag("Enemy")
	e := w.Spawn()

	var addCount int
	w.Subscribe(enemy, HookOnAdd, func(Entity, ComponentID, any) { addCount++ })

	require.NoError(t, w.Add(e, enemy, nil))
	require.NoError(t, w.Add(e, enemy, nil))
	require.Equal(t, 1, addCount)
}

func TestRemoveOnAbsentIsNoopNoHook(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("Health")
	e := w.Spawn()

	var removeCount int
	w.Subscribe(health, HookOnRemove, func(Entity, ComponentID, any) { removeCount++ })

	removed, err := w.Remove(e, health)
	require.NoError(t, err)
	require.False(t, removed)
	require.Zero(t, removeCount)
}

func TestSetOnTagIsWrongKind(t *testing.T) {
	w := NewWorld()
	enemy := w.RegisterTag("Enemy")
	e := w.Spawn()
	err := w.Set(e, enemy, "whatever")
	require.ErrorIs(t, err, ErrWrongKind)
}

func TestAddOnSparseIsWrongKind(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("Health")
	e := w.Spawn()
	err := w.Add(e, health, 1)
	require.ErrorIs(t, err, ErrWrongKind)
}

func TestSetOnDeadEntityFails(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("Health")
	e := w.Spawn()
	w.Destroy(e)
	err := w.Set(e, health, 1)
	require.ErrorIs(t, err, ErrUnknownEntity)
}

func TestUnknownComponentFails(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	err := w.Set(e, ComponentID(999), 1)
	require.True(t, errors.Is(err, ErrUnknownComponent))
}

func TestDestroyRemovesComponentsFiresOnRemove(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("Health")
	e := w.Spawn()
	require.NoError(t, w.Set(e, health, 5))

	var removedVal any
	w.Subscribe(health, HookOnRemove, func(_ Entity, _ ComponentID, v any) { removedVal = v })

	require.True(t, w.Destroy(e))
	require.False(t, w.Alive(e))
	require.Equal(t, 5, removedVal)

	_, ok := w.Get(e, health)
	require.False(t, ok)
}

func TestDestroyIsNoopWhenAlreadyDead(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	require.True(t, w.Destroy(e))
	require.False(t, w.Destroy(e))
}

func TestHookOrderingAddThenChange(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("Health")
	e := w.Spawn()

	var events []string
	w.Subscribe(health, HookOnAdd, func(Entity, ComponentID, any) { events = append(events, "add") })
	w.Subscribe(health, HookOnChange, func(Entity, ComponentID, any) { events = append(events, "change") })

	require.NoError(t, w.Set(e, health, 1))
	require.NoError(t, w.Set(e, health, 2))
	require.Equal(t, []string{"add", "change"}, events)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("Health")
	e := w.Spawn()

	var count int
	token := w.Subscribe(health, HookOnAdd, func(Entity, ComponentID, any) { count++ })
	require.True(t, w.Unsubscribe(token))

	require.NoError(t, w.Set(e, health, 1))
	require.Zero(t, count)
	require.False(t, w.Unsubscribe(token), "unsubscribing twice reports false")
}
