package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityRegistrySpawnDestroyReuse(t *testing.T) {
	var r entityRegistry

	e1 := r.spawn()
	require.True(t, r.isAlive(e1))
	require.EqualValues(t, 0, e1.Index())
	require.EqualValues(t, 1, e1.Generation())

	require.True(t, r.destroy(e1))
	require.False(t, r.isAlive(e1))

	e2 := r.spawn()
	require.EqualValues(t, 0, e2.Index(), "destroyed slot should be recycled")
	require.EqualValues(t, 2, e2.Generation(), "generation must bump on reuse")
	require.NotEqual(t, e1, e2)
	require.False(t, r.isAlive(e1), "stale handle must not resolve as alive")
}

func TestEntityRegistryDestroyIsNoopWhenDead(t *testing.T) {
	var r entityRegistry
	e := r.spawn()
	require.True(t, r.destroy(e))
	require.False(t, r.destroy(e), "destroying a dead entity again is a no-op")
}

func TestEntityRegistryEachVisitsOnlyAlive(t *testing.T) {
	var r entityRegistry
	e1 := r.spawn()
	e2 := r.spawn()
	r.destroy(e1)

	var seen []Entity
	r.each(func(e Entity) { seen = append(seen, e) })
	require.Equal(t, []Entity{e2}, seen)
}

func TestNilEntityNeverAlive(t *testing.T) {
	var r entityRegistry
	require.False(t, r.isAlive(NilEntity))
}
