package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefabInstantiationScenario(t *testing.T) {
	// Scenario E5.
	w := NewWorld()
	health := w.RegisterComponent("Health")
	damage := w.RegisterComponent("Damage")
	enemy := w.RegisterTag("Enemy")

	w.Prefabs().Register(NewPrefab("Slime").
		With(health, 50).
		With(damage, 5).
		With(enemy, nil).
		Build())

	e, err := w.Prefabs().Spawn("Slime")
	require.NoError(t, err)

	require.True(t, w.Has(e, health))
	v, ok := w.Get(e, health)
	require.True(t, ok)
	require.Equal(t, 50, v)
	require.True(t, w.Has(e, enemy))
}

func TestSpawnUnknownPrefabFails(t *testing.T) {
	w := NewWorld()
	_, err := w.Prefabs().Spawn("Nonexistent")
	require.ErrorIs(t, err, ErrUnknownPrefab)
}

func TestPrefabAppliesComponentsInOrderFiringOnAdd(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("Health")
	damage := w.RegisterComponent("Damage")

	var order []string
	w.Subscribe(health, HookOnAdd, func(Entity, ComponentID, any) { order = append(order, "health") })
	w.Subscribe(damage, HookOnAdd, func(Entity, ComponentID, any) { order = append(order, "damage") })

	w.Prefabs().Register(NewPrefab("Ordered").With(health, 1).With(damage, 2).Build())
	_, err := w.Prefabs().Spawn("Ordered")
	require.NoError(t, err)
	require.Equal(t, []string{"health", "damage"}, order)
}

func TestLoadPrefabsFromYAML(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("health")
	w.RegisterTag("hostile")

	doc := []byte(`
prefabs:
  - name: goblin
    components:
      - component: health
        value: 20
      - component: hostile
        tag: true
`)
	require.NoError(t, w.LoadPrefabs(doc))

	e, err := w.Prefabs().Spawn("goblin")
	require.NoError(t, err)
	v, ok := w.Get(e, health)
	require.True(t, ok)
	require.Equal(t, 20, v)

	hostile, _ := w.ComponentByName("hostile")
	require.True(t, w.Has(e, hostile))
}

func TestLoadPrefabsAppliesComponentsInDocumentOrder(t *testing.T) {
	w := NewWorld()
	health := w.RegisterComponent("health")
	damage := w.RegisterComponent("damage")

	var order []string
	w.Subscribe(health, HookOnAdd, func(Entity, ComponentID, any) { order = append(order, "health") })
	w.Subscribe(damage, HookOnAdd, func(Entity, ComponentID, any) { order = append(order, "damage") })

	doc := []byte(`
prefabs:
  - name: ordered
    components:
      - component: damage
        value: 5
      - component: health
        value: 10
`)
	require.NoError(t, w.LoadPrefabs(doc))

	_, err := w.Prefabs().Spawn("ordered")
	require.NoError(t, err)
	require.Equal(t, []string{"damage", "health"}, order)
}

func TestLoadPrefabsRejectsUnknownComponentName(t *testing.T) {
	w := NewWorld()
	doc := []byte(`
prefabs:
  - name: ghost
    components:
      - component: nosuchcomponent
        value: 1
`)
	err := w.LoadPrefabs(doc)
	require.ErrorIs(t, err, ErrUnknownComponent)
}
