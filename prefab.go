package ecs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// prefabComponent is one (component, default value) entry of a
// template, applied in the order the template lists them.
type prefabComponent struct {
	id    ComponentID
	value any
}

// PrefabTemplate is a named, ordered sequence of component defaults
// instantiated together whenever the template is spawned.
type PrefabTemplate struct {
	Name       string
	components []prefabComponent
}

// PrefabBuilder assembles a PrefabTemplate one component at a time.
type PrefabBuilder struct {
	name       string
	components []prefabComponent
}

// NewPrefab starts building a template named name.
func NewPrefab(name string) *PrefabBuilder {
	return &PrefabBuilder{name: name}
}

// With appends a component default to the template, in call order.
func (b *PrefabBuilder) With(id ComponentID, value any) *PrefabBuilder {
	b.components = append(b.components, prefabComponent{id: id, value: value})
	return b
}

// Build finalizes the template.
func (b *PrefabBuilder) Build() *PrefabTemplate {
	return &PrefabTemplate{Name: b.name, components: append([]prefabComponent(nil), b.components...)}
}

// PrefabRegistry holds named templates available for spawning.
type PrefabRegistry struct {
	world   *World
	byName  map[string]*PrefabTemplate
}

func newPrefabRegistry(w *World) *PrefabRegistry {
	return &PrefabRegistry{world: w, byName: make(map[string]*PrefabTemplate)}
}

// Register adds t to the registry, replacing any template already
// registered under the same name.
func (r *PrefabRegistry) Register(t *PrefabTemplate) {
	if _, exists := r.byName[t.Name]; exists && r.world.options.Debug {
		r.world.log.Warn("replacing prefab template", "name", t.Name)
	}
	r.byName[t.Name] = t
}

// Get returns the template registered under name.
func (r *PrefabRegistry) Get(name string) (*PrefabTemplate, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Spawn instantiates the named template: a fresh entity with every
// listed component applied, in template order.
func (r *PrefabRegistry) Spawn(name string) (Entity, error) {
	t, ok := r.byName[name]
	if !ok {
		return NilEntity, fmt.Errorf("%w: %q", ErrUnknownPrefab, name)
	}
	return r.SpawnTemplate(t), nil
}

// SpawnTemplate instantiates t directly without a registry lookup,
// applying each component in template order with the same semantics
// as Set/Add (firing onAdd hooks).
func (r *PrefabRegistry) SpawnTemplate(t *PrefabTemplate) Entity {
	e := r.world.Spawn()
	for _, c := range t.components {
		d, ok := r.world.descriptors[c.id]
		if !ok {
			continue
		}
		if d.kind == KindTag {
			r.world.Add(e, c.id, nil)
		} else {
			r.world.Set(e, c.id, c.value)
		}
	}
	return e
}

// prefabDocument is the on-disk YAML shape for a batch of templates:
//
//	prefabs:
//	  - name: goblin
//	    components:
//	      - component: health
//	        value: 10
//	      - component: hostile
//	        tag: true
//
// components is an ordered list, applied in the order it's written,
// matching the order guarantee of the programmatic PrefabBuilder path.
// Component keys are resolved by name against components already
// registered on the target world.
type prefabDocument struct {
	Prefabs []struct {
		Name       string `yaml:"name"`
		Components []struct {
			Component string `yaml:"component"`
			Value     any    `yaml:"value"`
			Tag       bool   `yaml:"tag"`
		} `yaml:"components"`
	} `yaml:"prefabs"`
}

// LoadPrefabsFile reads a YAML prefab document from path and registers
// every template it defines against w.
func (w *World) LoadPrefabsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ecs: read prefab file: %w", err)
	}
	return w.LoadPrefabs(data)
}

// LoadPrefabs decodes a YAML prefab document and registers every
// template it defines against w.
func (w *World) LoadPrefabs(data []byte) error {
	var doc prefabDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("ecs: decode prefab document: %w", err)
	}
	for _, p := range doc.Prefabs {
		b := NewPrefab(p.Name)
		for _, c := range p.Components {
			id, ok := w.ComponentByName(c.Component)
			if !ok {
				return fmt.Errorf("ecs: prefab %q: %w: %q", p.Name, ErrUnknownComponent, c.Component)
			}
			if c.Tag {
				b.With(id, nil)
			} else {
				b.With(id, c.Value)
			}
		}
		w.prefabs.Register(b.Build())
	}
	return nil
}
