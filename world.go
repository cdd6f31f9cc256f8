package ecs

import "fmt"

// World owns every entity, component store, relation, and subsystem
// registered against it. The zero value is not usable; construct one
// with NewWorld.
type World struct {
	options Options
	log     Logger

	entities    entityRegistry
	signatures  map[Entity]*Signature
	descriptors map[ComponentID]componentDescriptor
	stores      map[ComponentID]componentStore
	nameToID    map[string]ComponentID
	nextID      ComponentID

	relations *relationIndex
	changes   *ChangeTracker
	hooks     *hookRegistry
	prefabs   *PrefabRegistry
	scheduler *Scheduler
	cmd       *CommandBuffer

	epoch      uint64
	queryCache *queryCache
}

// NewWorld constructs an empty World ready for component registration.
func NewWorld(opts ...Option) *World {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Debug && !options.loggerSet {
		options.logger = defaultDebugLogger()
	}
	w := &World{
		options:     options,
		log:         options.logger,
		signatures:  make(map[Entity]*Signature),
		descriptors: make(map[ComponentID]componentDescriptor),
		stores:      make(map[ComponentID]componentStore),
		nameToID:    make(map[string]ComponentID),
		relations:   newRelationIndex(),
		changes:     newChangeTracker(),
		hooks:       newHookRegistry(),
		queryCache:  newQueryCache(),
	}
	if n := options.InitialEntityCapacity; n > 0 {
		w.entities.generations = make([]uint32, 0, n)
		w.entities.alive = make([]bool, 0, n)
	}
	w.prefabs = newPrefabRegistry(w)
	w.scheduler = newScheduler(w)
	w.cmd = newCommandBuffer(w)
	return w
}

// RegisterComponent declares a new sparse component kind and returns
// its id. Registering the same name twice returns the existing id.
func (w *World) RegisterComponent(name string) ComponentID {
	return w.register(name, KindSparse)
}

// RegisterTag declares a new presence-only component kind.
func (w *World) RegisterTag(name string) ComponentID {
	return w.register(name, KindTag)
}

func (w *World) register(name string, kind ComponentKind) ComponentID {
	if id, ok := w.nameToID[name]; ok {
		return id
	}
	id := w.nextID
	w.nextID++
	w.descriptors[id] = componentDescriptor{id: id, kind: kind, name: name}
	w.stores[id] = newStoreFor(kind)
	w.nameToID[name] = id
	w.log.Debug("registered component", "id", id, "name", name, "kind", kind.String())
	return id
}

// ComponentByName returns the id registered for name.
func (w *World) ComponentByName(name string) (ComponentID, bool) {
	id, ok := w.nameToID[name]
	return id, ok
}

func (w *World) descriptorOf(c ComponentID) (componentDescriptor, error) {
	d, ok := w.descriptors[c]
	if !ok {
		return componentDescriptor{}, fmt.Errorf("%w: %d", ErrUnknownComponent, c)
	}
	return d, nil
}

func (w *World) sigOf(e Entity) *Signature {
	sig, ok := w.signatures[e]
	if !ok {
		sig = &Signature{}
		w.signatures[e] = sig
	}
	return sig
}

// Alive reports whether e refers to a currently alive entity.
func (w *World) Alive(e Entity) bool { return w.entities.isAlive(e) }

// Len returns the number of currently alive entities.
func (w *World) Len() int { return w.entities.len() }

// Each calls fn for every currently alive entity.
func (w *World) Each(fn func(Entity)) { w.entities.each(fn) }

// Spawn creates a new entity with no components and returns it.
func (w *World) Spawn() Entity {
	e := w.entities.spawn()
	w.signatures[e] = &Signature{}
	w.epoch++
	return e
}

// Destroy removes e and every component and relation it holds. A no-op
// returning false if e is already dead.
func (w *World) Destroy(e Entity) bool {
	if w.cmd.deferred {
		w.cmd.DeferDestroy(e)
		return w.entities.isAlive(e)
	}
	if !w.entities.isAlive(e) {
		if w.options.Debug {
			w.log.Warn("destroy on dead entity", "entity", e)
		}
		return false
	}
	if sig, ok := w.signatures[e]; ok {
		for id, d := range w.descriptors {
			if sig.Test(id) {
				w.doRemove(e, d.id)
			}
		}
	}
	w.relations.removeEntity(e)
	delete(w.signatures, e)
	w.entities.destroy(e)
	w.epoch++
	return true
}

// Set assigns v to component c on e, creating it if absent. Returns an
// error if e is dead, c is unknown, or c is a tag (use Add instead).
func (w *World) Set(e Entity, c ComponentID, v any) error {
	if w.cmd.deferred {
		w.cmd.DeferSet(e, c, v)
		return nil
	}
	if !w.entities.isAlive(e) {
		if w.options.Debug {
			w.log.Warn("set on dead entity", "entity", e, "component", c)
		}
		return fmt.Errorf("%w: %s", ErrUnknownEntity, e)
	}
	d, err := w.descriptorOf(c)
	if err != nil {
		return err
	}
	if d.kind == KindTag {
		return fmt.Errorf("%w: component %q is a tag, use Add", ErrWrongKind, d.name)
	}
	w.doSet(e, c, v, d.kind)
	return nil
}

// Add attaches tag component c to e. A no-op if already present.
// Returns WrongKind if c is not a tag (use Set for value components).
func (w *World) Add(e Entity, c ComponentID, v any) error {
	if w.cmd.deferred {
		w.cmd.DeferAdd(e, c, v)
		return nil
	}
	if !w.entities.isAlive(e) {
		if w.options.Debug {
			w.log.Warn("add on dead entity", "entity", e, "component", c)
		}
		return fmt.Errorf("%w: %s", ErrUnknownEntity, e)
	}
	d, err := w.descriptorOf(c)
	if err != nil {
		return err
	}
	if d.kind != KindTag {
		return fmt.Errorf("%w: component %q is not a tag, use Set", ErrWrongKind, d.name)
	}
	if w.sigOf(e).Test(c) {
		return nil // already present: no hook, no change mark
	}
	w.doSet(e, c, v, d.kind)
	return nil
}

// Remove detaches component c from e. A no-op returning false if e
// never had it.
func (w *World) Remove(e Entity, c ComponentID) (bool, error) {
	if w.cmd.deferred {
		w.cmd.DeferRemove(e, c)
		return w.Has(e, c), nil
	}
	if !w.entities.isAlive(e) {
		if w.options.Debug {
			w.log.Warn("remove on dead entity", "entity", e, "component", c)
		}
		return false, fmt.Errorf("%w: %s", ErrUnknownEntity, e)
	}
	if _, err := w.descriptorOf(c); err != nil {
		return false, err
	}
	return w.doRemove(e, c), nil
}

// Get returns the value of component c on e.
func (w *World) Get(e Entity, c ComponentID) (any, bool) {
	store, ok := w.stores[c]
	if !ok || !w.entities.isAlive(e) {
		return nil, false
	}
	return store.get(e)
}

// Has reports whether e currently carries component c.
func (w *World) Has(e Entity, c ComponentID) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	sig, ok := w.signatures[e]
	return ok && sig.Test(c)
}

// doSet performs an immediate add/overwrite of component c on e,
// firing hooks, recording a change-tracker mark, and bumping the query
// epoch. Used both by direct calls and by command buffer flush.
func (w *World) doSet(e Entity, c ComponentID, v any, kind ComponentKind) {
	store := w.stores[c]
	sig := w.sigOf(e)
	wasPresent := sig.Test(c)
	store.set(e, v)
	sig.Set(c)
	fired := v
	if kind == KindTag {
		fired = TagValue
	}
	if wasPresent {
		if w.options.TrackChanges {
			w.changes.recordChange(e, c)
		}
		w.hooks.fire(HookOnChange, c, e, fired)
	} else {
		if w.options.TrackChanges {
			w.changes.recordAdd(e, c)
		}
		w.hooks.fire(HookOnAdd, c, e, fired)
	}
	w.epoch++
}

// doRemove performs an immediate removal of component c from e. The
// onRemove hook fires while the value is still visible in the store,
// before it is actually deleted.
func (w *World) doRemove(e Entity, c ComponentID) bool {
	sig := w.sigOf(e)
	if !sig.Test(c) {
		return false
	}
	store := w.stores[c]
	old, _ := store.get(e)
	w.hooks.fire(HookOnRemove, c, e, old)
	store.remove(e)
	sig.Clear(c)
	if w.options.TrackChanges {
		w.changes.recordRemove(e, c)
	}
	w.epoch++
	return true
}

// Subscribe registers fn to run on event for component c, returning a
// token usable with Unsubscribe.
func (w *World) Subscribe(c ComponentID, event HookEvent, fn HookFunc) HookToken {
	return w.hooks.subscribe(c, event, fn)
}

// Unsubscribe removes a hook previously returned by Subscribe.
func (w *World) Unsubscribe(token HookToken) bool {
	return w.hooks.unsubscribe(token)
}

// Relate records a source --rel--> target triple with payload.
func (w *World) Relate(source Entity, rel ComponentID, target Entity, payload any) error {
	if w.cmd.deferred {
		w.cmd.DeferRelate(source, rel, target, payload)
		return nil
	}
	if !w.entities.isAlive(source) || !w.entities.isAlive(target) {
		return fmt.Errorf("%w: relate requires two alive entities", ErrUnknownEntity)
	}
	if _, err := w.descriptorOf(rel); err != nil {
		return fmt.Errorf("%w: %d", ErrUnknownRelation, rel)
	}
	w.relations.relate(source, rel, target, payload)
	return nil
}

// Unrelate removes a source --rel--> target triple, if present.
func (w *World) Unrelate(source Entity, rel ComponentID, target Entity) bool {
	if w.cmd.deferred {
		w.cmd.DeferUnrelate(source, rel, target)
		return w.relations.has(source, rel, target)
	}
	return w.relations.unrelate(source, rel, target)
}

// HasRelation reports whether the source --rel--> target triple exists.
func (w *World) HasRelation(source Entity, rel ComponentID, target Entity) bool {
	return w.relations.has(source, rel, target)
}

// RelationPayload returns the payload of a source --rel--> target triple.
func (w *World) RelationPayload(source Entity, rel ComponentID, target Entity) (any, bool) {
	return w.relations.payload(source, rel, target)
}

// Targets returns source's targets under rel, in insertion order.
func (w *World) Targets(source Entity, rel ComponentID) []Entity {
	return w.relations.targets(source, rel)
}

// Sources returns target's sources under rel, in insertion order.
func (w *World) Sources(target Entity, rel ComponentID) []Entity {
	return w.relations.sources(target, rel)
}

// TargetPairs returns source's (target, payload) pairs under rel, in
// insertion order (spec.md §4.3 getTargets).
func (w *World) TargetPairs(source Entity, rel ComponentID) []RelationPair {
	return w.relations.targetPairs(source, rel)
}

// SourcePairs returns target's (source, payload) pairs under rel, in
// insertion order (spec.md §4.3 getSources).
func (w *World) SourcePairs(target Entity, rel ComponentID) []RelationPair {
	return w.relations.sourcePairs(target, rel)
}

// Changes exposes the change tracker for this step.
func (w *World) Changes() *ChangeTracker { return w.changes }

// ClearChanges discards every recorded add/remove/change mark.
func (w *World) ClearChanges() { w.changes.ClearChanges() }

// Commands returns the world's deferred command buffer.
func (w *World) Commands() *CommandBuffer { return w.cmd }

// Scheduler returns the world's phased system scheduler.
func (w *World) Scheduler() *Scheduler { return w.scheduler }

// Prefabs returns the world's prefab registry.
func (w *World) Prefabs() *PrefabRegistry { return w.prefabs }
