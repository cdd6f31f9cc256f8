package ecs

type commandKind int

const (
	cmdSpawnCallback commandKind = iota
	cmdDestroy
	cmdAdd
	cmdSet
	cmdRemove
	cmdRelate
	cmdUnrelate
)

type command struct {
	kind     commandKind
	entity   Entity
	target   Entity
	relation ComponentID
	value    any
	cb       func(Entity)
}

// CommandBuffer queues mutations so code iterating a query can record
// what should happen without mutating the world mid-iteration. It can
// operate in two ways: explicit Defer* calls always queue regardless
// of mode, while the ambient Defer(true)/Defer(false) toggle lets a
// system route its ordinary World calls through the buffer without
// threading an explicit Defer* call through every site.
type CommandBuffer struct {
	world    *World
	pending  []command
	deferred bool
	flushing bool
}

func newCommandBuffer(w *World) *CommandBuffer {
	return &CommandBuffer{world: w}
}

// Defer toggles ambient deferred mode. While on, the World's direct
// mutators (Destroy, Add, Set, Remove, Relate, Unrelate) queue on this
// buffer instead of mutating immediately. World.Spawn is not deferred.
func (b *CommandBuffer) Defer(on bool) { b.deferred = on }

// Deferring reports the current ambient deferred-mode state.
func (b *CommandBuffer) Deferring() bool { return b.deferred }

// HasPending reports whether any commands are queued.
func (b *CommandBuffer) HasPending() bool { return len(b.pending) > 0 }

// DeferSpawn allocates a new entity immediately (with no components,
// so it matches no query pattern that requires any) and queues cb to
// run with that entity's id once the spawn record is consumed by
// Flush.
func (b *CommandBuffer) DeferSpawn(cb func(Entity)) Entity {
	e := b.world.Spawn()
	b.pending = append(b.pending, command{kind: cmdSpawnCallback, entity: e, cb: cb})
	return e
}

// DeferDestroy queues e for destruction on the next Flush.
func (b *CommandBuffer) DeferDestroy(e Entity) {
	b.pending = append(b.pending, command{kind: cmdDestroy, entity: e})
}

// DeferAdd queues attaching component c to e with value v.
func (b *CommandBuffer) DeferAdd(e Entity, c ComponentID, v any) {
	b.pending = append(b.pending, command{kind: cmdAdd, entity: e, relation: c, value: v})
}

// DeferSet queues setting component c on e to value v.
func (b *CommandBuffer) DeferSet(e Entity, c ComponentID, v any) {
	b.pending = append(b.pending, command{kind: cmdSet, entity: e, relation: c, value: v})
}

// DeferRemove queues removing component c from e.
func (b *CommandBuffer) DeferRemove(e Entity, c ComponentID) {
	b.pending = append(b.pending, command{kind: cmdRemove, entity: e, relation: c})
}

// DeferRelate queues recording source --rel--> target with payload.
func (b *CommandBuffer) DeferRelate(source Entity, rel ComponentID, target Entity, payload any) {
	b.pending = append(b.pending, command{kind: cmdRelate, entity: source, relation: rel, target: target, value: payload})
}

// DeferUnrelate queues removing a source --rel--> target triple.
func (b *CommandBuffer) DeferUnrelate(source Entity, rel ComponentID, target Entity) {
	b.pending = append(b.pending, command{kind: cmdUnrelate, entity: source, relation: rel, target: target})
}

// Flush applies every queued command in order and clears the queue.
// Calling Flush from within a command's side effects (e.g. a hook
// triggered by an applied command queues more work synchronously) is a
// documented no-op that returns ErrReentrantFlush; the outer Flush
// call continues to drain commands appended during its own run.
func (b *CommandBuffer) Flush() error {
	if b.flushing {
		return ErrReentrantFlush
	}
	b.flushing = true
	b.deferred = false
	defer func() { b.flushing = false }()

	for i := 0; i < len(b.pending); i++ {
		cmd := b.pending[i]
		switch cmd.kind {
		case cmdSpawnCallback:
			if cmd.cb != nil {
				cmd.cb(cmd.entity)
			}
		case cmdDestroy:
			b.world.Destroy(cmd.entity)
		case cmdAdd:
			b.world.Add(cmd.entity, cmd.relation, cmd.value)
		case cmdSet:
			b.world.Set(cmd.entity, cmd.relation, cmd.value)
		case cmdRemove:
			b.world.Remove(cmd.entity, cmd.relation)
		case cmdRelate:
			b.world.Relate(cmd.entity, cmd.relation, cmd.target, cmd.value)
		case cmdUnrelate:
			b.world.Unrelate(cmd.entity, cmd.relation, cmd.target)
		}
	}
	b.pending = b.pending[:0]
	return nil
}
