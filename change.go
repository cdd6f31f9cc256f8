package ecs

// ChangeTracker records, per component, which entities were added,
// removed, or changed since the last ClearChanges. Adding and then
// removing the same entity's component within one frame cancels out:
// neither shows up in Added nor Removed (spec.md §6).
type ChangeTracker struct {
	added   map[ComponentID]*entitySet
	removed map[ComponentID]*entitySet
	changed map[ComponentID]*entitySet
}

func newChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		added:   make(map[ComponentID]*entitySet),
		removed: make(map[ComponentID]*entitySet),
		changed: make(map[ComponentID]*entitySet),
	}
}

func (t *ChangeTracker) setFor(m map[ComponentID]*entitySet, c ComponentID) *entitySet {
	s, ok := m[c]
	if !ok {
		s = newEntitySet()
		m[c] = s
	}
	return s
}

// recordAdd marks e as newly given component c this frame.
func (t *ChangeTracker) recordAdd(e Entity, c ComponentID) {
	t.setFor(t.removed, c).remove(e) // an add cancels a same-frame removed mark
	t.setFor(t.added, c).add(e)
}

// recordRemove marks e as having lost component c this frame. If e
// was also added to c this frame, the two cancel and neither mark
// survives.
func (t *ChangeTracker) recordRemove(e Entity, c ComponentID) {
	if t.setFor(t.added, c).remove(e) {
		t.setFor(t.changed, c).remove(e)
		return
	}
	t.setFor(t.removed, c).add(e)
	t.setFor(t.changed, c).remove(e)
}

// recordChange marks e's component c as mutated in place this frame.
// If e was added to c this frame, it stays in added[c] only: it's
// still "new this frame", not a change to pre-existing data.
func (t *ChangeTracker) recordChange(e Entity, c ComponentID) {
	if t.setFor(t.added, c).has(e) {
		return
	}
	t.setFor(t.changed, c).add(e)
}

func collect(m map[ComponentID]*entitySet, c ComponentID) []Entity {
	s, ok := m[c]
	if !ok {
		return nil
	}
	out := make([]Entity, 0, s.len())
	s.each(func(e Entity) { out = append(out, e) })
	return out
}

// Added returns entities that gained component c since the last clear.
func (t *ChangeTracker) Added(c ComponentID) []Entity { return collect(t.added, c) }

// Removed returns entities that lost component c since the last clear.
func (t *ChangeTracker) Removed(c ComponentID) []Entity { return collect(t.removed, c) }

// Changed returns entities whose component c was mutated in place
// since the last clear.
func (t *ChangeTracker) Changed(c ComponentID) []Entity { return collect(t.changed, c) }

// ClearChanges discards every recorded add/remove/change mark.
func (t *ChangeTracker) ClearChanges() {
	for _, s := range t.added {
		*s = *newEntitySet()
	}
	for _, s := range t.removed {
		*s = *newEntitySet()
	}
	for _, s := range t.changed {
		*s = *newEntitySet()
	}
}
