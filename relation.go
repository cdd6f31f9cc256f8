package ecs

// relationIndex stores arbitrary (source, relation, target, payload)
// triples and keeps forward (by source) and reverse (by target) lookup
// tables in sync, each preserving the insertion order of surviving
// entries (spec.md §4.3).
//
// This generalizes the teacher's per-relation Relation/Graph pair
// (which instantiated one Core-backed index per relation family) into
// a single table keyed additionally by relation ComponentID, in the
// style of borkshop-go's EntityRelation aindex/bindex split.
type relationIndex struct {
	// forward[relation][source] lists (target, payload) in insertion order.
	forward map[ComponentID]map[Entity]*pairList
	// reverse[relation][target] lists (source, payload) in insertion order.
	reverse map[ComponentID]map[Entity]*pairList
	// bySource/byTarget track which relations touch an entity, for
	// O(relations-touched) cleanup on destroy rather than a full scan.
	bySource map[Entity]map[ComponentID]bool
	byTarget map[Entity]map[ComponentID]bool
}

func newRelationIndex() *relationIndex {
	return &relationIndex{
		forward:  make(map[ComponentID]map[Entity]*pairList),
		reverse:  make(map[ComponentID]map[Entity]*pairList),
		bySource: make(map[Entity]map[ComponentID]bool),
		byTarget: make(map[Entity]map[ComponentID]bool),
	}
}

func (x *relationIndex) markTouched(idx map[Entity]map[ComponentID]bool, e Entity, rel ComponentID) {
	m, ok := idx[e]
	if !ok {
		m = make(map[ComponentID]bool)
		idx[e] = m
	}
	m[rel] = true
}

// relate records source --rel--> target with payload, replacing any
// existing payload for the same (source, rel, target) triple.
func (x *relationIndex) relate(source Entity, rel ComponentID, target Entity, payload any) {
	fwdBySource, ok := x.forward[rel]
	if !ok {
		fwdBySource = make(map[Entity]*pairList)
		x.forward[rel] = fwdBySource
	}
	fwd, ok := fwdBySource[source]
	if !ok {
		fwd = &pairList{}
		fwdBySource[source] = fwd
	}
	fwd.upsert(target, payload)

	revByTarget, ok := x.reverse[rel]
	if !ok {
		revByTarget = make(map[Entity]*pairList)
		x.reverse[rel] = revByTarget
	}
	rev, ok := revByTarget[target]
	if !ok {
		rev = &pairList{}
		revByTarget[target] = rev
	}
	rev.upsert(source, payload)

	x.markTouched(x.bySource, source, rel)
	x.markTouched(x.byTarget, target, rel)
}

// unrelate removes the (source, rel, target) triple, if present.
// Returns true if it existed.
func (x *relationIndex) unrelate(source Entity, rel ComponentID, target Entity) bool {
	fwdBySource, ok := x.forward[rel]
	if !ok {
		return false
	}
	fwd, ok := fwdBySource[source]
	if !ok {
		return false
	}
	removed := fwd.remove(target)
	if !removed {
		return false
	}
	if revByTarget, ok := x.reverse[rel]; ok {
		if rev, ok := revByTarget[target]; ok {
			rev.remove(source)
		}
	}
	return true
}

// has reports whether the (source, rel, target) triple exists.
func (x *relationIndex) has(source Entity, rel ComponentID, target Entity) bool {
	fwdBySource, ok := x.forward[rel]
	if !ok {
		return false
	}
	fwd, ok := fwdBySource[source]
	if !ok {
		return false
	}
	_, found := fwd.get(target)
	return found
}

// payload returns the payload for (source, rel, target), if present.
func (x *relationIndex) payload(source Entity, rel ComponentID, target Entity) (any, bool) {
	fwdBySource, ok := x.forward[rel]
	if !ok {
		return nil, false
	}
	fwd, ok := fwdBySource[source]
	if !ok {
		return nil, false
	}
	return fwd.get(target)
}

// targets returns source's targets under rel, in insertion order.
func (x *relationIndex) targets(source Entity, rel ComponentID) []Entity {
	fwdBySource, ok := x.forward[rel]
	if !ok {
		return nil
	}
	fwd, ok := fwdBySource[source]
	if !ok {
		return nil
	}
	out := make([]Entity, len(fwd.entries))
	for i, p := range fwd.entries {
		out[i] = p.entity
	}
	return out
}

// sources returns target's sources under rel, in insertion order.
func (x *relationIndex) sources(target Entity, rel ComponentID) []Entity {
	revByTarget, ok := x.reverse[rel]
	if !ok {
		return nil
	}
	rev, ok := revByTarget[target]
	if !ok {
		return nil
	}
	out := make([]Entity, len(rev.entries))
	for i, p := range rev.entries {
		out[i] = p.entity
	}
	return out
}

// RelationPair is one (entity, payload) entry as returned by
// getTargets/getSources (spec.md §4.3): the other end of a triple
// alongside the payload carried on that edge.
type RelationPair struct {
	Entity  Entity
	Payload any
}

// targetPairs returns source's (target, payload) pairs under rel, in
// insertion order.
func (x *relationIndex) targetPairs(source Entity, rel ComponentID) []RelationPair {
	fwdBySource, ok := x.forward[rel]
	if !ok {
		return nil
	}
	fwd, ok := fwdBySource[source]
	if !ok {
		return nil
	}
	out := make([]RelationPair, len(fwd.entries))
	for i, p := range fwd.entries {
		out[i] = RelationPair{Entity: p.entity, Payload: p.payload}
	}
	return out
}

// sourcePairs returns target's (source, payload) pairs under rel, in
// insertion order.
func (x *relationIndex) sourcePairs(target Entity, rel ComponentID) []RelationPair {
	revByTarget, ok := x.reverse[rel]
	if !ok {
		return nil
	}
	rev, ok := revByTarget[target]
	if !ok {
		return nil
	}
	out := make([]RelationPair, len(rev.entries))
	for i, p := range rev.entries {
		out[i] = RelationPair{Entity: p.entity, Payload: p.payload}
	}
	return out
}

// removeEntity drops every triple touching e, as either source or
// target, across every relation it participates in.
func (x *relationIndex) removeEntity(e Entity) {
	for rel := range x.bySource[e] {
		for _, target := range x.targets(e, rel) {
			x.unrelate(e, rel, target)
		}
	}
	for rel := range x.byTarget[e] {
		for _, source := range x.sources(e, rel) {
			x.unrelate(source, rel, e)
		}
	}
	delete(x.bySource, e)
	delete(x.byTarget, e)
}
