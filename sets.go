package ecs

// entitySet is an insertion-ordered membership set with O(1) add/
// remove/has, used by component stores and the change tracker where
// the exact surviving order after a removal is not contractually
// significant. Removal is swap-with-last, so order is preserved only
// until the first removal.
type entitySet struct {
	order []Entity
	index map[Entity]int
}

func newEntitySet() *entitySet {
	return &entitySet{index: make(map[Entity]int)}
}

// add returns true if e was not already a member.
func (s *entitySet) add(e Entity) bool {
	if _, ok := s.index[e]; ok {
		return false
	}
	s.index[e] = len(s.order)
	s.order = append(s.order, e)
	return true
}

// remove returns true if e was a member.
func (s *entitySet) remove(e Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	last := len(s.order) - 1
	moved := s.order[last]
	s.order[i] = moved
	s.order = s.order[:last]
	delete(s.index, e)
	if i < len(s.order) {
		s.index[moved] = i
	}
	return true
}

func (s *entitySet) has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

func (s *entitySet) len() int { return len(s.order) }

// each calls fn for every member; fn must not mutate the set.
func (s *entitySet) each(fn func(Entity)) {
	for _, e := range s.order {
		fn(e)
	}
}

// pairEntry is one (target-or-source, payload) entry of a relation
// index bucket.
type pairEntry struct {
	entity  Entity
	payload any
}

// pairList is an insertion-ordered list of (entity, payload) pairs,
// preserving the relative order of surviving entries across removals
// (spec.md §4.3: getTargets/getSources order is insertion order).
type pairList struct {
	entries []pairEntry
}

func (l *pairList) upsert(e Entity, payload any) {
	for i := range l.entries {
		if l.entries[i].entity == e {
			l.entries[i].payload = payload
			return
		}
	}
	l.entries = append(l.entries, pairEntry{e, payload})
}

func (l *pairList) get(e Entity) (any, bool) {
	for _, ent := range l.entries {
		if ent.entity == e {
			return ent.payload, true
		}
	}
	return nil, false
}

func (l *pairList) remove(e Entity) bool {
	for i, ent := range l.entries {
		if ent.entity == e {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries = l.entries[:len(l.entries)-1]
			return true
		}
	}
	return false
}
