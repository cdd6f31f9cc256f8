package ecs

// Query describes a filtered view over a World: which components to
// fetch values for, which must be present (With) but aren't fetched,
// and which must be absent (Without).
type Query struct {
	world   *World
	fetch   []ComponentID
	with    []ComponentID
	without []ComponentID
}

// NewQuery starts a query that will fetch values for the given
// components; every fetched component is implicitly required.
func (w *World) NewQuery(fetch ...ComponentID) *Query {
	return &Query{world: w, fetch: append([]ComponentID(nil), fetch...)}
}

// With adds components that must be present but whose values aren't
// fetched.
func (q *Query) With(ids ...ComponentID) *Query {
	q.with = append(q.with, ids...)
	return q
}

// Without adds components that must be absent from a matching entity.
func (q *Query) Without(ids ...ComponentID) *Query {
	q.without = append(q.without, ids...)
	return q
}

// required returns every component an entity must carry: fetch ∪ with.
func (q *Query) required() []ComponentID {
	out := make([]ComponentID, 0, len(q.fetch)+len(q.with))
	out = append(out, q.fetch...)
	out = append(out, q.with...)
	return out
}

func (q *Query) requiredSignature() Signature {
	var sig Signature
	for _, id := range q.required() {
		sig.Set(id)
	}
	return sig
}

func (q *Query) forbiddenSignature() Signature {
	var sig Signature
	for _, id := range q.without {
		sig.Set(id)
	}
	return sig
}

// rarestRequired picks the required component with the fewest current
// members, so a full scan iterates the smallest candidate store first
// instead of every alive entity.
func (q *Query) rarestRequired() (ComponentID, bool) {
	req := q.required()
	if len(req) == 0 {
		return 0, false
	}
	best := req[0]
	bestLen := -1
	for _, id := range req {
		store, ok := q.world.stores[id]
		if !ok {
			continue
		}
		if n := store.len(); bestLen == -1 || n < bestLen {
			best, bestLen = id, n
		}
	}
	if bestLen == -1 {
		return 0, false
	}
	return best, true
}

func (q *Query) matches(e Entity) bool {
	sig, ok := q.world.signatures[e]
	if !ok {
		return false
	}
	if !sig.HasAll(q.requiredSignature()) {
		return false
	}
	if sig.Intersects(q.forbiddenSignature()) {
		return false
	}
	return true
}

func (q *Query) scan() []Entity {
	var out []Entity
	if anchor, ok := q.rarestRequired(); ok {
		q.world.stores[anchor].each(func(e Entity) {
			if q.matches(e) {
				out = append(out, e)
			}
		})
		return out
	}
	// No required components: every alive entity is a candidate,
	// filtered only by Without.
	q.world.Each(func(e Entity) {
		if q.matches(e) {
			out = append(out, e)
		}
	})
	return out
}

// Iter evaluates the query and returns an Iterator over matches. When
// the query cache is enabled, the matched entity list is memoized
// against the world's mutation epoch; fetched values are always read
// live at yield time, so Iter reflects the store as of iteration even
// when the entity list came from cache.
func (q *Query) Iter() *Iterator {
	entities := q.evaluate()
	return &Iterator{world: q.world, fetch: q.fetch, entities: entities, pos: -1}
}

func (q *Query) evaluate() []Entity {
	if !q.world.options.QueryCacheEnabled {
		return q.scan()
	}
	key := hashPattern(q.fetch, q.with, q.without)
	if cached, ok := q.world.queryCache.get(key, q.world.epoch); ok {
		return cached
	}
	entities := q.scan()
	q.world.queryCache.put(key, q.world.epoch, entities)
	return entities
}

// Count evaluates the query and returns the number of matches without
// building value slices.
func (q *Query) Count() int { return len(q.evaluate()) }

// Iterator walks the entities matched by a Query. The zero value is
// not usable; obtain one from Query.Iter.
type Iterator struct {
	world    *World
	fetch    []ComponentID
	entities []Entity
	pos      int
}

// Next advances to the next match, returning false when exhausted.
func (it *Iterator) Next() bool {
	it.pos++
	return it.pos < len(it.entities)
}

// Entity returns the current match.
func (it *Iterator) Entity() Entity {
	return it.entities[it.pos]
}

// Value returns the live value of the i'th fetched component (by
// position in the Query's fetch list) for the current match.
func (it *Iterator) Value(i int) any {
	c := it.fetch[i]
	v, _ := it.world.Get(it.entities[it.pos], c)
	return v
}

// Len returns the total number of matches this Iterator will yield.
func (it *Iterator) Len() int { return len(it.entities) }
