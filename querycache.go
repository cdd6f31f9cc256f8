package ecs

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// queryKey canonicalizes a pattern's component lists (sorted, since
// With(a, b) and With(b, a) must hit the same cache entry) into a
// stable hash.
type queryKey uint64

func canonicalize(ids []ComponentID) []ComponentID {
	out := make([]ComponentID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func hashPattern(fetch, with, without []ComponentID) queryKey {
	var b strings.Builder
	writeIDs := func(prefix string, ids []ComponentID) {
		b.WriteString(prefix)
		for _, id := range ids {
			b.WriteByte(',')
			b.WriteString(strconv.FormatUint(uint64(id), 10))
		}
		b.WriteByte(';')
	}
	writeIDs("f", canonicalize(fetch))
	writeIDs("w", canonicalize(with))
	writeIDs("n", canonicalize(without))
	return queryKey(xxhash.Sum64String(b.String()))
}

type cacheEntry struct {
	epoch   uint64
	entities []Entity
}

// queryCache memoizes the matched-entity list for a canonicalized
// pattern, invalidated whenever the world's mutation epoch advances
// past the epoch the entry was built at. A full rescan on miss is
// always correct; the cache only saves repeat work between mutations.
type queryCache struct {
	entries map[queryKey]cacheEntry
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[queryKey]cacheEntry)}
}

func (c *queryCache) get(key queryKey, epoch uint64) ([]Entity, bool) {
	e, ok := c.entries[key]
	if !ok || e.epoch != epoch {
		return nil, false
	}
	return e.entities, true
}

func (c *queryCache) put(key queryKey, epoch uint64, entities []Entity) {
	c.entries[key] = cacheEntry{epoch: epoch, entities: entities}
}
