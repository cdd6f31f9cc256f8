// Package ecs implements an Entity Component System world: entities,
// typed component stores, relationships between entities, filtered
// queries with a cache, a deferred command buffer for safe mutation
// during iteration, change tracking, prefab templates, and a phased
// system scheduler.
//
// The package treats component payloads as opaque values; it never
// inspects them. Host integration (rendering, input, networking,
// persistence) lives outside this package.
package ecs
