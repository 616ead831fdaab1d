// Package catalog holds the registry's view of a registered service
// instance: the node it runs on, the service entry, and the health checks
// reported for it. It also derives the normalized health view consumed by
// discovery code: one UP/DOWN status, a URI, and a flattened metadata map.
//
// All types here are immutable values created per registry response and
// discarded after aggregation. None of them are cached across cycles.
package catalog
