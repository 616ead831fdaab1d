package catalog

import (
	"maps"
	"slices"
	"strings"
)

// Metadata is an insertion-ordered, read-only string map.
type Metadata struct {
	keys   []string
	values map[string]string
}

// BuildMetadata flattens node metadata, key=value service tags, and service
// meta into one map, in that order of precedence (later wins). Tags are split
// on the first '='; tags without '=' contribute nothing. Map inputs are
// applied in sorted key order so the result order is deterministic.
func BuildMetadata(nodeMeta map[string]string, tags []string, serviceMeta map[string]string) *Metadata {
	m := &Metadata{values: make(map[string]string, len(nodeMeta)+len(tags)+len(serviceMeta))}

	for _, k := range slices.Sorted(maps.Keys(nodeMeta)) {
		m.set(k, nodeMeta[k])
	}
	for _, tag := range tags {
		if k, v, ok := strings.Cut(tag, "="); ok {
			m.set(k, v)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(serviceMeta)) {
		m.set(k, serviceMeta[k])
	}
	return m
}

func (m *Metadata) set(k, v string) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value for key and whether it is present.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Metadata) Keys() []string {
	return slices.Clone(m.keys)
}

// Map returns a copy of the entries as a plain map.
func (m *Metadata) Map() map[string]string {
	return maps.Clone(m.values)
}
