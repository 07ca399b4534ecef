// Package models provides data structures and operations for the LocaleWatch
// application. This file defines the settings document, a nested key/value
// structure that is the single source of truth for plugin behavior.
//
// The document is deliberately schemaless at the edges: known sections are
// understood by the sanitizer and validator, while unknown keys at every
// nesting level are preserved verbatim so that documents written by newer or
// extended releases survive a round trip through this engine unchanged.
package models

import "strings"

// Document is the full nested settings structure. It is created empty, mutated
// only through the settings engine's update pipeline, and wholly replaced on
// every write.
type Document map[string]any

// NewDocument returns an empty settings document.
func NewDocument() Document {
	return Document{}
}

// Get performs a dotted-path lookup into the nested structure. A missing path
// or a non-container intermediate value returns the supplied default.
//
// For example, Get("global_webhook.digest.type", "interval") descends through
// the "global_webhook" and "digest" maps and returns the "type" value.
func (d Document) Get(path string, def any) any {
	if path == "" {
		return def
	}

	var current any = map[string]any(d)
	for _, part := range strings.Split(path, ".") {
		container, ok := current.(map[string]any)
		if !ok {
			if doc, isDoc := current.(Document); isDoc {
				container = map[string]any(doc)
			} else {
				return def
			}
		}

		value, exists := container[part]
		if !exists {
			return def
		}
		current = value
	}

	return current
}

// Section returns the named top-level section as a map. A missing or
// non-map section yields an empty map, never nil, so callers can read
// fields without nil checks.
func (d Document) Section(name string) map[string]any {
	if m, ok := d[name].(map[string]any); ok {
		return m
	}
	if sub, ok := d[name].(Document); ok {
		return map[string]any(sub)
	}
	return map[string]any{}
}

// Has reports whether a top-level key is present.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Clone returns a deep copy of the document. Nested maps and slices are
// copied; scalar values are shared, which is safe because the engine never
// mutates values in place.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(deepCopyMap(map[string]any(d)))
}

// deepCopyMap recursively copies a map-of-any structure.
func deepCopyMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = deepCopyValue(v)
	}
	return dst
}

// deepCopyValue copies nested containers and passes scalars through.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case Document:
		return Document(deepCopyMap(map[string]any(val)))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []int:
		out := make([]int, len(val))
		copy(out, val)
		return out
	default:
		return val
	}
}

// ChangeEvent carries the old and new document values emitted to observers
// after every successful settings update.
type ChangeEvent struct {
	// Old is the document as it was before the update. Empty for the first write.
	Old Document `json:"old"`

	// New is the document as persisted by the update.
	New Document `json:"new"`
}
