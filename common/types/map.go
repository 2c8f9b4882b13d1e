// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import "strings"

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key Value
	Val Value
}

// Map is the CEL map variant: an association from Value to Value that
// preserves insertion order for iteration (§3.3). Lookup is a linear
// scan over a small entry slice rather than a Go map, because CEL map
// keys may be int/uint/double/bool/string and a native Go map can't
// hash a Value uniformly across that mix without first picking a
// canonical key encoding; maps built by CEL expressions (predicates,
// config objects) are small enough that the scan cost is immaterial.
type Map struct {
	entries []MapEntry
}

// NewMap builds a Map from entries in the given order. A duplicate key
// later in entries shadows an earlier one for Find, but both remain in
// Entries/CELString — callers that care (map-literal construction)
// should de-duplicate before calling NewMap.
func NewMap(entries []MapEntry) *Map {
	if entries == nil {
		entries = []MapEntry{}
	}
	return &Map{entries: entries}
}

func (m *Map) Kind() Kind { return KindMap }

func (m *Map) Len() int { return len(m.entries) }

// Find returns the value bound to the last entry whose key is equal to
// key under eq, and whether one was found.
func (m *Map) Find(key Value, eq func(a, b Value) bool) (Value, bool) {
	var found Value
	ok := false
	for _, e := range m.entries {
		if eq(e.Key, key) {
			found, ok = e.Val, true
		}
	}
	return found, ok
}

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []Value {
	keys := make([]Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries exposes the raw (key, value) pairs in insertion order.
func (m *Map) Entries() []MapEntry {
	return m.entries
}

func (m *Map) CELString() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Repr(e.Key))
		b.WriteString(": ")
		b.WriteString(Repr(e.Val))
	}
	b.WriteByte('}')
	return b.String()
}
