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

// List is the CEL list variant: an ordered, heterogeneous sequence of
// Value (§3.3). A List is immutable once constructed; Concat and Append
// return new Lists rather than mutating in place.
type List struct {
	elems []Value
}

// NewList wraps elems as a List. The caller must not mutate elems
// afterwards; NewList does not copy.
func NewList(elems []Value) *List {
	if elems == nil {
		elems = []Value{}
	}
	return &List{elems: elems}
}

func (l *List) Kind() Kind { return KindList }

func (l *List) Len() int { return len(l.elems) }

func (l *List) Get(i int) (Value, bool) {
	if i < 0 || i >= len(l.elems) {
		return nil, false
	}
	return l.elems[i], true
}

func (l *List) Elements() []Value { return l.elems }

// Concat implements list + list (§4.4): a fresh List, never aliasing
// either operand's backing array.
func (l *List) Concat(other *List) *List {
	out := make([]Value, 0, len(l.elems)+len(other.elems))
	out = append(out, l.elems...)
	out = append(out, other.elems...)
	return NewList(out)
}

func (l *List) CELString() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Repr(e))
	}
	b.WriteByte(']')
	return b.String()
}
