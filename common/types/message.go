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

import (
	"reflect"
	"strings"

	"github.com/stoewer/go-strcase"
)

// Message is the CEL message variant (§3.3): an opaque record with
// field-presence queries, distinct from Map only in that it is built
// from a native Go struct rather than a CEL map literal. Field names are
// snake_cased the way a protobuf-generated Go struct's JSON name would
// be, so `has(m.user_name)` matches a Go field `UserName` (the same
// direction of rename cel-go's provider.go performs, via the same
// go-strcase dependency; see SPEC_FULL.md §C).
type Message struct {
	typeName string
	fields   map[string]Value
}

// NewMessageFromStruct reflects over a native Go struct (or pointer to
// one) and builds a Message whose field set is the struct's exported
// fields, snake_cased, each converted via adapt.
func NewMessageFromStruct(typeName string, v interface{}, adapt func(interface{}) Value) *Message {
	fields := map[string]Value{}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return &Message{typeName: typeName, fields: fields}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return &Message{typeName: typeName, fields: fields}
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}
		name := strcase.SnakeCase(f.Name)
		fields[name] = adapt(rv.Field(i).Interface())
	}
	return &Message{typeName: typeName, fields: fields}
}

// NewMessage builds a Message directly from an already-named field map,
// for callers that want has()-style presence testing without map
// semantics. The fields map is used as given, not copied.
func NewMessage(typeName string, fields map[string]Value) *Message {
	return &Message{typeName: typeName, fields: fields}
}

func (m *Message) Kind() Kind { return KindMessage }

func (m *Message) TypeName() string { return m.typeName }

// Field returns the value bound to name and whether it is present.
func (m *Message) Field(name string) (Value, bool) {
	v, ok := m.fields[name]
	return v, ok
}

func (m *Message) FieldNames() []string {
	names := make([]string, 0, len(m.fields))
	for name := range m.fields {
		names = append(names, name)
	}
	return names
}

func (m *Message) CELString() string {
	var b strings.Builder
	b.WriteString(m.typeName)
	b.WriteByte('{')
	first := true
	for name, v := range m.fields {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(Repr(v))
	}
	b.WriteByte('}')
	return b.String()
}
