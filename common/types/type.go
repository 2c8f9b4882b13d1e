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

// Package types implements the CEL value domain (§3.3 of the spec): a
// closed set of Go types, one per CEL variant, sharing the Value
// interface. Operator and conversion semantics are *not* methods on
// these types — per the spec's design notes (§9) they live as exhaustive
// type switches in the operators package, so a missing case is a single
// default branch away from being caught in review rather than scattered
// across N per-type trait implementations.
package types

// Kind identifies which CEL variant a Value holds. It is the tag of the
// tagged union described in §3.3.
type Kind uint8

const (
	KindInt Kind = iota
	KindUint
	KindDouble
	KindBool
	KindString
	KindBytes
	KindNull
	KindList
	KindMap
	KindTimestamp
	KindDuration
	KindMessage
	KindType
	KindErr
)

// TypeName returns the symbolic type name used by type() and by error
// messages (§3.3's table).
func (k Kind) TypeName() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindNull:
		return "null_type"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindTimestamp:
		return "timestamp"
	case KindDuration:
		return "duration"
	case KindMessage:
		return "map" // a Message behaves as a map-like for type purposes.
	case KindType:
		return "type"
	case KindErr:
		return "error"
	}
	return "unknown"
}

func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindUint || k == KindDouble
}

// Value is implemented by every CEL variant in §3.3.
type Value interface {
	// Kind reports which variant this value is.
	Kind() Kind
	// CELString renders the value the way string(x) would (§4.5); it is
	// also used to build error messages and the REPL-style %v output.
	CELString() string
}

// TypeValue is the Value produced by the type() built-in (§4.5): a
// first-class handle on a Kind's symbolic name.
type TypeValue struct {
	Name string
}

func NewTypeValue(k Kind) *TypeValue { return &TypeValue{Name: k.TypeName()} }

func (t *TypeValue) Kind() Kind        { return KindType }
func (t *TypeValue) CELString() string { return t.Name }
