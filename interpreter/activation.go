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

// Package interpreter walks a parsed CST and evaluates it against a
// binding environment (§4.7, §9 of the spec). Its Activation chain
// models bindings as an immutable parent-pointer chain of frames (§9's
// design note), rather than a single mutable map, so that a
// comprehension macro can extend the environment for the duration of
// one predicate/transform evaluation and have it vanish on return.
package interpreter

import "github.com/lexrt/gocel/common/types"

// Activation resolves a name to a bound Value. Grounded on cel-go's own
// Activation/MapActivation/HierarchicalActivation (interpreter/
// activation.go), trimmed of expression-id reference resolution (a
// checked-expression feature this spec's dynamically-typed evaluator
// has no use for) and retyped from interface{} to types.Value.
type Activation interface {
	// ResolveName returns the value bound to name in this frame or any
	// of its ancestors, and whether one was found.
	ResolveName(name string) (types.Value, bool)

	// Parent returns the enclosing activation, or nil at the root.
	Parent() Activation
}

// MapActivation is a single binding frame backed by a map, typically
// the caller-supplied top-level bindings (§3.4).
type MapActivation struct {
	bindings map[string]types.Value
}

var _ Activation = (*MapActivation)(nil)

// NewActivation wraps bindings as a root Activation.
func NewActivation(bindings map[string]types.Value) *MapActivation {
	if bindings == nil {
		bindings = map[string]types.Value{}
	}
	return &MapActivation{bindings: bindings}
}

func (a *MapActivation) Parent() Activation { return nil }

func (a *MapActivation) ResolveName(name string) (types.Value, bool) {
	v, found := a.bindings[name]
	return v, found
}

// varActivation is a single-variable frame, used to extend an
// activation with a comprehension's loop variable without allocating a
// full map per iteration.
type varActivation struct {
	parent Activation
	name   string
	value  types.Value
}

var _ Activation = (*varActivation)(nil)

// ExtendVar returns a new Activation that resolves name to value before
// falling back to parent, for the duration of one comprehension step.
func ExtendVar(parent Activation, name string, value types.Value) Activation {
	return &varActivation{parent: parent, name: name, value: value}
}

func (a *varActivation) Parent() Activation { return a.parent }

func (a *varActivation) ResolveName(name string) (types.Value, bool) {
	if name == a.name {
		return a.value, true
	}
	if a.parent != nil {
		return a.parent.ResolveName(name)
	}
	return nil, false
}
