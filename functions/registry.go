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

// Package functions defines the built-in library (C5 of the spec):
// size/type, the math/conversion built-ins, and the string
// receiver methods, plus the registry the evaluator consults when
// dispatching a call that isn't one of the operator-kernel's own
// infix/prefix forms. Grounded on cel-go's interpreter/functions
// package (Overload/StandardBuiltins), but retyped from reflection-
// checked interface{} signatures to a single Func over the closed
// types.Value sum — arity and type checking are plain Go, not
// reflection, since the value domain is already closed.
package functions

import (
	"github.com/golang/glog"

	"github.com/lexrt/gocel/common/types"
)

// Func is one callable: a built-in or a caller-supplied user function.
// target is nil for a global-style call (e.g. size(x)); non-nil for a
// receiver-style call (e.g. x.startsWith(y)).
type Func func(target types.Value, args []types.Value) types.Value

// Registry is the evaluator's two-table function dispatch (§4.7): a
// fixed built-in table and a caller-supplied table that may shadow it.
// User names override built-ins by construction: they are consulted
// first in Lookup.
type Registry struct {
	user    map[string]Func
	builtin map[string]Func
}

// NewRegistry returns the standard built-in table, with user optionally
// overriding any entry by name (including operator-like names; the
// evaluator itself still handles infix/prefix operators directly via
// the operators package, so overriding e.g. "_+_" here has no effect).
func NewRegistry(user map[string]Func) *Registry {
	if user == nil {
		user = map[string]Func{}
	}
	builtin := standard()
	for name := range user {
		if _, ok := builtin[name]; ok {
			glog.Warningf("functions: user function %q shadows a built-in of the same name", name)
		}
	}
	return &Registry{user: user, builtin: builtin}
}

// Lookup resolves name, preferring a user-supplied function over a
// built-in of the same name (§4.7).
func (r *Registry) Lookup(name string) (Func, bool) {
	if f, ok := r.user[name]; ok {
		return f, true
	}
	f, ok := r.builtin[name]
	return f, ok
}

func arityErr(name string, want int, got int) *types.Err {
	return types.NewEvaluationErr("%s() expects %d argument(s), got %d", name, want, got)
}
