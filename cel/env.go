// Copyright 2019 Google LLC
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

package cel

import (
	"github.com/lexrt/gocel/ast"
	"github.com/lexrt/gocel/common/types"
	"github.com/lexrt/gocel/functions"
)

// Env bundles a user function table and a set of evaluation options,
// letting a caller reuse the same configuration (extra functions, a
// deep-recursion limit, the unknown-identifier escape hatch) across many
// Parse/Eval calls without repeating it each time. Grounded on cel-go's
// own Env (cel/env.go), stripped of everything downstream of its
// checker.Env and TypeProvider/TypeAdapter: this spec's evaluator is
// dynamically typed and has no declarations to register or proto
// descriptors to resolve (§1 Non-goal: no type checking).
type Env struct {
	funcs map[string]functions.Func
	opts  []Option
}

// NewEnv builds an Env with no extra user functions and the default
// options (§5's 256-deep recursion guard, unknown identifiers rejected).
func NewEnv(opts ...Option) *Env {
	return &Env{funcs: map[string]functions.Func{}, opts: opts}
}

// Function registers or replaces a user function in this Env, returning
// the same Env for chaining. A user function of the same name always
// takes precedence over a built-in (§4.7); functions.Registry logs a
// warning if this shadows one.
func (e *Env) Function(name string, fn functions.Func) *Env {
	e.funcs[name] = fn
	return e
}

// Parse compiles text into a CST. It is the package-level Parse: none of
// this Env's options or functions affect parsing. See the package-level
// Parse for the contract.
func (e *Env) Parse(text string) (ast.Expression, *ParseError) {
	return Parse(text)
}

// Eval parses and evaluates text against bindings, using this Env's
// registered functions and options.
func (e *Env) Eval(text string, bindings map[string]types.Value) (types.Value, error) {
	return Evaluate(text, bindings, e.funcs, e.opts...)
}

// EvalAst evaluates an already-parsed expression (e.g. the result of a
// prior Parse, reused across many evaluations to avoid reparsing).
func (e *Env) EvalAst(expr ast.Expression, bindings map[string]types.Value) (types.Value, error) {
	return Evaluate(expr, bindings, e.funcs, e.opts...)
}
