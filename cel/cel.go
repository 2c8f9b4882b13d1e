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

// Package cel is the public programmatic API (C8): Parse, Evaluate, and
// the Env façade that bundles a function table and evaluation options.
// Grounded on cel-go's own top-level cel package (Env/Ast/Program), but
// with the type-checking, proto-descriptor, and optimizer machinery of
// that package stripped out: this evaluator is dynamically typed end to
// end, so there is no Ast.IsChecked/ResultType distinction to carry.
package cel

import (
	"fmt"

	"github.com/lexrt/gocel/ast"
	"github.com/lexrt/gocel/common"
	"github.com/lexrt/gocel/common/types"
	"github.com/lexrt/gocel/functions"
	"github.com/lexrt/gocel/interpreter"
	"github.com/lexrt/gocel/parser"
)

// Parse compiles text into a CST. A non-nil *ParseError means parsing
// failed; the returned expression in that case may contain
// ast.ErrorExpression placeholders and must not be evaluated.
func Parse(text string) (ast.Expression, *ParseError) {
	e, errs := parser.Parse(common.NewTextSource("<input>", text))
	if !errs.Empty() {
		return e, &ParseError{errs: errs}
	}
	return e, nil
}

// Evaluate parses (if source is a string) or reuses (if source is
// already an ast.Expression, e.g. from a prior Parse) an expression and
// evaluates it against bindings and an optional set of user functions
// that shadow or extend the standard library. A plain Go error is
// returned carrying one of *ParseError, *TypeError, or
// *EvaluationError, matching §7's three kinds.
func Evaluate(source interface{}, bindings map[string]types.Value, userFuncs map[string]functions.Func, opts ...Option) (types.Value, error) {
	e, err := toExpression(source)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var act interpreter.Activation
	if bindings != nil {
		act = interpreter.NewActivation(bindings)
	}
	if o.resolveUnknownToNull {
		act = &nullFallbackActivation{Activation: act}
	}

	reg := functions.NewRegistry(userFuncs)
	v := interpreter.Evaluate(e, act, reg, interpreter.MaxEvalDepth(o.maxEvalDepth))
	if celErr, ok := types.AsErr(v); ok {
		if celErr.IsTypeError() {
			return nil, &TypeError{msg: celErr.Error()}
		}
		return nil, &EvaluationError{msg: celErr.Error()}
	}
	return v, nil
}

func toExpression(source interface{}) (ast.Expression, error) {
	switch s := source.(type) {
	case string:
		e, perr := Parse(s)
		if perr != nil {
			return nil, perr
		}
		return e, nil
	case ast.Expression:
		return s, nil
	default:
		return nil, fmt.Errorf("cel: Evaluate source must be a string or ast.Expression, got %T", source)
	}
}

// nullFallbackActivation is the "unknown top-level identifier resolves
// to null" escape hatch (disabled by default, see ResolveUnknownToNull).
// It wraps the caller's Activation (which may itself be nil, meaning no
// bindings were supplied at all) and only ever reports success.
type nullFallbackActivation struct {
	interpreter.Activation
}

func (a *nullFallbackActivation) ResolveName(name string) (types.Value, bool) {
	if a.Activation != nil {
		if v, ok := a.Activation.ResolveName(name); ok {
			return v, true
		}
	}
	return types.NullValue, true
}

func (a *nullFallbackActivation) Parent() interpreter.Activation {
	if a.Activation == nil {
		return nil
	}
	return a.Activation.Parent()
}
