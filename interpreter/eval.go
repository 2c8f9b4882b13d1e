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

package interpreter

import (
	"github.com/golang/glog"

	"github.com/lexrt/gocel/ast"
	"github.com/lexrt/gocel/common/types"
	"github.com/lexrt/gocel/functions"
	"github.com/lexrt/gocel/operators"
)

// reservedIdentifiers may not appear as a standalone expression (§4.7);
// they remain legal as field names inside a dotted chain, since those
// never reach evalIdent (a SelectExpression carries its field as a
// plain string, not an IdentExpression).
var reservedIdentifiers = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true,
	"else": true, "for": true, "function": true, "if": true,
	"import": true, "let": true, "loop": true, "package": true,
	"namespace": true, "return": true, "var": true, "void": true,
	"while": true,
}

type options struct {
	maxDepth int
}

func defaultOptions() options { return options{maxDepth: 256} }

// Option configures an Interpreter, mirroring the parser package's own
// functional-options shape.
type Option func(*options)

// MaxEvalDepth bounds CST/macro nesting depth during evaluation (§5's
// deep-recursion guard), default 256.
func MaxEvalDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// Interpreter walks a CST and evaluates it against an Activation. It
// holds no per-evaluation state beyond the current call's recursion
// depth, so a single Interpreter may run many Eval calls sequentially
// (§5: not meant to be shared concurrently across goroutines without
// external synchronization, same as cel-go's own Program).
type Interpreter struct {
	funcs *functions.Registry
	opts  options
	depth int
}

// NewInterpreter builds an Interpreter with the given function registry
// (falling back to the standard built-ins with no user overrides if nil).
func NewInterpreter(funcs *functions.Registry, opts ...Option) *Interpreter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if funcs == nil {
		funcs = functions.NewRegistry(nil)
	}
	return &Interpreter{funcs: funcs, opts: o}
}

// Evaluate is a convenience wrapper for a single one-shot evaluation.
func Evaluate(e ast.Expression, act Activation, funcs *functions.Registry, opts ...Option) types.Value {
	return NewInterpreter(funcs, opts...).Eval(e, act)
}

// Eval walks e against act, dispatching arithmetic to the operators
// package, macro folds to evalComprehension, and built-in/user calls to
// the function registry (§4.7).
func (it *Interpreter) Eval(e ast.Expression, act Activation) types.Value {
	it.depth++
	defer func() { it.depth-- }()
	if it.opts.maxDepth >= 0 && it.depth > it.opts.maxDepth {
		glog.Warningf("interpreter: max evaluation depth %d exceeded", it.opts.maxDepth)
		return types.NewEvaluationErr("maximum evaluation depth exceeded")
	}

	switch v := e.(type) {
	case *ast.Int64Constant:
		return types.Int(v.Value)
	case *ast.Uint64Constant:
		return types.Uint(v.Value)
	case *ast.DoubleConstant:
		return types.Double(v.Value)
	case *ast.StringConstant:
		return types.String(v.Value)
	case *ast.BytesConstant:
		return types.Bytes(v.Value)
	case *ast.BoolConstant:
		return types.Bool(v.Value)
	case *ast.NullConstant:
		return types.NullValue
	case *ast.IdentExpression:
		return it.evalIdent(v, act)
	case *ast.SelectExpression:
		return it.evalSelect(v, act)
	case *ast.CallExpression:
		return it.evalCall(v, act)
	case *ast.CreateListExpression:
		return it.evalListLiteral(v, act)
	case *ast.CreateStructExpression:
		return it.evalMapLiteral(v, act)
	case *ast.ComprehensionExpression:
		return it.evalComprehension(v, act)
	case *ast.ErrorExpression:
		return types.NewEvaluationErr("cannot evaluate a syntax-error placeholder")
	}
	return types.NewEvaluationErr("unsupported expression node kind %s", e.Kind())
}

func (it *Interpreter) evalIdent(e *ast.IdentExpression, act Activation) types.Value {
	if reservedIdentifiers[e.Name] {
		return types.NewEvaluationErr("%q is a reserved identifier and may not be used as an expression", e.Name)
	}
	if act == nil {
		return types.NewEvaluationErr("no context passed")
	}
	v, found := act.ResolveName(e.Name)
	if !found {
		return types.NewEvaluationErr("Identifier %q not found in context: %v", e.Name, rootBindings(act))
	}
	return v
}

// rootBindings walks the Activation chain to the root MapActivation, for
// the "not found in context: {...}" diagnostic (§4.7).
func rootBindings(act Activation) map[string]types.Value {
	for act != nil {
		if m, ok := act.(*MapActivation); ok {
			return m.bindings
		}
		act = act.Parent()
	}
	return map[string]types.Value{}
}

func valuesEqual(a, b types.Value) bool { return bool(operators.Equals(a, b)) }

func (it *Interpreter) evalSelect(e *ast.SelectExpression, act Activation) types.Value {
	if e.TestOnly {
		base, missing, errv := it.evalSelectTarget(e.Target, act)
		if errv != nil {
			return errv
		}
		if missing {
			return types.False
		}
		switch c := base.(type) {
		case *types.Map:
			_, found := c.Find(types.String(e.Field), valuesEqual)
			return types.Bool(found)
		case *types.Message:
			_, found := c.Field(e.Field)
			return types.Bool(found)
		}
		return types.NewTypeErr("field selection not supported on type '%s'", base.Kind().TypeName())
	}

	target := it.Eval(e.Target, act)
	if types.IsError(target) {
		return target
	}
	switch c := target.(type) {
	case *types.Map:
		v, found := c.Find(types.String(e.Field), valuesEqual)
		if !found {
			return types.NewEvaluationErr("no such key: %q", e.Field)
		}
		return v
	case *types.Message:
		v, found := c.Field(e.Field)
		if !found {
			return types.NewEvaluationErr("no such field: %q", e.Field)
		}
		return v
	}
	return types.NewTypeErr("field selection not supported on type '%s'", target.Kind().TypeName())
}

// evalSelectTarget resolves the target of a has() presence test (§4.5),
// walking a chain of plain (non-TestOnly) select nodes one field at a
// time and reporting "missing" the moment any intermediate map/message
// lacks the next key/field, instead of letting that link's own
// EvaluationError propagate (Testable Property 7: has() never throws
// on a missing link, only on a genuinely unresolved base like an
// undefined identifier, which is surfaced as errv here unchanged).
func (it *Interpreter) evalSelectTarget(e ast.Expression, act Activation) (v types.Value, missing bool, errv types.Value) {
	sel, ok := e.(*ast.SelectExpression)
	if !ok {
		v = it.Eval(e, act)
		if types.IsError(v) {
			return nil, false, v
		}
		return v, false, nil
	}
	base, missing, errv := it.evalSelectTarget(sel.Target, act)
	if errv != nil {
		return nil, false, errv
	}
	if missing {
		return nil, true, nil
	}
	switch c := base.(type) {
	case *types.Map:
		fv, found := c.Find(types.String(sel.Field), valuesEqual)
		if !found {
			return nil, true, nil
		}
		return fv, false, nil
	case *types.Message:
		fv, found := c.Field(sel.Field)
		if !found {
			return nil, true, nil
		}
		return fv, false, nil
	}
	return nil, false, types.NewTypeErr("field selection not supported on type '%s'", base.Kind().TypeName())
}

func (it *Interpreter) evalCall(e *ast.CallExpression, act Activation) types.Value {
	switch e.Function {
	case operators.LogicalAnd:
		return it.evalAnd(e, act)
	case operators.LogicalOr:
		return it.evalOr(e, act)
	case operators.Conditional:
		return it.evalConditional(e, act)
	}

	var target types.Value
	if e.Target != nil {
		target = it.Eval(e.Target, act)
		if types.IsError(target) {
			return target
		}
	}
	args := make([]types.Value, len(e.Args))
	for i, a := range e.Args {
		v := it.Eval(a, act)
		if types.IsError(v) {
			return v
		}
		args[i] = v
	}

	switch e.Function {
	case operators.Index:
		return it.evalIndex(args[0], args[1])
	case operators.In:
		return operators.In(args[0], args[1])
	case operators.Equals:
		return operators.Equals(args[0], args[1])
	case operators.NotEquals:
		return operators.NotEquals(args[0], args[1])
	case operators.Less:
		return operators.Less(args[0], args[1])
	case operators.LessEquals:
		return operators.LessEquals(args[0], args[1])
	case operators.Greater:
		return operators.Greater(args[0], args[1])
	case operators.GreaterEquals:
		return operators.GreaterEquals(args[0], args[1])
	case operators.Add:
		return operators.Add(args[0], args[1])
	case operators.Subtract:
		return operators.Subtract(args[0], args[1])
	case operators.Multiply:
		return operators.Multiply(args[0], args[1])
	case operators.Divide:
		return operators.Divide(args[0], args[1])
	case operators.Modulo:
		return operators.Modulo(args[0], args[1])
	case operators.Negate:
		return operators.Negate(args[0])
	case operators.LogicalNot:
		return operators.Not(args[0])
	}

	fn, ok := it.funcs.Lookup(e.Function)
	if !ok {
		return types.NewEvaluationErr("unbound function: %s", e.Function)
	}
	return fn(target, args)
}

// evalAnd implements '&&' with CEL's commutative short circuit (§4.7,
// §5): a concrete false on either side forces the result to false even
// if the other side errors or is itself untyped; only otherwise does an
// error or non-bool operand surface.
func (it *Interpreter) evalAnd(e *ast.CallExpression, act Activation) types.Value {
	l := it.Eval(e.Args[0], act)
	if lb, ok := l.(types.Bool); ok && !bool(lb) {
		return types.False
	}
	r := it.Eval(e.Args[1], act)
	if rb, ok := r.(types.Bool); ok && !bool(rb) {
		return types.False
	}
	if err := types.MaybeErr(l, r); err != nil {
		return err
	}
	lb, lok := l.(types.Bool)
	rb, rok := r.(types.Bool)
	if !lok || !rok {
		return types.NewTypeErr("no matching overload for '&&' applied to (%s, %s)", l.Kind().TypeName(), r.Kind().TypeName())
	}
	return types.Bool(bool(lb) && bool(rb))
}

// evalOr is the dual of evalAnd: a concrete true on either side forces
// the result to true.
func (it *Interpreter) evalOr(e *ast.CallExpression, act Activation) types.Value {
	l := it.Eval(e.Args[0], act)
	if lb, ok := l.(types.Bool); ok && bool(lb) {
		return types.True
	}
	r := it.Eval(e.Args[1], act)
	if rb, ok := r.(types.Bool); ok && bool(rb) {
		return types.True
	}
	if err := types.MaybeErr(l, r); err != nil {
		return err
	}
	lb, lok := l.(types.Bool)
	rb, rok := r.(types.Bool)
	if !lok || !rok {
		return types.NewTypeErr("no matching overload for '||' applied to (%s, %s)", l.Kind().TypeName(), r.Kind().TypeName())
	}
	return types.Bool(bool(lb) || bool(rb))
}

// evalConditional implements '?:' with a genuine short circuit: only the
// selected branch is ever evaluated (§4.7, §5).
func (it *Interpreter) evalConditional(e *ast.CallExpression, act Activation) types.Value {
	cond := it.Eval(e.Args[0], act)
	if types.IsError(cond) {
		return cond
	}
	b, ok := cond.(types.Bool)
	if !ok {
		return types.NewTypeErr("no matching overload for '?:' applied to (%s, ...)", cond.Kind().TypeName())
	}
	if b {
		return it.Eval(e.Args[1], act)
	}
	return it.Eval(e.Args[2], act)
}

func (it *Interpreter) evalIndex(target, key types.Value) types.Value {
	switch c := target.(type) {
	case *types.List:
		i, ok := key.(types.Int)
		if !ok {
			return types.NewTypeErr("list index must be int, got '%s'", key.Kind().TypeName())
		}
		v, found := c.Get(int(i))
		if !found {
			return types.NewEvaluationErr("index %d out of range (list has %d elements)", i, c.Len())
		}
		return v
	case *types.Map:
		v, found := c.Find(key, valuesEqual)
		if !found {
			return types.NewEvaluationErr("no such key: %s", types.Repr(key))
		}
		return v
	case *types.Message:
		s, ok := key.(types.String)
		if !ok {
			return types.NewTypeErr("message index must be string, got '%s'", key.Kind().TypeName())
		}
		v, found := c.Field(string(s))
		if !found {
			return types.NewEvaluationErr("no such field: %q", string(s))
		}
		return v
	}
	return types.NewTypeErr("'[]' not supported on type '%s'", target.Kind().TypeName())
}

func (it *Interpreter) evalListLiteral(e *ast.CreateListExpression, act Activation) types.Value {
	elems := make([]types.Value, len(e.Entries))
	for i, entry := range e.Entries {
		v := it.Eval(entry, act)
		if types.IsError(v) {
			return v
		}
		elems[i] = v
	}
	return types.NewList(elems)
}

func (it *Interpreter) evalMapLiteral(e *ast.CreateStructExpression, act Activation) types.Value {
	entries := make([]types.MapEntry, len(e.Entries))
	for i, entry := range e.Entries {
		k := it.Eval(entry.Key, act)
		if types.IsError(k) {
			return k
		}
		v := it.Eval(entry.Value, act)
		if types.IsError(v) {
			return v
		}
		entries[i] = types.MapEntry{Key: k, Val: v}
	}
	return types.NewMap(entries)
}

// iterableValues returns the elements a comprehension folds over.
// Iterating a Map binds the loop variable to its values, in insertion
// order, not its keys (see DESIGN.md's Open Question resolution): the
// parser's filter()/map() expansions (parser/macro.go) always fold into
// a List via this one rule, regardless of whether Target is a List or a
// Map, so there is no separate Map-shaped result to reconstruct here.
func iterableValues(v types.Value) ([]types.Value, bool) {
	switch x := v.(type) {
	case *types.List:
		return x.Elements(), true
	case *types.Map:
		vals := make([]types.Value, 0, x.Len())
		for _, entry := range x.Entries() {
			vals = append(vals, entry.Val)
		}
		return vals, true
	}
	return nil, false
}

// evalComprehension is the single generic fold rule (§4.6, §9) that
// implements all/exists/exists_one/map/filter uniformly (has is lowered
// to a presence-test select instead, handled by evalSelect): the parser
// has already lowered each macro into (Variable, Target, Accumulator,
// Init, LoopCondition, LoopStep, Result); this is the only place that
// walks it, keeping per-macro special casing entirely in the parser's
// expansion rather than in the evaluator.
func (it *Interpreter) evalComprehension(c *ast.ComprehensionExpression, act Activation) types.Value {
	target := it.Eval(c.Target, act)
	if types.IsError(target) {
		return target
	}
	items, ok := iterableValues(target)
	if !ok {
		return types.NewTypeErr("cannot iterate over type '%s'", target.Kind().TypeName())
	}

	accuVal := it.Eval(c.Init, act)
	if types.IsError(accuVal) {
		return accuVal
	}
	env := ExtendVar(act, c.Accumulator, accuVal)

	for _, item := range items {
		cond := it.Eval(c.LoopCondition, env)
		if types.IsError(cond) {
			return cond
		}
		b, ok := cond.(types.Bool)
		if !ok {
			return types.NewTypeErr("loop condition must be bool, got '%s'", cond.Kind().TypeName())
		}
		if !b {
			break
		}
		iterEnv := ExtendVar(env, c.Variable, item)
		next := it.Eval(c.LoopStep, iterEnv)
		if types.IsError(next) {
			return next
		}
		env = ExtendVar(act, c.Accumulator, next)
	}
	return it.Eval(c.Result, env)
}
