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

package parser

import (
	"fmt"

	"github.com/lexrt/gocel/ast"
	"github.com/lexrt/gocel/operators"
)

// macro recognizes a receiver-style (or, for has, global) call shaped
// like collection.name(var, predicate[, transform]) and expands it at
// parse time into a comprehension (§4.6, §9; has instead becomes a
// presence-test select): the predicate/transform
// stays an unevaluated sub-AST, later walked once per element by the
// interpreter's single generic comprehension rule.
type macro struct {
	name          string
	instanceStyle bool
	args          int
	expand        func(p *Parser, offset int, target ast.Expression, args []ast.Expression) ast.Expression
}

func macroKey(name string, args int, instanceStyle bool) string {
	return fmt.Sprintf("%s:%d:%v", name, args, instanceStyle)
}

func (m macro) key() string { return macroKey(m.name, m.args, m.instanceStyle) }

// allMacros is the fixed macro table (§4.6); CEL macros are not
// user-extensible in this spec.
var allMacros = []macro{
	{name: operators.Has, instanceStyle: false, args: 1, expand: makeHas},
	{name: operators.All, instanceStyle: true, args: 2, expand: makeAll},
	{name: operators.Exists, instanceStyle: true, args: 2, expand: makeExists},
	{name: operators.ExistsOne, instanceStyle: true, args: 2, expand: makeExistsOne},
	{name: operators.Map, instanceStyle: true, args: 2, expand: makeMap},
	{name: operators.Map, instanceStyle: true, args: 3, expand: makeMap},
	{name: operators.Filter, instanceStyle: true, args: 2, expand: makeFilter},
}

var macroTable = func() map[string]macro {
	m := make(map[string]macro, len(allMacros))
	for _, mac := range allMacros {
		m[mac.key()] = mac
	}
	return m
}()

// Field presence.

func makeHas(p *Parser, offset int, target ast.Expression, args []ast.Expression) ast.Expression {
	if sel, ok := args[0].(*ast.SelectExpression); ok {
		return p.h.newPresenceTest(offset, sel.Target, sel.Field)
	}
	p.errs.invalidHasArgument(offset)
	return &ast.ErrorExpression{}
}

// Logical quantifiers.

const accumulatorName = "__result__"

func makeAll(p *Parser, offset int, target ast.Expression, args []ast.Expression) ast.Expression {
	v, ok := extractIdent(args[0])
	if !ok {
		p.errs.argumentIsNotIdent(offset)
		return &ast.ErrorExpression{}
	}
	accu := func() ast.Expression { return p.h.newIdent(offset, accumulatorName) }
	init := ast.NewBoolConstant(p.h.id(offset), p.h.loc(offset), true)
	condition := accu()
	step := p.h.newGlobalCall(offset, operators.LogicalAnd, accu(), args[1])
	result := accu()
	return p.h.newComprehension(offset, v, target, accumulatorName, init, condition, step, result)
}

func makeExists(p *Parser, offset int, target ast.Expression, args []ast.Expression) ast.Expression {
	v, ok := extractIdent(args[0])
	if !ok {
		p.errs.argumentIsNotIdent(offset)
		return &ast.ErrorExpression{}
	}
	accu := func() ast.Expression { return p.h.newIdent(offset, accumulatorName) }
	init := ast.NewBoolConstant(p.h.id(offset), p.h.loc(offset), false)
	condition := p.h.newGlobalCall(offset, operators.LogicalNot, accu())
	step := p.h.newGlobalCall(offset, operators.LogicalOr, accu(), args[1])
	result := accu()
	return p.h.newComprehension(offset, v, target, accumulatorName, init, condition, step, result)
}

func makeExistsOne(p *Parser, offset int, target ast.Expression, args []ast.Expression) ast.Expression {
	v, ok := extractIdent(args[0])
	if !ok {
		p.errs.argumentIsNotIdent(offset)
		return &ast.ErrorExpression{}
	}
	accu := func() ast.Expression { return p.h.newIdent(offset, accumulatorName) }
	loc := p.h.loc(offset)
	zero := ast.NewInt64Constant(p.h.id(offset), loc, 0)
	one := ast.NewInt64Constant(p.h.id(offset), loc, 1)
	init := zero
	condition := p.h.newGlobalCall(offset, operators.LessEquals, accu(), one)
	step := p.h.newGlobalCall(offset, operators.Conditional, args[1],
		p.h.newGlobalCall(offset, operators.Add, accu(), one), accu())
	result := p.h.newGlobalCall(offset, operators.Equals, accu(), one)
	return p.h.newComprehension(offset, v, target, accumulatorName, init, condition, step, result)
}

// map(v, transform) / map(v, predicate, transform).

func makeMap(p *Parser, offset int, target ast.Expression, args []ast.Expression) ast.Expression {
	v, ok := extractIdent(args[0])
	if !ok {
		p.errs.argumentIsNotIdent(offset)
		return &ast.ErrorExpression{}
	}
	var filter, transform ast.Expression
	if len(args) == 3 {
		filter, transform = args[1], args[2]
	} else {
		transform = args[1]
	}
	accu := p.h.newIdent(offset, accumulatorName)
	init := p.h.newList(offset)
	condition := ast.NewBoolConstant(p.h.id(offset), p.h.loc(offset), true)
	step := p.h.newGlobalCall(offset, operators.Add, accu, p.h.newList(offset, transform))
	if filter != nil {
		step = p.h.newGlobalCall(offset, operators.Conditional, filter, step, accu)
	}
	return p.h.newComprehension(offset, v, target, accumulatorName, init, condition, step, accu)
}

// filter(v, predicate).

func makeFilter(p *Parser, offset int, target ast.Expression, args []ast.Expression) ast.Expression {
	v, ok := extractIdent(args[0])
	if !ok {
		p.errs.argumentIsNotIdent(offset)
		return &ast.ErrorExpression{}
	}
	predicate := args[1]
	accu := p.h.newIdent(offset, accumulatorName)
	init := p.h.newList(offset)
	condition := ast.NewBoolConstant(p.h.id(offset), p.h.loc(offset), true)
	step := p.h.newGlobalCall(offset, operators.Add, accu, p.h.newList(offset, args[0]))
	step = p.h.newGlobalCall(offset, operators.Conditional, predicate, step, accu)
	return p.h.newComprehension(offset, v, target, accumulatorName, init, condition, step, accu)
}

func extractIdent(e ast.Expression) (string, bool) {
	if id, ok := e.(*ast.IdentExpression); ok {
		return id.Name, true
	}
	return "", false
}
