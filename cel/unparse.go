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
	"fmt"
	"strconv"
	"strings"

	"github.com/lexrt/gocel/ast"
	"github.com/lexrt/gocel/operators"
)

// Unparse renders a CST back into CEL source text (§D.1): a read-only
// visitor over ast.Expression, reusing the node kinds ast/debug.go
// already walks, but emitting real operator syntax (`a + b`, `a.b`,
// `a[b]`, `c ? a : b`) instead of ast.ToDebugString's indented tree
// dump. Useful for diagnostics and for Testable Property 1 (round-trip)
// tests that want to see what a macro actually expanded to.
//
// A ComprehensionExpression only ever reaches Unparse as the output of
// one of the parser's own macro expansions (CEL has no literal
// comprehension syntax), so Unparse recognizes each macro's exact
// expansion shape from parser/macro.go and renders it back as the
// macro call that produced it, rather than the internal
// accumulator/loop-step form.
func Unparse(e ast.Expression) (string, error) {
	var b strings.Builder
	if err := unparse(&b, e, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

// precedence mirrors the parser's own grammar levels (parser.go), low
// to high, so a child only gets parens when its own precedence is
// lower than its parent's.
func precedence(fn string) int {
	switch fn {
	case operators.Conditional:
		return 1
	case operators.LogicalOr:
		return 2
	case operators.LogicalAnd:
		return 3
	case operators.Equals, operators.NotEquals, operators.Less, operators.LessEquals,
		operators.Greater, operators.GreaterEquals, operators.In:
		return 4
	case operators.Add, operators.Subtract:
		return 5
	case operators.Multiply, operators.Divide, operators.Modulo:
		return 6
	case operators.LogicalNot, operators.Negate:
		return 7
	default:
		return 8 // calls, index, select: tightest binding.
	}
}

func unparse(b *strings.Builder, e ast.Expression, parentPrec int) error {
	switch v := e.(type) {
	case *ast.Int64Constant:
		fmt.Fprintf(b, "%d", v.Value)
	case *ast.Uint64Constant:
		fmt.Fprintf(b, "%du", v.Value)
	case *ast.DoubleConstant:
		fmt.Fprintf(b, "%v", v.Value)
	case *ast.StringConstant:
		b.WriteString(strconv.Quote(v.Value))
	case *ast.BytesConstant:
		b.WriteString("b")
		b.WriteString(strconv.Quote(string(v.Value)))
	case *ast.BoolConstant:
		if v.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *ast.NullConstant:
		b.WriteString("null")
	case *ast.IdentExpression:
		b.WriteString(v.Name)
	case *ast.SelectExpression:
		if v.TestOnly {
			b.WriteString("has(")
			if err := unparse(b, v.Target, precedence("")); err != nil {
				return err
			}
			b.WriteString(".")
			b.WriteString(v.Field)
			b.WriteString(")")
			return nil
		}
		if err := unparse(b, v.Target, precedence("")); err != nil {
			return err
		}
		b.WriteString(".")
		b.WriteString(v.Field)
	case *ast.CreateListExpression:
		b.WriteString("[")
		for i, elem := range v.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := unparse(b, elem, 0); err != nil {
				return err
			}
		}
		b.WriteString("]")
	case *ast.CreateStructExpression:
		b.WriteString("{")
		for i, entry := range v.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := unparse(b, entry.Key, 0); err != nil {
				return err
			}
			b.WriteString(": ")
			if err := unparse(b, entry.Value, 0); err != nil {
				return err
			}
		}
		b.WriteString("}")
	case *ast.CallExpression:
		return unparseCall(b, v, parentPrec)
	case *ast.ComprehensionExpression:
		return unparseComprehension(b, v)
	case *ast.ErrorExpression:
		return fmt.Errorf("cel: cannot unparse a syntax-error placeholder")
	default:
		// e.Kind() names the offending production from the CST's own
		// closed tag set (ast.ExprKind) rather than leaking a Go
		// reflect type name through %T.
		return fmt.Errorf("cel: unparse: unsupported node kind %s", e.Kind())
	}
	return nil
}

func unparseCall(b *strings.Builder, e *ast.CallExpression, parentPrec int) error {
	prec := precedence(e.Function)
	wrap := prec < parentPrec
	open := func() {
		if wrap {
			b.WriteString("(")
		}
	}
	closeParen := func() {
		if wrap {
			b.WriteString(")")
		}
	}

	switch e.Function {
	case operators.Conditional:
		open()
		if err := unparse(b, e.Args[0], prec+1); err != nil {
			return err
		}
		b.WriteString(" ? ")
		if err := unparse(b, e.Args[1], prec); err != nil {
			return err
		}
		b.WriteString(" : ")
		if err := unparse(b, e.Args[2], prec); err != nil {
			return err
		}
		closeParen()
		return nil
	case operators.LogicalNot, operators.Negate:
		sym := "!"
		if e.Function == operators.Negate {
			sym = "-"
		}
		open()
		b.WriteString(sym)
		if err := unparse(b, e.Args[0], prec); err != nil {
			return err
		}
		closeParen()
		return nil
	case operators.Index:
		if err := unparse(b, e.Args[0], precedence("")); err != nil {
			return err
		}
		b.WriteString("[")
		if err := unparse(b, e.Args[1], 0); err != nil {
			return err
		}
		b.WriteString("]")
		return nil
	}

	if sym, isInfix := operators.Symbol(e.Function); isInfix {
		open()
		if err := unparse(b, e.Args[0], prec); err != nil {
			return err
		}
		fmt.Fprintf(b, " %s ", sym)
		if err := unparse(b, e.Args[1], prec+1); err != nil {
			return err
		}
		closeParen()
		return nil
	}

	// An ordinary global or receiver-style function/built-in call.
	if e.Target != nil {
		if err := unparse(b, e.Target, precedence("")); err != nil {
			return err
		}
		b.WriteString(".")
	}
	b.WriteString(e.Function)
	b.WriteString("(")
	for i, arg := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := unparse(b, arg, 0); err != nil {
			return err
		}
	}
	b.WriteString(")")
	return nil
}

// unparseComprehension recognizes which of the six fixed macros (§4.6)
// produced e from its exact expansion shape (parser/macro.go) and
// prints the macro call, since CEL source never spells out a
// comprehension directly.
func unparseComprehension(b *strings.Builder, e *ast.ComprehensionExpression) error {
	accuRef, isAccuRef := e.Result.(*ast.IdentExpression)
	isIdentityResult := isAccuRef && accuRef.Name == e.Accumulator

	writeMacro := func(name string, args ...ast.Expression) error {
		if err := unparse(b, e.Target, precedence("")); err != nil {
			return err
		}
		fmt.Fprintf(b, ".%s(%s", name, e.Variable)
		for _, a := range args {
			b.WriteString(", ")
			if err := unparse(b, a, 0); err != nil {
				return err
			}
		}
		b.WriteString(")")
		return nil
	}

	// all(v, predicate): init=true, condition=accu, step=accu && predicate, result=accu.
	if isIdentityResult {
		if cond, ok := e.LoopCondition.(*ast.IdentExpression); ok && cond.Name == e.Accumulator {
			if step, ok := e.LoopStep.(*ast.CallExpression); ok && step.Function == operators.LogicalAnd {
				return writeMacro("all", step.Args[1])
			}
		}
	}

	// exists(v, predicate): condition=!accu, step=accu || predicate, result=accu.
	if isIdentityResult {
		if cond, ok := e.LoopCondition.(*ast.CallExpression); ok && cond.Function == operators.LogicalNot {
			if step, ok := e.LoopStep.(*ast.CallExpression); ok && step.Function == operators.LogicalOr {
				return writeMacro("exists", step.Args[1])
			}
		}
	}

	// exists_one(v, predicate): result = accu == 1, step is a conditional increment.
	if result, ok := e.Result.(*ast.CallExpression); ok && result.Function == operators.Equals {
		if step, ok := e.LoopStep.(*ast.CallExpression); ok && step.Function == operators.Conditional {
			return writeMacro("exists_one", step.Args[0])
		}
	}

	// map(v, transform) / map(v, predicate, transform) / filter(v, predicate):
	// all three share init=[] and result=accu; distinguished by the step shape.
	if isIdentityResult {
		if _, ok := e.Init.(*ast.CreateListExpression); ok {
			step := e.LoopStep
			var filter ast.Expression
			addCall, ok := step.(*ast.CallExpression)
			if !ok || addCall.Function != operators.Add {
				if cond, ok := step.(*ast.CallExpression); ok && cond.Function == operators.Conditional {
					filter = cond.Args[0]
					addCall, ok = cond.Args[1].(*ast.CallExpression)
					if !ok || addCall.Function != operators.Add {
						addCall = nil
					}
				} else {
					addCall = nil
				}
			}
			if addCall != nil {
				if wrapped, ok := addCall.Args[1].(*ast.CreateListExpression); ok && len(wrapped.Entries) == 1 {
					entry := wrapped.Entries[0]
					if id, ok := entry.(*ast.IdentExpression); ok && id.Name == e.Variable && filter != nil {
						return writeMacro("filter", filter)
					}
					if filter != nil {
						return writeMacro("map", filter, entry)
					}
					return writeMacro("map", entry)
				}
			}
		}
	}

	return fmt.Errorf("cel: unparse: unrecognized comprehension shape")
}
