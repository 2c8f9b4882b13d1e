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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexrt/gocel/ast"
	"github.com/lexrt/gocel/common"
)

func parseOK(t *testing.T, src string) ast.Expression {
	t.Helper()
	e, errs := Parse(common.NewTextSource("<test>", src))
	require.True(t, errs.Empty(), "unexpected parse errors for %q: %v", src, errs.Messages())
	return e
}

func debugOf(t *testing.T, src string) string {
	t.Helper()
	return ast.ToDebugString(parseOK(t, src))
}

func TestParserPrecedenceArithmetic(t *testing.T) {
	assert.Equal(t, "_+_(\n  1,\n  _*_(\n    2,\n    3\n  )\n)", debugOf(t, "1 + 2 * 3"))
}

func TestParserLeftAssociativity(t *testing.T) {
	assert.Equal(t, "_-_(\n  _-_(\n    1,\n    2\n  ),\n  3\n)", debugOf(t, "1 - 2 - 3"))
}

func TestParserTernaryIsRightAssociativeAndLowestPrecedence(t *testing.T) {
	got := debugOf(t, "a ? b : c ? d : e")
	want := "_?_:_(\n  a,\n  b,\n  _?_:_(\n    c,\n    d,\n    e\n  )\n)"
	assert.Equal(t, want, got)
}

func TestParserLogicalOperatorPrecedence(t *testing.T) {
	got := debugOf(t, "a || b && c")
	want := "_||_(\n  a,\n  _&&_(\n    b,\n    c\n  )\n)"
	assert.Equal(t, want, got)
}

func TestParserUnaryChaining(t *testing.T) {
	got := debugOf(t, "!!a")
	want := "!_(\n  !_(\n    a\n  )\n)"
	assert.Equal(t, want, got)
}

func TestParserPostfixBindsTighterThanUnary(t *testing.T) {
	e := parseOK(t, "-a.b")
	call, ok := e.(*ast.CallExpression)
	require.True(t, ok)
	assert.Equal(t, "-_", call.Function)
	_, ok = call.Args[0].(*ast.SelectExpression)
	assert.True(t, ok, "operand of unary negate should be the select, not the other way around")
}

func TestParserRelationDoesNotChain(t *testing.T) {
	// a single relational operator is allowed per Relation production;
	// a second one must be rejected as a syntax error.
	_, errs := Parse(common.NewTextSource("<test>", "a < b < c"))
	assert.False(t, errs.Empty())
}

func TestParserSelectAndIndex(t *testing.T) {
	e := parseOK(t, "a.b[0]")
	call, ok := e.(*ast.CallExpression)
	require.True(t, ok)
	assert.Equal(t, "_[_]", call.Function)
	sel, ok := call.Args[0].(*ast.SelectExpression)
	require.True(t, ok)
	assert.Equal(t, "b", sel.Field)
}

func TestParserListLiteralTrailingComma(t *testing.T) {
	e := parseOK(t, "[1, 2, 3,]")
	list, ok := e.(*ast.CreateListExpression)
	require.True(t, ok)
	assert.Len(t, list.Entries, 3)
}

func TestParserEmptyListAndMap(t *testing.T) {
	e := parseOK(t, "[]")
	list, ok := e.(*ast.CreateListExpression)
	require.True(t, ok)
	assert.Empty(t, list.Entries)

	e = parseOK(t, "{}")
	m, ok := e.(*ast.CreateStructExpression)
	require.True(t, ok)
	assert.Empty(t, m.Entries)
}

func TestParserMapLiteral(t *testing.T) {
	e := parseOK(t, `{"a": 1, "b": 2}`)
	m, ok := e.(*ast.CreateStructExpression)
	require.True(t, ok)
	assert.Len(t, m.Entries, 2)
}

func TestParserGlobalFunctionCall(t *testing.T) {
	e := parseOK(t, "size(x)")
	call, ok := e.(*ast.CallExpression)
	require.True(t, ok)
	assert.Equal(t, "size", call.Function)
	assert.Nil(t, call.Target)
	assert.Len(t, call.Args, 1)
}

func TestParserReceiverMethodCall(t *testing.T) {
	e := parseOK(t, `x.startsWith("a")`)
	call, ok := e.(*ast.CallExpression)
	require.True(t, ok)
	assert.Equal(t, "startsWith", call.Function)
	assert.NotNil(t, call.Target)
}

func TestParserHasMacro(t *testing.T) {
	e := parseOK(t, "has(a.b)")
	sel, ok := e.(*ast.SelectExpression)
	require.True(t, ok)
	assert.True(t, sel.TestOnly)
	assert.Equal(t, "b", sel.Field)
}

func TestParserHasMacroRejectsNonSelectArgument(t *testing.T) {
	_, errs := Parse(common.NewTextSource("<test>", "has(a)"))
	assert.False(t, errs.Empty())
}

func TestParserAllMacroExpandsToComprehension(t *testing.T) {
	e := parseOK(t, "items.all(x, x > 0)")
	comp, ok := e.(*ast.ComprehensionExpression)
	require.True(t, ok)
	assert.Equal(t, "x", comp.Variable)
	assert.Equal(t, accumulatorName, comp.Accumulator)
}

func TestParserExistsOneMacro(t *testing.T) {
	e := parseOK(t, "items.exists_one(x, x == 1)")
	comp, ok := e.(*ast.ComprehensionExpression)
	require.True(t, ok)
	assert.Equal(t, "x", comp.Variable)
}

func TestParserMapMacroTwoAndThreeArg(t *testing.T) {
	e := parseOK(t, "items.map(x, x + 1)")
	_, ok := e.(*ast.ComprehensionExpression)
	require.True(t, ok)

	e = parseOK(t, "items.map(x, x > 0, x + 1)")
	_, ok = e.(*ast.ComprehensionExpression)
	require.True(t, ok)
}

func TestParserFilterMacro(t *testing.T) {
	e := parseOK(t, "items.filter(x, x > 0)")
	_, ok := e.(*ast.ComprehensionExpression)
	require.True(t, ok)
}

func TestParserMacroVariableMustBeSimpleIdent(t *testing.T) {
	_, errs := Parse(common.NewTextSource("<test>", "items.all(x.y, true)"))
	assert.False(t, errs.Empty())
}

func TestParserNumericLiterals(t *testing.T) {
	for _, tc := range []struct {
		src  string
		kind string
	}{
		{"42", "*ast.Int64Constant"},
		{"42u", "*ast.Uint64Constant"},
		{"0x2A", "*ast.Int64Constant"},
		{"0x2Au", "*ast.Uint64Constant"},
		{"4.2", "*ast.DoubleConstant"},
		{"4.2e1", "*ast.DoubleConstant"},
	} {
		e := parseOK(t, tc.src)
		assert.Equal(t, tc.kind, typeName(e), tc.src)
	}
}

func typeName(e ast.Expression) string {
	switch e.(type) {
	case *ast.Int64Constant:
		return "*ast.Int64Constant"
	case *ast.Uint64Constant:
		return "*ast.Uint64Constant"
	case *ast.DoubleConstant:
		return "*ast.DoubleConstant"
	default:
		return "unknown"
	}
}

func TestParserStringAndBytesLiterals(t *testing.T) {
	e := parseOK(t, `"hello\nworld"`)
	s, ok := e.(*ast.StringConstant)
	require.True(t, ok)
	assert.Equal(t, "hello\nworld", s.Value)

	e = parseOK(t, `b"abc"`)
	b, ok := e.(*ast.BytesConstant)
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), b.Value)
}

func TestParserBoolAndNullLiterals(t *testing.T) {
	e := parseOK(t, "true")
	bc, ok := e.(*ast.BoolConstant)
	require.True(t, ok)
	assert.True(t, bc.Value)

	e = parseOK(t, "null")
	_, ok = e.(*ast.NullConstant)
	assert.True(t, ok)
}

func TestParserParenthesesOverridePrecedence(t *testing.T) {
	got := debugOf(t, "(1 + 2) * 3")
	want := "_*_(\n  _+_(\n    1,\n    2\n  ),\n  3\n)"
	assert.Equal(t, want, got)
}

func TestParserReportsUnexpectedTrailingInput(t *testing.T) {
	_, errs := Parse(common.NewTextSource("<test>", "1 + 2)"))
	assert.False(t, errs.Empty())
}

func TestParserReportsUnclosedParen(t *testing.T) {
	_, errs := Parse(common.NewTextSource("<test>", "(1 + 2"))
	assert.False(t, errs.Empty())
}

func TestParserMaxRecursionDepth(t *testing.T) {
	src := ""
	for i := 0; i < 50; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 50; i++ {
		src += ")"
	}
	_, errs := Parse(common.NewTextSource("<test>", src), MaxRecursionDepth(10))
	assert.False(t, errs.Empty())
}

func TestParserInOperator(t *testing.T) {
	e := parseOK(t, "a in b")
	call, ok := e.(*ast.CallExpression)
	require.True(t, ok)
	assert.Equal(t, "_in_", call.Function)
}

func TestParserIdentifier(t *testing.T) {
	e := parseOK(t, "x")
	id, ok := e.(*ast.IdentExpression)
	require.True(t, ok)
	assert.Equal(t, "x", id.Name)
}
