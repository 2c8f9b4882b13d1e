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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexrt/gocel/common"
	"github.com/lexrt/gocel/common/types"
	"github.com/lexrt/gocel/parser"
)

func evalSrc(t *testing.T, src string, bindings map[string]types.Value) types.Value {
	t.Helper()
	e, errs := parser.Parse(common.NewTextSource("<test>", src))
	require.True(t, errs.Empty(), "unexpected parse errors for %q: %v", src, errs.Messages())
	var act Activation
	if bindings != nil {
		act = NewActivation(bindings)
	}
	return Evaluate(e, act, nil)
}

func TestEvalArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, types.Int(7), evalSrc(t, "1 + 2 * 3", nil))
}

func TestEvalIntegerOverflowIsError(t *testing.T) {
	got := evalSrc(t, "9223372036854775807 + 1", nil)
	assert.True(t, types.IsError(got))
}

func TestEvalDivisionByZero(t *testing.T) {
	got := evalSrc(t, "1 / 0", nil)
	assert.True(t, types.IsError(got))
}

func TestEvalCrossTypeNumericEquality(t *testing.T) {
	assert.Equal(t, types.True, evalSrc(t, "1 == 1.0", nil))
	assert.Equal(t, types.True, evalSrc(t, "1u == 1", nil))
}

func TestEvalComparisonAgainstNaNIsFalse(t *testing.T) {
	got := evalSrc(t, "1.0 < x", map[string]types.Value{"x": types.Double(nanValue())})
	assert.Equal(t, types.False, got)
}

func nanValue() float64 {
	var f float64
	return f / f
}

func TestEvalShortCircuitAndSkipsErroringRight(t *testing.T) {
	// 1/0 is evaluated eagerly as part of &&'s right operand only when
	// the left is true; here the left is false so the division error
	// must never surface.
	got := evalSrc(t, "false && (1 / 0 == 1)", nil)
	assert.Equal(t, types.False, got)
}

func TestEvalShortCircuitOrSkipsErroringRight(t *testing.T) {
	got := evalSrc(t, "true || (1 / 0 == 1)", nil)
	assert.Equal(t, types.True, got)
}

func TestEvalConditionalOnlyEvaluatesChosenBranch(t *testing.T) {
	got := evalSrc(t, "true ? 1 : (1 / 0)", nil)
	assert.Equal(t, types.Int(1), got)
}

func TestEvalIdentifierResolution(t *testing.T) {
	got := evalSrc(t, "x + 1", map[string]types.Value{"x": types.Int(41)})
	assert.Equal(t, types.Int(42), got)
}

func TestEvalMissingIdentifierErrorMessage(t *testing.T) {
	got := evalSrc(t, "x", map[string]types.Value{})
	err, ok := got.(*types.Err)
	require.True(t, ok)
	assert.Contains(t, err.Error(), `Identifier "x" not found in context`)
}

func TestEvalNoContextPassed(t *testing.T) {
	got := evalSrc(t, "x", nil)
	err, ok := got.(*types.Err)
	require.True(t, ok)
	assert.Contains(t, err.Error(), "no context passed")
}

func TestEvalReservedIdentifierRejected(t *testing.T) {
	got := evalSrc(t, "var", map[string]types.Value{"var": types.Int(1)})
	assert.True(t, types.IsError(got))
}

func TestEvalSelectAndIndex(t *testing.T) {
	m := types.NewMap([]types.MapEntry{{Key: types.String("a"), Val: types.Int(1)}})
	got := evalSrc(t, `x.a`, map[string]types.Value{"x": m})
	assert.Equal(t, types.Int(1), got)

	got = evalSrc(t, `x["a"]`, map[string]types.Value{"x": m})
	assert.Equal(t, types.Int(1), got)
}

func TestEvalHasOnPresentAndMissingField(t *testing.T) {
	m := types.NewMap([]types.MapEntry{{Key: types.String("a"), Val: types.Int(1)}})
	assert.Equal(t, types.True, evalSrc(t, "has(x.a)", map[string]types.Value{"x": m}))
	assert.Equal(t, types.False, evalSrc(t, "has(x.b)", map[string]types.Value{"x": m}))
}

func TestEvalAllMacroVacuouslyTrueOnEmpty(t *testing.T) {
	got := evalSrc(t, "[].all(x, x > 0)", nil)
	assert.Equal(t, types.True, got)
}

func TestEvalAllAndExistsMacros(t *testing.T) {
	assert.Equal(t, types.True, evalSrc(t, "[1, 2, 3].all(x, x > 0)", nil))
	assert.Equal(t, types.False, evalSrc(t, "[1, -2, 3].all(x, x > 0)", nil))
	assert.Equal(t, types.True, evalSrc(t, "[1, 2, 3].exists(x, x == 2)", nil))
	assert.Equal(t, types.False, evalSrc(t, "[1, 2, 3].exists(x, x == 9)", nil))
}

func TestEvalExistsOneMacro(t *testing.T) {
	assert.Equal(t, types.True, evalSrc(t, "[1, 2, 3].exists_one(x, x == 2)", nil))
	assert.Equal(t, types.False, evalSrc(t, "[1, 2, 2].exists_one(x, x == 2)", nil))
}

func TestEvalMapMacro(t *testing.T) {
	got := evalSrc(t, "[1, 2, 3].map(x, x * 2)", nil)
	list, ok := got.(*types.List)
	require.True(t, ok)
	assert.Equal(t, []types.Value{types.Int(2), types.Int(4), types.Int(6)}, list.Elements())
}

func TestEvalMapMacroWithFilter(t *testing.T) {
	got := evalSrc(t, "[1, 2, 3, 4].map(x, x % 2 == 0, x * 10)", nil)
	list, ok := got.(*types.List)
	require.True(t, ok)
	assert.Equal(t, []types.Value{types.Int(20), types.Int(40)}, list.Elements())
}

func TestEvalFilterMacro(t *testing.T) {
	got := evalSrc(t, "[1, 2, 3, 4].filter(x, x % 2 == 0)", nil)
	list, ok := got.(*types.List)
	require.True(t, ok)
	assert.Equal(t, []types.Value{types.Int(2), types.Int(4)}, list.Elements())
}

// Seed scenario S6's filter()-over-map case: resolved to bind the loop
// variable to values and always produce a List (see DESIGN.md).
func TestEvalFilterMacroOverMapBindsToValues(t *testing.T) {
	m := types.NewMap([]types.MapEntry{
		{Key: types.String("a"), Val: types.Int(1)},
		{Key: types.String("b"), Val: types.Int(2)},
		{Key: types.String("c"), Val: types.Int(3)},
	})
	got := evalSrc(t, "m.filter(v, v > 1)", map[string]types.Value{"m": m})
	list, ok := got.(*types.List)
	require.True(t, ok)
	assert.Equal(t, []types.Value{types.Int(2), types.Int(3)}, list.Elements())
}

func TestEvalNestedMacroShadowsOuterVariable(t *testing.T) {
	got := evalSrc(t, "[1, 2].all(x, [10, 20].exists(x, x == 20))", nil)
	assert.Equal(t, types.True, got)
}

func TestEvalListConcatenationAndIndex(t *testing.T) {
	got := evalSrc(t, "([1, 2] + [3])[2]", nil)
	assert.Equal(t, types.Int(3), got)
}

func TestEvalListIndexOutOfRange(t *testing.T) {
	got := evalSrc(t, "[1, 2][5]", nil)
	assert.True(t, types.IsError(got))
}

func TestEvalUnaryFolding(t *testing.T) {
	assert.Equal(t, types.False, evalSrc(t, "!!false", nil))
	assert.Equal(t, types.Int(5), evalSrc(t, "--5", nil))
}

func TestEvalStringSizeBuiltin(t *testing.T) {
	assert.Equal(t, types.Int(1), evalSrc(t, `size("é")`, nil))
}

func TestEvalMaxEvalDepthGuard(t *testing.T) {
	// Nested list literals are real nested CST nodes (unlike redundant
	// parens, which the parser discards), so this actually drives
	// Interpreter.Eval's own recursion, not just the parser's.
	src := "1"
	for i := 0; i < 300; i++ {
		src = "[" + src + "]"
	}
	e, errs := parser.Parse(common.NewTextSource("<test>", src), parser.MaxRecursionDepth(1000))
	require.True(t, errs.Empty())
	got := Evaluate(e, nil, nil, MaxEvalDepth(50))
	assert.True(t, types.IsError(got))
}
