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

package functions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexrt/gocel/common/types"
)

func call(t *testing.T, name string, target types.Value, args ...types.Value) types.Value {
	t.Helper()
	r := NewRegistry(nil)
	f, ok := r.Lookup(name)
	require.True(t, ok, "no such builtin %q", name)
	return f(target, args)
}

func TestSizeCountsCodePointsNotBytes(t *testing.T) {
	// "é" as a single precomposed code point is one rune but two UTF-8
	// bytes; size() must report 1.
	got := call(t, "size", nil, types.String("é"))
	assert.Equal(t, types.Int(1), got)
}

func TestSizeOnBytesCountsBytes(t *testing.T) {
	got := call(t, "size", nil, types.Bytes([]byte("é")))
	assert.Equal(t, types.Int(2), got)
}

func TestSizeOnListAndMap(t *testing.T) {
	l := types.NewList([]types.Value{types.Int(1), types.Int(2)})
	assert.Equal(t, types.Int(2), call(t, "size", nil, l))

	m := types.NewMap([]types.MapEntry{{Key: types.String("a"), Val: types.Int(1)}})
	assert.Equal(t, types.Int(1), call(t, "size", nil, m))
}

func TestTypeReturnsTypeValue(t *testing.T) {
	got := call(t, "type", nil, types.Int(1))
	tv, ok := got.(*types.TypeValue)
	require.True(t, ok)
	assert.Equal(t, "int", tv.CELString())
}

func TestAbsOnIntUintDouble(t *testing.T) {
	assert.Equal(t, types.Int(5), call(t, "abs", nil, types.Int(-5)))
	assert.Equal(t, types.Uint(5), call(t, "abs", nil, types.Uint(5)))
	assert.Equal(t, types.Double(5.5), call(t, "abs", nil, types.Double(-5.5)))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, types.Int(1), call(t, "min", nil, types.Int(1), types.Int(2)))
	assert.Equal(t, types.Int(2), call(t, "max", nil, types.Int(1), types.Int(2)))
}

func TestFloorCeil(t *testing.T) {
	assert.Equal(t, types.Double(1), call(t, "floor", nil, types.Double(1.9)))
	assert.Equal(t, types.Double(2), call(t, "ceil", nil, types.Double(1.1)))
}

func TestTimestampParsesRFC3339(t *testing.T) {
	got := call(t, "timestamp", nil, types.String("2023-01-02T03:04:05Z"))
	ts, ok := got.(types.Timestamp)
	require.True(t, ok)
	assert.Equal(t, 2023, ts.Time().Year())
}

func TestTimestampAssumesUTCWithoutOffset(t *testing.T) {
	got := call(t, "timestamp", nil, types.String("2023-01-02T03:04:05"))
	ts, ok := got.(types.Timestamp)
	require.True(t, ok)
	assert.Equal(t, time.UTC, ts.Time().Location())
}

func TestDurationParsesCombinedUnits(t *testing.T) {
	got := call(t, "duration", nil, types.String("1h30m"))
	d, ok := got.(types.Duration)
	require.True(t, ok)
	assert.Equal(t, 90*time.Minute, d.AsDuration())
}

func TestDurationRejectsGarbage(t *testing.T) {
	got := call(t, "duration", nil, types.String("not a duration"))
	assert.True(t, types.IsError(got))
}

func TestBytesConversion(t *testing.T) {
	got := call(t, "bytes", nil, types.String("abc"))
	assert.Equal(t, types.Bytes([]byte("abc")), got)
}

func TestStringConversionIdentityAndCanonical(t *testing.T) {
	assert.Equal(t, types.String("abc"), call(t, "string", nil, types.String("abc")))
	assert.Equal(t, types.String("42"), call(t, "string", nil, types.Int(42)))
	assert.Equal(t, types.String("true"), call(t, "string", nil, types.Bool(true)))
}

func TestIntUintDoubleConversions(t *testing.T) {
	assert.Equal(t, types.Int(42), call(t, "int", nil, types.String("42")))
	assert.Equal(t, types.Uint(42), call(t, "uint", nil, types.Int(42)))
	assert.Equal(t, types.Double(42), call(t, "double", nil, types.Int(42)))
}

func TestIntRejectsNegativeToUint(t *testing.T) {
	got := call(t, "uint", nil, types.Int(-1))
	assert.True(t, types.IsError(got))
}

func TestStringMethodsContainsStartsEndsWith(t *testing.T) {
	s := types.String("hello world")
	assert.Equal(t, types.Bool(true), call(t, "contains", s, types.String("wor")))
	assert.Equal(t, types.Bool(true), call(t, "startsWith", s, types.String("hello")))
	assert.Equal(t, types.Bool(true), call(t, "endsWith", s, types.String("world")))
	assert.Equal(t, types.Bool(false), call(t, "startsWith", s, types.String("world")))
}

func TestTrimAndSplit(t *testing.T) {
	got := call(t, "trim", types.String("  hi  "))
	assert.Equal(t, types.String("hi"), got)

	got = call(t, "split", types.String("a,b,c"), types.String(","))
	list, ok := got.(*types.List)
	require.True(t, ok)
	assert.Equal(t, 3, list.Len())
}

func TestMatchesAndReplace(t *testing.T) {
	assert.Equal(t, types.Bool(true), call(t, "matches", types.String("abc123"), types.String(`^[a-z]+\d+$`)))
	assert.Equal(t, types.String("abXdef"), call(t, "replace", types.String("abcdef"), types.String("c"), types.String("X")))
}

func TestLowerUpperAsciiLeavesNonAsciiAlone(t *testing.T) {
	got := call(t, "lowerAscii", types.String("HeLLo Ñ"))
	assert.Equal(t, types.String("hello Ñ"), got)

	got = call(t, "upperAscii", types.String("HeLLo"))
	assert.Equal(t, types.String("HELLO"), got)
}

func TestUserFunctionOverridesBuiltin(t *testing.T) {
	custom := Func(func(target types.Value, args []types.Value) types.Value {
		return types.Int(-1)
	})
	r := NewRegistry(map[string]Func{"size": custom})
	f, ok := r.Lookup("size")
	require.True(t, ok)
	assert.Equal(t, types.Int(-1), f(nil, []types.Value{types.String("x")}))
}

func TestArityErrors(t *testing.T) {
	got := call(t, "size", nil)
	assert.True(t, types.IsError(got))
}
