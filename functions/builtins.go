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
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lexrt/gocel/common/types"
)

func parseInt64(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func parseUint64(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	return n, err == nil
}

func parseFloat64(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// standard builds the fixed built-in table (§4.5, plus SPEC_FULL.md
// §D's supplemented conversions and string methods).
func standard() map[string]Func {
	return map[string]Func{
		"size":       builtinSize,
		"type":       builtinType,
		"abs":        builtinAbs,
		"min":        builtinMinMax(true),
		"max":        builtinMinMax(false),
		"floor":      builtinFloor,
		"ceil":       builtinCeil,
		"timestamp":  builtinTimestamp,
		"duration":   builtinDuration,
		"bytes":      builtinBytes,
		"string":     builtinStringConv,
		"int":        builtinInt,
		"uint":       builtinUint,
		"double":     builtinDouble,
		"contains":   stringMethod2(strings.Contains),
		"startsWith": stringMethod2(strings.HasPrefix),
		"endsWith":   stringMethod2(strings.HasSuffix),
		"trim":       builtinTrim,
		"split":      builtinSplit,
		"matches":    builtinMatches,
		"replace":    builtinReplace,
		"lowerAscii": builtinLowerAscii,
		"upperAscii": builtinUpperAscii,
	}
}

func builtinSize(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("size", 1, len(args))
	}
	switch v := args[0].(type) {
	case types.String:
		return types.Int(len([]rune(string(v))))
	case types.Bytes:
		return types.Int(len(v))
	case *types.List:
		return types.Int(v.Len())
	case *types.Map:
		return types.Int(v.Len())
	}
	return types.NewTypeErr("size() not supported on type '%s'", args[0].Kind().TypeName())
}

func builtinType(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("type", 1, len(args))
	}
	return types.NewTypeValue(args[0].Kind())
}

func builtinAbs(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("abs", 1, len(args))
	}
	switch v := args[0].(type) {
	case types.Int:
		if v < 0 {
			n, ok := types.NegateInt64Checked(int64(v))
			if !ok {
				return types.NewEvaluationErr("integer overflow in abs(%d)", v)
			}
			return types.Int(n)
		}
		return v
	case types.Uint:
		return v
	case types.Double:
		return types.Double(math.Abs(float64(v)))
	}
	return types.NewTypeErr("abs() not supported on type '%s'", args[0].Kind().TypeName())
}

func builtinMinMax(isMin bool) Func {
	return func(target types.Value, args []types.Value) types.Value {
		name := "max"
		if isMin {
			name = "min"
		}
		if len(args) != 2 {
			return arityErr(name, 2, len(args))
		}
		a, aok := numericFloat(args[0])
		b, bok := numericFloat(args[1])
		if !aok || !bok {
			return types.NewTypeErr("%s() not supported on (%s, %s)", name, args[0].Kind().TypeName(), args[1].Kind().TypeName())
		}
		pick := args[0]
		if (isMin && b < a) || (!isMin && b > a) {
			pick = args[1]
		}
		return pick
	}
}

func numericFloat(v types.Value) (float64, bool) {
	switch x := v.(type) {
	case types.Int:
		return float64(x), true
	case types.Uint:
		return float64(x), true
	case types.Double:
		return float64(x), true
	}
	return 0, false
}

func builtinFloor(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("floor", 1, len(args))
	}
	d, ok := args[0].(types.Double)
	if !ok {
		return types.NewTypeErr("floor() not supported on type '%s'", args[0].Kind().TypeName())
	}
	return types.Double(math.Floor(float64(d)))
}

func builtinCeil(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("ceil", 1, len(args))
	}
	d, ok := args[0].(types.Double)
	if !ok {
		return types.NewTypeErr("ceil() not supported on type '%s'", args[0].Kind().TypeName())
	}
	return types.Double(math.Ceil(float64(d)))
}

// builtinTimestamp parses RFC 3339 (§4.5), assuming UTC when the input
// carries no offset.
func builtinTimestamp(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("timestamp", 1, len(args))
	}
	s, ok := args[0].(types.String)
	if !ok {
		return types.NewTypeErr("timestamp() requires a string argument, got '%s'", args[0].Kind().TypeName())
	}
	if t, err := time.Parse(time.RFC3339Nano, string(s)); err == nil {
		return types.NewTimestamp(t)
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", string(s), time.UTC); err == nil {
		return types.NewTimestamp(t)
	}
	return types.NewEvaluationErr("invalid timestamp %q", string(s))
}

// builtinDuration parses a sequence of <number><unit> segments with
// units ns/us/ms/s/m/h (§4.5) via time.ParseDuration, which accepts
// exactly this grammar (including a leading '-' and combined segments
// like "1h30m"); no third-party duration parser in the retrieval pack
// improves on the standard library here (see DESIGN.md).
func builtinDuration(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("duration", 1, len(args))
	}
	s, ok := args[0].(types.String)
	if !ok {
		return types.NewTypeErr("duration() requires a string argument, got '%s'", args[0].Kind().TypeName())
	}
	d, err := time.ParseDuration(string(s))
	if err != nil {
		return types.NewEvaluationErr("invalid duration %q", string(s))
	}
	return types.NewDuration(d)
}

func builtinBytes(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("bytes", 1, len(args))
	}
	switch v := args[0].(type) {
	case types.String:
		return types.Bytes([]byte(string(v)))
	case types.Bytes:
		return v
	case *types.List:
		out := make([]byte, 0, v.Len())
		for _, e := range v.Elements() {
			i, ok := e.(types.Int)
			if !ok || i < 0 || i > 255 {
				return types.NewEvaluationErr("bytes() list elements must be int in [0, 255]")
			}
			out = append(out, byte(i))
		}
		return types.Bytes(out)
	}
	return types.NewTypeErr("bytes() not supported on type '%s'", args[0].Kind().TypeName())
}

// builtinStringConv is the string(x) conversion (§4.5): the identity on
// String, UTF-8 decode on Bytes, CELString's canonical render otherwise.
func builtinStringConv(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("string", 1, len(args))
	}
	switch v := args[0].(type) {
	case types.String:
		return v
	case types.Bytes:
		return types.String(string(v))
	default:
		return types.String(v.CELString())
	}
}

func builtinInt(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("int", 1, len(args))
	}
	switch v := args[0].(type) {
	case types.Int:
		return v
	case types.Uint:
		if v > math.MaxInt64 {
			return types.NewEvaluationErr("uint overflow converting %d to int", v)
		}
		return types.Int(v)
	case types.Double:
		if v < math.MinInt64 || v > math.MaxInt64 {
			return types.NewEvaluationErr("double overflow converting %v to int", v)
		}
		return types.Int(v)
	case types.String:
		n, ok := parseInt64(string(v))
		if !ok {
			return types.NewEvaluationErr("invalid int literal %q", string(v))
		}
		return types.Int(n)
	}
	return types.NewTypeErr("int() not supported on type '%s'", args[0].Kind().TypeName())
}

func builtinUint(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("uint", 1, len(args))
	}
	switch v := args[0].(type) {
	case types.Uint:
		return v
	case types.Int:
		if v < 0 {
			return types.NewEvaluationErr("negative int %d cannot convert to uint", v)
		}
		return types.Uint(v)
	case types.Double:
		if v < 0 || v > math.MaxUint64 {
			return types.NewEvaluationErr("double overflow converting %v to uint", v)
		}
		return types.Uint(v)
	case types.String:
		n, ok := parseUint64(string(v))
		if !ok {
			return types.NewEvaluationErr("invalid uint literal %q", string(v))
		}
		return types.Uint(n)
	}
	return types.NewTypeErr("uint() not supported on type '%s'", args[0].Kind().TypeName())
}

func builtinDouble(target types.Value, args []types.Value) types.Value {
	if len(args) != 1 {
		return arityErr("double", 1, len(args))
	}
	switch v := args[0].(type) {
	case types.Double:
		return v
	case types.Int:
		return types.Double(v)
	case types.Uint:
		return types.Double(v)
	case types.String:
		f, ok := parseFloat64(string(v))
		if !ok {
			return types.NewEvaluationErr("invalid double literal %q", string(v))
		}
		return types.Double(f)
	}
	return types.NewTypeErr("double() not supported on type '%s'", args[0].Kind().TypeName())
}

// stringMethod2 adapts a strings.XxxFunc(s, sub string) bool into a
// receiver-style Func, shared by contains/startsWith/endsWith.
func stringMethod2(fn func(s, sub string) bool) Func {
	return func(target types.Value, args []types.Value) types.Value {
		s, ok := target.(types.String)
		if !ok {
			return types.NewTypeErr("method not supported on type '%s'", target.Kind().TypeName())
		}
		if len(args) != 1 {
			return arityErr("string method", 1, len(args))
		}
		sub, ok := args[0].(types.String)
		if !ok {
			return types.NewTypeErr("expected string argument, got '%s'", args[0].Kind().TypeName())
		}
		return types.Bool(fn(string(s), string(sub)))
	}
}

func builtinTrim(target types.Value, args []types.Value) types.Value {
	s, ok := target.(types.String)
	if !ok {
		return types.NewTypeErr("trim() not supported on type '%s'", target.Kind().TypeName())
	}
	if len(args) != 0 {
		return arityErr("trim", 0, len(args))
	}
	return types.String(strings.TrimSpace(string(s)))
}

func builtinSplit(target types.Value, args []types.Value) types.Value {
	s, ok := target.(types.String)
	if !ok {
		return types.NewTypeErr("split() not supported on type '%s'", target.Kind().TypeName())
	}
	if len(args) != 1 {
		return arityErr("split", 1, len(args))
	}
	sep, ok := args[0].(types.String)
	if !ok {
		return types.NewTypeErr("split() requires a string separator, got '%s'", args[0].Kind().TypeName())
	}
	parts := strings.Split(string(s), string(sep))
	elems := make([]types.Value, len(parts))
	for i, p := range parts {
		elems[i] = types.String(p)
	}
	return types.NewList(elems)
}

func builtinMatches(target types.Value, args []types.Value) types.Value {
	s, ok := target.(types.String)
	if !ok {
		return types.NewTypeErr("matches() not supported on type '%s'", target.Kind().TypeName())
	}
	if len(args) != 1 {
		return arityErr("matches", 1, len(args))
	}
	pat, ok := args[0].(types.String)
	if !ok {
		return types.NewTypeErr("matches() requires a string pattern, got '%s'", args[0].Kind().TypeName())
	}
	matched, err := regexp.MatchString(string(pat), string(s))
	if err != nil {
		return types.NewEvaluationErr("invalid regular expression %q: %s", string(pat), err)
	}
	return types.Bool(matched)
}

func builtinReplace(target types.Value, args []types.Value) types.Value {
	s, ok := target.(types.String)
	if !ok {
		return types.NewTypeErr("replace() not supported on type '%s'", target.Kind().TypeName())
	}
	if len(args) != 2 {
		return arityErr("replace", 2, len(args))
	}
	old, ok1 := args[0].(types.String)
	repl, ok2 := args[1].(types.String)
	if !ok1 || !ok2 {
		return types.NewTypeErr("replace() requires string arguments")
	}
	return types.String(strings.ReplaceAll(string(s), string(old), string(repl)))
}

func builtinLowerAscii(target types.Value, args []types.Value) types.Value {
	s, ok := target.(types.String)
	if !ok {
		return types.NewTypeErr("lowerAscii() not supported on type '%s'", target.Kind().TypeName())
	}
	if len(args) != 0 {
		return arityErr("lowerAscii", 0, len(args))
	}
	return types.String(asciiMap(string(s), func(c byte) byte {
		if c >= 'A' && c <= 'Z' {
			return c + ('a' - 'A')
		}
		return c
	}))
}

func builtinUpperAscii(target types.Value, args []types.Value) types.Value {
	s, ok := target.(types.String)
	if !ok {
		return types.NewTypeErr("upperAscii() not supported on type '%s'", target.Kind().TypeName())
	}
	if len(args) != 0 {
		return arityErr("upperAscii", 0, len(args))
	}
	return types.String(asciiMap(string(s), func(c byte) byte {
		if c >= 'a' && c <= 'z' {
			return c - ('a' - 'A')
		}
		return c
	}))
}

// asciiMap rewrites only the ASCII bytes of s, leaving multi-byte UTF-8
// sequences untouched; lowerAscii/upperAscii deliberately do not apply
// full Unicode case folding (that is a distinct, unrequested built-in).
func asciiMap(s string, f func(byte) byte) string {
	b := []byte(s)
	for i, c := range b {
		if c < 0x80 {
			b[i] = f(c)
		}
	}
	return string(b)
}
