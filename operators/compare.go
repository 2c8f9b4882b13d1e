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

package operators

import (
	"bytes"
	"math/big"
	"strings"

	"github.com/lexrt/gocel/common/types"
)

// isNumeric reports whether v is one of CEL's three numeric kinds
// (§4.3): int, uint, double.
func isNumeric(v types.Value) bool {
	switch v.(type) {
	case types.Int, types.Uint, types.Double:
		return true
	}
	return false
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareIntUint compares an int64 to a uint64 exactly: a negative int
// is always less than any uint64 (which can never be negative), so the
// only case that needs a native comparison is when both are
// non-negative and fit in uint64's range.
func compareIntUint(a int64, b uint64) int {
	if a < 0 {
		return -1
	}
	return compareUint64(uint64(a), b)
}

// compareIntDouble and compareUintDouble compare a 64-bit integer to a
// float64 exactly via math/big instead of converting the integer to
// float64 first: float64 can only represent integers exactly up to
// 2^53, so a naive float64(x) conversion silently rounds larger int64/
// uint64 operands and can make two distinct integers compare equal
// (§3.3/§4.3 require exact mathematical ordering/equality). Callers
// must exclude NaN before reaching here: big.Float.SetFloat64 panics
// on NaN.
func compareIntDouble(a int64, b float64) int {
	x := new(big.Float).SetPrec(128).SetInt64(a)
	y := new(big.Float).SetPrec(128).SetFloat64(b)
	return x.Cmp(y)
}

func compareUintDouble(a uint64, b float64) int {
	x := new(big.Float).SetPrec(128).SetUint64(a)
	y := new(big.Float).SetPrec(128).SetFloat64(b)
	return x.Cmp(y)
}

// compareNumeric orders two CEL numeric values exactly (§4.3): same-
// type pairs compare natively, int-vs-uint compares by sign and then
// as uint64, and any pair touching a double goes through math/big so
// no precision is lost above 2^53. The caller is responsible for
// handling NaN before calling this (see cmp and Equals).
func compareNumeric(a, b types.Value) (int, bool) {
	switch x := a.(type) {
	case types.Int:
		switch y := b.(type) {
		case types.Int:
			return compareInt64(int64(x), int64(y)), true
		case types.Uint:
			return compareIntUint(int64(x), uint64(y)), true
		case types.Double:
			return compareIntDouble(int64(x), float64(y)), true
		}
	case types.Uint:
		switch y := b.(type) {
		case types.Int:
			return -compareIntUint(int64(y), uint64(x)), true
		case types.Uint:
			return compareUint64(uint64(x), uint64(y)), true
		case types.Double:
			return compareUintDouble(uint64(x), float64(y)), true
		}
	case types.Double:
		switch y := b.(type) {
		case types.Int:
			return -compareIntDouble(int64(y), float64(x)), true
		case types.Uint:
			return -compareUintDouble(uint64(y), float64(x)), true
		case types.Double:
			return compareFloat64(float64(x), float64(y)), true
		}
	}
	return 0, false
}

// isNaN reports whether v is a double holding NaN; NaN compares
// unequal and unordered to everything, including itself (§3.3).
func isNaN(v types.Value) bool {
	d, ok := v.(types.Double)
	return ok && d.IsNaN()
}

// Equals implements CEL equality (§3.3, §4.3): exact mathematical
// equality among numerics regardless of mixed int/uint/double (never
// routed through float64 for same-type or int/uint pairs); same-type
// structural equality for string/bytes/bool/null/list/map/timestamp/
// duration; false (never an error) across unrelated types.
func Equals(a, b types.Value) types.Bool {
	if isNumeric(a) && isNumeric(b) {
		if isNaN(a) || isNaN(b) {
			return false
		}
		c, _ := compareNumeric(a, b)
		return types.Bool(c == 0)
	}
	switch x := a.(type) {
	case types.Bool:
		y, ok := b.(types.Bool)
		return ok && x == y
	case types.String:
		y, ok := b.(types.String)
		return ok && x == y
	case types.Bytes:
		y, ok := b.(types.Bytes)
		return ok && bytes.Equal(x, y)
	case types.Null:
		_, ok := b.(types.Null)
		return ok
	case *types.List:
		y, ok := b.(*types.List)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, e := range x.Elements() {
			other, _ := y.Get(i)
			if !Equals(e, other) {
				return false
			}
		}
		return true
	case *types.Map:
		y, ok := b.(*types.Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, e := range x.Entries() {
			v, found := y.Find(e.Key, func(p, q types.Value) bool { return bool(Equals(p, q)) })
			if !found || !Equals(e.Val, v) {
				return false
			}
		}
		return true
	case types.Timestamp:
		y, ok := b.(types.Timestamp)
		return ok && x.Time().Equal(y.Time())
	case types.Duration:
		y, ok := b.(types.Duration)
		return ok && x.AsDuration() == y.AsDuration()
	case *types.TypeValue:
		y, ok := b.(*types.TypeValue)
		return ok && x.Name == y.Name
	}
	return false
}

// NotEquals is '!=' (§4.4): simply the negation of Equals.
func NotEquals(a, b types.Value) types.Bool {
	return !Equals(a, b)
}

// nanResult is returned by cmp for any comparison involving a NaN
// double: per IEEE-754, NaN is unordered, so <,<=,>,>= must all report
// false rather than raise a TypeError (§3.3).
const nanResult = -2

// cmp is -1/0/1 for "less/equal/greater", nanResult if either operand is
// a NaN double, or an error for an incomparable pair (§4.3: ordering on
// incomparable types is a type error, never a silent false).
func cmp(op string, a, b types.Value) (int, *types.Err) {
	if isNumeric(a) && isNumeric(b) {
		if isNaN(a) || isNaN(b) {
			return nanResult, nil
		}
		c, _ := compareNumeric(a, b)
		return c, nil
	}
	switch x := a.(type) {
	case types.String:
		if y, ok := b.(types.String); ok {
			return strings.Compare(string(x), string(y)), nil
		}
	case types.Bytes:
		if y, ok := b.(types.Bytes); ok {
			return bytes.Compare(x, y), nil
		}
	case types.Timestamp:
		if y, ok := b.(types.Timestamp); ok {
			switch {
			case x.Time().Before(y.Time()):
				return -1, nil
			case x.Time().After(y.Time()):
				return 1, nil
			default:
				return 0, nil
			}
		}
	case types.Duration:
		if y, ok := b.(types.Duration); ok {
			switch {
			case x.AsDuration() < y.AsDuration():
				return -1, nil
			case x.AsDuration() > y.AsDuration():
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, typeErr(op, a, b)
}

func Less(a, b types.Value) types.Value {
	c, err := cmp("<", a, b)
	if err != nil {
		return err
	}
	if c == nanResult {
		return types.False
	}
	return types.Bool(c < 0)
}

func LessEquals(a, b types.Value) types.Value {
	c, err := cmp("<=", a, b)
	if err != nil {
		return err
	}
	if c == nanResult {
		return types.False
	}
	return types.Bool(c <= 0)
}

func Greater(a, b types.Value) types.Value {
	c, err := cmp(">", a, b)
	if err != nil {
		return err
	}
	if c == nanResult {
		return types.False
	}
	return types.Bool(c > 0)
}

func GreaterEquals(a, b types.Value) types.Value {
	c, err := cmp(">=", a, b)
	if err != nil {
		return err
	}
	if c == nanResult {
		return types.False
	}
	return types.Bool(c >= 0)
}

// In implements membership (§4.4): (x, list) or (x, map).
func In(x, container types.Value) types.Value {
	switch c := container.(type) {
	case *types.List:
		for _, e := range c.Elements() {
			if Equals(x, e) {
				return types.True
			}
		}
		return types.False
	case *types.Map:
		_, found := c.Find(x, func(p, q types.Value) bool { return bool(Equals(p, q)) })
		return types.Bool(found)
	case *types.Message:
		s, ok := x.(types.String)
		if !ok {
			return types.NewTypeErr("'in' on a message requires a string field name")
		}
		_, found := c.Field(string(s))
		return types.Bool(found)
	}
	return types.NewTypeErr("no matching overload for 'in' applied to (%s, %s)", x.Kind().TypeName(), container.Kind().TypeName())
}
