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

// kernel.go is the operator kernel (C4 of the spec): arithmetic,
// comparison, membership, unary and conversions, all implemented as
// exhaustive type switches on (kind_lhs, kind_rhs) rather than as
// methods dispatched per-value-type. The spec's design notes (§9)
// call this out explicitly: a tagged-sum Value plus a centralized
// switch catches a missing case in review, where N independent
// per-type trait implementations (the teacher's own historical
// approach, still visible in cel-go's common/types/*.go) would not.
package operators

import (
	"math"
	"time"

	"github.com/lexrt/gocel/common/types"
)

func typeErr(op string, a, b types.Value) *types.Err {
	return types.NewTypeErr("no matching overload for '%s' applied to (%s, %s)", op, a.Kind().TypeName(), b.Kind().TypeName())
}

// Add implements the '+' overloads of §4.4's table.
func Add(a, b types.Value) types.Value {
	switch x := a.(type) {
	case types.Int:
		if y, ok := b.(types.Int); ok {
			if v, ok := types.AddInt64Checked(int64(x), int64(y)); ok {
				return types.Int(v)
			}
			return types.NewEvaluationErr("integer overflow in %d + %d", x, y)
		}
	case types.Uint:
		if y, ok := b.(types.Uint); ok {
			if v, ok := types.AddUint64Checked(uint64(x), uint64(y)); ok {
				return types.Uint(v)
			}
			return types.NewEvaluationErr("unsigned integer overflow in %d + %d", x, y)
		}
	case types.Double:
		if y, ok := b.(types.Double); ok {
			return x + y
		}
	case types.String:
		if y, ok := b.(types.String); ok {
			return x + y
		}
	case types.Bytes:
		if y, ok := b.(types.Bytes); ok {
			out := make(types.Bytes, 0, len(x)+len(y))
			out = append(out, x...)
			out = append(out, y...)
			return out
		}
	case *types.List:
		if y, ok := b.(*types.List); ok {
			return x.Concat(y)
		}
	case types.Timestamp:
		if y, ok := b.(types.Duration); ok {
			t, ok := types.AddTimeDurationChecked(x.Time(), y.AsDuration())
			if !ok {
				return types.NewEvaluationErr("timestamp overflow")
			}
			return types.NewTimestamp(t)
		}
	case types.Duration:
		switch y := b.(type) {
		case types.Duration:
			d, ok := types.AddDurationChecked(x.AsDuration(), y.AsDuration())
			if !ok {
				return types.NewEvaluationErr("duration overflow")
			}
			return types.NewDuration(d)
		case types.Timestamp:
			t, ok := types.AddTimeDurationChecked(y.Time(), x.AsDuration())
			if !ok {
				return types.NewEvaluationErr("timestamp overflow")
			}
			return types.NewTimestamp(t)
		}
	}
	return typeErr("+", a, b)
}

// Subtract implements the '-' overloads of §4.4's table.
func Subtract(a, b types.Value) types.Value {
	switch x := a.(type) {
	case types.Int:
		if y, ok := b.(types.Int); ok {
			if v, ok := types.SubtractInt64Checked(int64(x), int64(y)); ok {
				return types.Int(v)
			}
			return types.NewEvaluationErr("integer overflow in %d - %d", x, y)
		}
	case types.Uint:
		if y, ok := b.(types.Uint); ok {
			if v, ok := types.SubtractUint64Checked(uint64(x), uint64(y)); ok {
				return types.Uint(v)
			}
			return types.NewEvaluationErr("unsigned integer overflow in %d - %d", x, y)
		}
	case types.Double:
		if y, ok := b.(types.Double); ok {
			return x - y
		}
	case types.Timestamp:
		switch y := b.(type) {
		case types.Duration:
			t, ok := types.SubtractTimeDurationChecked(x.Time(), y.AsDuration())
			if !ok {
				return types.NewEvaluationErr("timestamp overflow")
			}
			return types.NewTimestamp(t)
		case types.Timestamp:
			d, ok := types.SubtractTimeChecked(x.Time(), y.Time())
			if !ok {
				return types.NewEvaluationErr("duration overflow")
			}
			return types.NewDuration(d)
		}
	case types.Duration:
		if y, ok := b.(types.Duration); ok {
			d, ok := types.SubtractDurationChecked(x.AsDuration(), y.AsDuration())
			if !ok {
				return types.NewEvaluationErr("duration overflow")
			}
			return types.NewDuration(d)
		}
	}
	return typeErr("-", a, b)
}

// Multiply implements the '*' overloads of §4.4's table.
func Multiply(a, b types.Value) types.Value {
	switch x := a.(type) {
	case types.Int:
		if y, ok := b.(types.Int); ok {
			if v, ok := types.MultiplyInt64Checked(int64(x), int64(y)); ok {
				return types.Int(v)
			}
			return types.NewEvaluationErr("integer overflow in %d * %d", x, y)
		}
	case types.Uint:
		if y, ok := b.(types.Uint); ok {
			if v, ok := types.MultiplyUint64Checked(uint64(x), uint64(y)); ok {
				return types.Uint(v)
			}
			return types.NewEvaluationErr("unsigned integer overflow in %d * %d", x, y)
		}
	case types.Double:
		if y, ok := b.(types.Double); ok {
			return x * y
		}
	case types.Duration:
		var n int64
		switch y := b.(type) {
		case types.Int:
			n = int64(y)
		case types.Uint:
			if uint64(y) > math.MaxInt64 {
				return types.NewEvaluationErr("duration overflow")
			}
			n = int64(y)
		default:
			return typeErr("*", a, b)
		}
		v, ok := types.MultiplyInt64Checked(int64(x.AsDuration()), n)
		if !ok {
			return types.NewEvaluationErr("duration overflow")
		}
		return types.NewDuration(time.Duration(v))
	}
	return typeErr("*", a, b)
}

// Divide implements the '/' overloads of §4.4's table: int division
// truncates toward zero (Go's native int64 '/' already does this);
// double division by zero follows IEEE-754 (±Inf/NaN), never an error.
func Divide(a, b types.Value) types.Value {
	switch x := a.(type) {
	case types.Int:
		if y, ok := b.(types.Int); ok {
			if y == 0 {
				return types.NewEvaluationErr("division by zero")
			}
			v, ok := types.DivideInt64Checked(int64(x), int64(y))
			if !ok {
				return types.NewEvaluationErr("integer overflow in %d / %d", x, y)
			}
			return types.Int(v)
		}
	case types.Uint:
		if y, ok := b.(types.Uint); ok {
			if y == 0 {
				return types.NewEvaluationErr("division by zero")
			}
			return x / y
		}
	case types.Double:
		if y, ok := b.(types.Double); ok {
			return x / y
		}
	case types.Duration:
		switch y := b.(type) {
		case types.Int:
			if y == 0 {
				return types.NewEvaluationErr("division by zero")
			}
			return types.NewDuration(x.AsDuration() / time.Duration(y))
		}
	}
	return typeErr("/", a, b)
}

// Modulo implements the '%' overloads of §4.4's table: result takes the
// sign of the dividend, as Go's native '%' already does for int64.
func Modulo(a, b types.Value) types.Value {
	switch x := a.(type) {
	case types.Int:
		if y, ok := b.(types.Int); ok {
			if y == 0 {
				return types.NewEvaluationErr("modulus by zero")
			}
			v, ok := types.ModuloInt64Checked(int64(x), int64(y))
			if !ok {
				return types.NewEvaluationErr("integer overflow in %d %% %d", x, y)
			}
			return types.Int(v)
		}
	case types.Uint:
		if y, ok := b.(types.Uint); ok {
			if y == 0 {
				return types.NewEvaluationErr("modulus by zero")
			}
			return x % y
		}
	}
	return typeErr("%", a, b)
}

// Negate implements unary '-' (§4.4): int, double, duration.
func Negate(a types.Value) types.Value {
	switch x := a.(type) {
	case types.Int:
		v, ok := types.NegateInt64Checked(int64(x))
		if !ok {
			return types.NewEvaluationErr("integer overflow negating %d", x)
		}
		return types.Int(v)
	case types.Double:
		return -x
	case types.Duration:
		d, ok := types.NegateDurationChecked(x.AsDuration())
		if !ok {
			return types.NewEvaluationErr("duration overflow negating %s", x.CELString())
		}
		return types.NewDuration(d)
	}
	return types.NewTypeErr("no matching overload for unary '-' applied to (%s)", a.Kind().TypeName())
}

// Not implements unary '!' (§4.4). The spec's test-derived exception
// `!null == true` is intentional: CEL treats null as falsy under `!`.
func Not(a types.Value) types.Value {
	switch x := a.(type) {
	case types.Bool:
		return !x
	case types.Null:
		return types.True
	}
	return types.NewTypeErr("no matching overload for unary '!' applied to (%s)", a.Kind().TypeName())
}
