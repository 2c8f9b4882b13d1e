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

package types

import "fmt"

// ErrKind distinguishes the two runtime error kinds of §7: a TypeError
// (operator/built-in applied to an unsupported type combination) and an
// EvaluationError (everything else: divide by zero, unresolved
// identifier, bad arity, ...). Parse errors never become an Err value;
// they are reported via common.Errors and never reach the evaluator.
type ErrKind uint8

const (
	EvaluationErr ErrKind = iota
	TypeErr
)

// Err is both a Go error and a CEL Value: the evaluator treats it as a
// value of last resort (§7) that propagates through the tree unless a
// short-circuit operator prunes the branch it lives on (§5, §7).
type Err struct {
	kind ErrKind
	msg  string
}

var _ Value = (*Err)(nil)
var _ error = (*Err)(nil)

// NewEvaluationErr builds an EvaluationError (§7): divide/modulo by zero,
// index out of range, overflow, unresolved identifier/field, unknown
// function, malformed timestamp/duration, bad macro variable, arity
// mismatch.
func NewEvaluationErr(format string, args ...interface{}) *Err {
	return &Err{kind: EvaluationErr, msg: fmt.Sprintf(format, args...)}
}

// NewTypeErr builds a TypeError (§7): an operator or built-in applied to
// an unsupported combination of operand types.
func NewTypeErr(format string, args ...interface{}) *Err {
	return &Err{kind: TypeErr, msg: fmt.Sprintf(format, args...)}
}

func (e *Err) Kind() Kind        { return KindErr }
func (e *Err) ErrKind() ErrKind  { return e.kind }
func (e *Err) CELString() string { return e.msg }
func (e *Err) Error() string     { return e.msg }
func (e *Err) IsTypeError() bool { return e.kind == TypeErr }

// IsError reports whether v is a Value of kind KindErr.
func IsError(v Value) bool {
	if v == nil {
		return false
	}
	_, ok := v.(*Err)
	return ok
}

// AsErr returns v as *Err if it is one.
func AsErr(v Value) (*Err, bool) {
	e, ok := v.(*Err)
	return e, ok
}

// MaybeErr returns the first erroring operand among vs, or nil.
func MaybeErr(vs ...Value) *Err {
	for _, v := range vs {
		if e, ok := AsErr(v); ok {
			return e
		}
	}
	return nil
}
