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

import "github.com/lexrt/gocel/common"

// ErrorKind distinguishes the three error kinds of §7: a ParseError (lex
// or syntax failure, accumulated across the whole parse, never just the
// first), a TypeError (operator/built-in applied to an unsupported type
// combination), and an EvaluationError (everything else: divide by
// zero, unresolved identifier, bad arity, malformed timestamp/duration).
type ErrorKind int

const (
	KindParse ErrorKind = iota
	KindType
	KindEvaluation
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "ParseError"
	case KindType:
		return "TypeError"
	case KindEvaluation:
		return "EvaluationError"
	default:
		return "UnknownError"
	}
}

// ParseError wraps every lex/syntax error accumulated during a single
// Parse (§7: "all errors of a single parse are accumulated, not just
// the first").
type ParseError struct {
	errs *common.Errors
}

func (e *ParseError) Error() string   { return e.errs.String() }
func (e *ParseError) Kind() ErrorKind { return KindParse }

// Messages returns the individual formatted diagnostic lines, one per
// accumulated error (file:line:col message, with a source snippet and
// caret).
func (e *ParseError) Messages() []string { return e.errs.Messages() }

// TypeError reports an operator or built-in applied to an unsupported
// combination of operand types (§7). Its message names the operation
// and both type tags, per the evaluator's *types.Err formatting.
type TypeError struct {
	msg string
}

func (e *TypeError) Error() string   { return e.msg }
func (e *TypeError) Kind() ErrorKind { return KindType }

// EvaluationError covers every other runtime failure (§7): divide or
// modulo by zero, index out of range, integer overflow, an unresolved
// identifier or field, an unknown function, a malformed timestamp or
// duration literal, a non-identifier macro variable, or an arity
// mismatch.
type EvaluationError struct {
	msg string
}

func (e *EvaluationError) Error() string   { return e.msg }
func (e *EvaluationError) Kind() ErrorKind { return KindEvaluation }
