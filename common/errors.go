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

package common

import (
	"fmt"
	"strings"
)

// Errors accumulates every lex/syntax error produced by a single parse.
// The spec requires a parse to report *all* of its errors, not just the
// first (§7), so the parser never stops at the first failure; it
// resynchronizes and keeps going (see parser.Parser).
type Errors struct {
	src    Source
	errors []Error
}

// NewErrors returns an empty Errors collector bound to src.
func NewErrors(src Source) *Errors {
	return &Errors{src: src}
}

// ReportErrorAtOffset records a message at the given source byte offset.
func (e *Errors) ReportErrorAtOffset(offset int, format string, args ...interface{}) {
	e.errors = append(e.errors, Error{
		Source:   e.src,
		Location: e.src.LocationFromOffset(offset),
		Message:  fmt.Sprintf(format, args...),
	})
}

// GetErrors returns every error accumulated so far, in report order.
func (e *Errors) GetErrors() []Error {
	return e.errors[:]
}

// Empty reports whether no errors have been recorded.
func (e *Errors) Empty() bool {
	return len(e.errors) == 0
}

// Messages returns just the formatted display strings, the shape the
// public API's Failure.Errors field exposes (§6.2).
func (e *Errors) Messages() []string {
	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.ToDisplayString()
	}
	return msgs
}

func (e *Errors) String() string {
	lines := make([]string, len(e.errors))
	for i, err := range e.errors {
		lines[i] = err.ToDisplayString()
	}
	return strings.Join(lines, "\n")
}
