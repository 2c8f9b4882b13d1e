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

// Package common defines types shared by the lexer, parser and evaluator:
// source text, byte offsets resolved to line/column, and the accumulating
// error collector used by the parser (see §7 of the spec).
package common

// Location is a 1-based line, 1-based column position within a Source,
// plus the raw byte offset it was resolved from.
type Location interface {
	Line() int
	Column() int
	Offset() int
}

// SourceLocation is a concrete Location.
type SourceLocation struct {
	line   int
	column int
	offset int
}

var _ Location = &SourceLocation{}

// NoLocation is used for synthetic errors with no source position.
var NoLocation = &SourceLocation{line: 0, column: 0, offset: -1}

// NewLocation constructs a Location from an explicit line/column/offset.
func NewLocation(line, column, offset int) Location {
	return &SourceLocation{line: line, column: column, offset: offset}
}

func (l *SourceLocation) Line() int   { return l.line }
func (l *SourceLocation) Column() int { return l.column }
func (l *SourceLocation) Offset() int { return l.offset }
