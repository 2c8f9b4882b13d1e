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

// Error is a single lex or syntax error (§7's ParseError kind), located
// against a Source.
type Error struct {
	Source   Source
	Location Location
	Message  string
}

// ToDisplayString renders the error the way a terminal diagnostic would:
// "<name>:line:col: message", followed by the offending line and a
// caret pointing at the column.
func (e *Error) ToDisplayString() string {
	result := fmt.Sprintf("%s:%d:%d: %s", e.Source.Name(), e.Location.Line(), e.Location.Column(), e.Message)
	if snippet, found := e.Source.Snippet(e.Location.Line()); found {
		result += "\n | " + snippet
		result += "\n | " + strings.Repeat(".", e.Location.Column()-1) + "^"
	}
	return result
}
