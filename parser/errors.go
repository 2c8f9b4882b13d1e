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

package parser

import (
	"github.com/lexrt/gocel/common"
)

// parseErrors wraps common.Errors with the fixed set of diagnostic
// messages the grammar itself can detect (§4.2, §4.6).
type parseErrors struct {
	*common.Errors
}

func (e *parseErrors) syntaxError(offset int, message string) {
	e.ReportErrorAtOffset(offset, "Syntax error: %s", message)
}

func (e *parseErrors) invalidHasArgument(offset int) {
	e.ReportErrorAtOffset(offset, "the argument to the function 'has' must be a field selection")
}

func (e *parseErrors) argumentIsNotIdent(offset int) {
	e.ReportErrorAtOffset(offset, "the macro variable name must be a simple identifier")
}
