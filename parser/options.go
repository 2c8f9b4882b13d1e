// Copyright 2021 Google LLC
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

import "fmt"

type options struct {
	maxRecursionDepth int
}

// Option configures the behavior of a Parser.
type Option func(*options) error

// MaxRecursionDepth bounds how deeply nested an expression's grammar
// rules may recurse before the parser gives up with a syntax error,
// guarding against stack overflow on adversarial input (§5). A value
// of -1 disables the check.
func MaxRecursionDepth(maxRecursionDepth int) Option {
	return func(opts *options) error {
		if maxRecursionDepth < -1 {
			return fmt.Errorf("max recursion depth must be >= -1: %d", maxRecursionDepth)
		}
		opts.maxRecursionDepth = maxRecursionDepth
		return nil
	}
}

func defaultOptions() options {
	return options{maxRecursionDepth: 250}
}
