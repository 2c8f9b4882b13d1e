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

// options holds the caller-tunable knobs for a single Evaluate call or
// an Env. Grounded on cel-go's own functional-options shape
// (EnvOption in cel/options.go), reduced to the handful of knobs this
// spec's dynamically typed evaluator actually exposes: the
// deep-recursion guard (§5) and the unknown-identifier escape hatch.
// cel-go's own options.go is almost entirely about the type-checker
// environment (declarations, containers, proto descriptor registration)
// this project has no use for, since there is no checker (§1 Non-goal:
// no type checking).
type options struct {
	maxEvalDepth         int
	resolveUnknownToNull bool
}

func defaultOptions() options {
	return options{maxEvalDepth: 256, resolveUnknownToNull: false}
}

// Option configures a single Evaluate call or an Env.
type Option func(*options)

// MaxEvalDepth bounds CST/macro nesting depth during evaluation (§5),
// default 256. Mirrors interpreter.MaxEvalDepth. It does not reach the
// parser: Env.Parse and Evaluate's parse of a string both keep the
// parser's own recursion guard (parser.MaxRecursionDepth, default 250).
func MaxEvalDepth(n int) Option {
	return func(o *options) { o.maxEvalDepth = n }
}

// ResolveUnknownToNull is a documented escape hatch (off by default,
// matching the spec's default "unresolved identifier is an
// EvaluationError" behavior): when enabled, a top-level identifier with
// no matching binding evaluates to null instead of failing. It does not
// change reserved-identifier rejection or field-selection-on-missing-key
// behavior (has() and dotted selection already have their own,
// unaffected, missing-entry rules).
func ResolveUnknownToNull(enabled bool) Option {
	return func(o *options) { o.resolveUnknownToNull = enabled }
}
