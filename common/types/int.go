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

import "strconv"

// Int is the CEL int variant: a signed 64-bit integer. Arithmetic
// overflow is a dynamic error, never a silent wrap (§3.3, §9 open
// question: "error on overflow").
type Int int64

const (
	IntZero   = Int(0)
	IntOne    = Int(1)
	IntNegOne = Int(-1)
)

func (i Int) Kind() Kind { return KindInt }

func (i Int) CELString() string {
	return strconv.FormatInt(int64(i), 10)
}
