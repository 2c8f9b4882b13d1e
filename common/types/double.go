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

// Double is the CEL double variant: an IEEE-754 64-bit float. NaN is
// unequal to itself and to everything else, per IEEE (§3.3); ordering is
// total only among non-NaN values.
type Double float64

func (d Double) Kind() Kind { return KindDouble }

func (d Double) CELString() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

func (d Double) IsNaN() bool {
	return d != d
}
