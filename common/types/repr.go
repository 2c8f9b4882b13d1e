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

// Repr renders v the way it appears nested inside a List/Map's
// CELString: strings quoted, everything else as its own CELString. This
// differs from the top-level string(x) conversion, where a bare String
// is returned verbatim (§4.5).
func Repr(v Value) string {
	switch t := v.(type) {
	case String:
		return strconv.Quote(string(t))
	default:
		return v.CELString()
	}
}
