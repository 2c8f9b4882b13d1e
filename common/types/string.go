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

// String is the CEL string variant: a UTF-8 byte sequence (§3.3).
type String string

func (s String) Kind() Kind { return KindString }

// CELString is the identity conversion string(x) performs on a String
// (§4.5); container rendering quotes it separately, see Repr.
func (s String) CELString() string {
	return string(s)
}
