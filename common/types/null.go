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

import "google.golang.org/protobuf/types/known/structpb"

// Null is the CEL null variant. Its underlying representation reuses
// structpb.NullValue, the same well-known-type reuse cel-go itself
// practices for its JSON-ish value variants.
type Null structpb.NullValue

// NullValue is the single inhabitant of the Null type.
var NullValue = Null(structpb.NullValue_NULL_VALUE)

func (n Null) Kind() Kind        { return KindNull }
func (n Null) CELString() string { return "null" }
