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

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// Timestamp is the CEL timestamp variant: an instant with nanosecond
// precision, stored as (seconds since epoch, nanoseconds in
// [0, 999999999]) (§3.3). It wraps timestamppb.Timestamp directly, the
// same well-known-type reuse the teacher's own common/types/timestamp.go
// practices (there against the legacy github.com/golang/protobuf
// ptypes/timestamp package; here against its google.golang.org/protobuf
// successor, see SPEC_FULL.md §C).
type Timestamp struct {
	*timestamppb.Timestamp
}

// NewTimestamp builds a Timestamp from a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{timestamppb.New(t)}
}

func (t Timestamp) Kind() Kind { return KindTimestamp }

func (t Timestamp) Time() time.Time {
	return t.Timestamp.AsTime()
}

func (t Timestamp) CELString() string {
	return t.Time().UTC().Format(time.RFC3339Nano)
}
