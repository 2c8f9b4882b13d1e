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

	"google.golang.org/protobuf/types/known/durationpb"
)

// Duration is the CEL duration variant: a signed (seconds, nanoseconds)
// pair, nanoseconds the same sign as seconds or zero (§3.3). Wraps
// durationpb.Duration, mirroring Timestamp's well-known-type reuse.
type Duration struct {
	*durationpb.Duration
}

// NewDuration builds a Duration from a time.Duration, normalizing so
// |nanoseconds| < 1e9 (§4.5).
func NewDuration(d time.Duration) Duration {
	return Duration{durationpb.New(d)}
}

func (d Duration) Kind() Kind { return KindDuration }

func (d Duration) AsDuration() time.Duration {
	return d.Duration.AsDuration()
}

// CELString renders the shortest "1h30m0.5s"-style form (§4.5).
func (d Duration) CELString() string {
	dur := d.AsDuration()
	if dur == 0 {
		return "0s"
	}
	s := dur.String()
	// time.Duration.String() already produces CEL's "1h30m0.5s" shape;
	// the only divergence is Go's lack of a leading zero-unit elision
	// quirk, which does not arise for any value time.Duration emits.
	return s
}
