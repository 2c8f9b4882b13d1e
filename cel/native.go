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

import (
	"reflect"

	"github.com/lexrt/gocel/common/types"
)

// NewMessage adapts a native Go struct (or pointer to one) into a CEL
// Message value (§3.3), suitable to place directly into an Evaluate
// bindings map alongside Map/List/scalar values. Exported fields only;
// field names are snake_cased by common/types.Message. A struct field
// that is itself a struct, slice, or map is adapted recursively with
// the same rules Evaluate's bindings use, so has()/field-selection
// (§4.5) reaches through nested native values exactly as it would
// through hand-built CEL values.
func NewMessage(typeName string, v interface{}) *types.Message {
	return types.NewMessageFromStruct(typeName, v, nativeToValue)
}

// nativeToValue adapts a plain Go value into a types.Value. It is the
// recursive step NewMessage uses for struct fields, and is exported
// indirectly through NewMessage rather than directly: a caller with a
// scalar, slice, or map binding should just construct the types.Value
// itself (types.String, types.NewList, ...), since only the struct ->
// Message path is otherwise unreachable from Evaluate's bindings map.
func nativeToValue(v interface{}) types.Value {
	if v == nil {
		return types.NullValue
	}
	switch x := v.(type) {
	case types.Value:
		return x
	case bool:
		return types.Bool(x)
	case string:
		return types.String(x)
	case []byte:
		return types.Bytes(x)
	case int:
		return types.Int(int64(x))
	case int32:
		return types.Int(int64(x))
	case int64:
		return types.Int(x)
	case uint:
		return types.Uint(uint64(x))
	case uint32:
		return types.Uint(uint64(x))
	case uint64:
		return types.Uint(x)
	case float32:
		return types.Double(float64(x))
	case float64:
		return types.Double(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return types.NullValue
		}
		return nativeToValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		entries := make([]types.Value, rv.Len())
		for i := range entries {
			entries[i] = nativeToValue(rv.Index(i).Interface())
		}
		return types.NewList(entries)
	case reflect.Map:
		keys := rv.MapKeys()
		entries := make([]types.MapEntry, 0, len(keys))
		for _, key := range keys {
			entries = append(entries, types.MapEntry{
				Key: nativeToValue(key.Interface()),
				Val: nativeToValue(rv.MapIndex(key).Interface()),
			})
		}
		return types.NewMap(entries)
	case reflect.Struct:
		return types.NewMessageFromStruct(rv.Type().Name(), v, nativeToValue)
	}
	return types.NewEvaluationErr("cannot adapt native value of type %T to a CEL value", v)
}
