// This file is part of Restorable project, available at https://github.com/qrdl/restorable
// Copyright (c) 2024-2026 Ilya Caramishev. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at https://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package restorable

import (
	"fmt"
	"reflect"
)

// reflect.Value.Equal is not good enough to compare call arguments:
// - pointers are compared as addresses only
// - maps and slices are not compared at all
// - there is no way to tell what exactly differs

func equal(a, e reflect.Value) (bool, string) {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if e.Kind() == reflect.Interface {
		e = e.Elem()
	}

	if !a.IsValid() || !e.IsValid() {
		return a.IsValid() == e.IsValid(), "cannot compare invalid value with valid one"
	}
	if a.Type() != e.Type() {
		return false, fmt.Sprintf("actual type '%s' differs from expected '%s'", a.Type(), e.Type())
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == e.Bool(), ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == e.Int(), ""
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == e.Uint(), ""
	case reflect.Float32, reflect.Float64:
		return a.Float() == e.Float(), ""
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == e.Complex(), ""
	case reflect.String:
		return a.String() == e.String(), ""
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		// can be equal only to itself
		return a.Pointer() == e.Pointer(), ""
	case reflect.Pointer:
		if a.Pointer() == e.Pointer() {
			return true, ""
		}
		return explain(reflect.Indirect(a), reflect.Indirect(e), "")
	case reflect.Struct:
		for i := range a.NumField() {
			if ok, msg := explain(a.Field(i), e.Field(i), "struct field '%s'", a.Type().Field(i).Name); !ok {
				return false, msg
			}
		}
		return true, ""
	case reflect.Map:
		if a.Pointer() == e.Pointer() {
			return true, ""
		}
		if a.Len() != e.Len() {
			return false, "map lengths differ"
		}
		for _, k := range a.MapKeys() {
			ev := e.MapIndex(k)
			if !ev.IsValid() {
				return false, fmt.Sprintf("map key '%v' is not expected", k)
			}
			if ok, msg := explain(a.MapIndex(k), ev, "map value for key '%v'", k); !ok {
				return false, msg
			}
		}
		return true, ""
	case reflect.Slice:
		if a.Len() != e.Len() {
			return false, "slice lengths differ"
		}
		if a.Pointer() == e.Pointer() {
			return true, ""
		}
		return sequence(a, e, "slice")
	case reflect.Array:
		return sequence(a, e, "array")
	}
	return false, "invalid variable Kind" // should never happen
}

// sequence compares arrays or slices of the same length element by element.
func sequence(a, e reflect.Value, what string) (bool, string) {
	for i := range a.Len() {
		if ok, msg := explain(a.Index(i), e.Index(i), "%s elem %d", what, i); !ok {
			return false, msg
		}
	}
	return true, ""
}

// explain compares nested values and prefixes a mismatch message with the location.
func explain(a, e reflect.Value, format string, args ...any) (bool, string) {
	ok, msg := equal(a, e)
	if ok {
		return true, ""
	}
	if msg == "" {
		msg = fmt.Sprintf("actual value '%v' differs from expected '%v'", a, e)
	}
	if format == "" {
		return false, msg
	}
	return false, fmt.Sprintf(format, args...) + ": " + msg
}

/*
matchArgs compares actual call arguments with expected ones. Untyped nil in
<expected> matches any nil value.
*/
func matchArgs(actual, expected []any) (bool, string) {
	if len(actual) != len(expected) {
		return false, fmt.Sprintf("actual arg count %d doesn't match expected %d", len(actual), len(expected))
	}
	for i := range actual {
		act := reflect.ValueOf(actual[i])
		if expected[i] == nil {
			if act.IsValid() && (!isNillable(act.Type()) || !act.IsNil()) {
				return false, fmt.Sprintf("arg %d actual value is non-nil while nil is expected", i)
			}
			continue
		}
		if ok, msg := explain(act, reflect.ValueOf(expected[i]), "arg %d", i); !ok {
			return false, msg
		}
	}
	return true, ""
}

func isNillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return true
	default:
		return false
	}
}
