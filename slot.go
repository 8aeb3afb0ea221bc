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
	"unsafe"
)

/*
Slot describes a named location holding a function. Ptr must be a pointer to a
variable of function type. Release, if set, is called after the stub installed
into the slot is restored, e.g. to drop a per-instance slot that shadows a shared one.
*/
type Slot struct {
	Name    string
	Ptr     any
	Release func()
}

// Target is implemented by values that expose named function slots.
type Target interface {
	Slot(name string) (Slot, error)
}

/*
Method wraps the slot called <name>, exposed by <target>, with a stub installed
into register <r>. T must be exactly the type of the slot.

	s, err := Method[Handler](reg, server, "onConnect")
*/
func Method[T any](r *Register, target Target, name string) (*Stub[T], error) {
	slot, err := target.Slot(name)
	if err != nil {
		return nil, err
	}
	ptr, ok := slot.Ptr.(*T)
	if !ok {
		release(slot)
		return nil, fmt.Errorf("%w: %s is %T, not %s", ErrSlotType, name, slot.Ptr, typeOf[*T]())
	}
	s, err := wrap(r, name, ptr, slot.Release)
	if err != nil {
		release(slot)
		return nil, err
	}
	return s, nil
}

/*
Field wraps func-typed struct field called <field> of the struct <obj> points to.
Unexported fields are reachable too, which makes Field an escape hatch for slots
the owning package doesn't expose. Methods are not fields and can never be wrapped.
*/
func Field[T any](r *Register, obj any, field string) (*Stub[T], error) {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s: %T is not a pointer to struct", ErrNoSlot, field, obj)
	}
	sf, ok := v.Elem().Type().FieldByName(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %s", ErrNoSlot, v.Type().Elem(), field)
	}
	f, err := v.Elem().FieldByIndexErr(sf.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoSlot, field, err)
	}
	if f.Type() != typeOf[T]() {
		return nil, fmt.Errorf("%w: field %s is %s, not %s", ErrSlotType, field, f.Type(), typeOf[T]())
	}
	ptr := reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Interface().(*T)
	return wrap(r, field, ptr, nil)
}

func release(slot Slot) {
	if slot.Release != nil {
		slot.Release()
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
