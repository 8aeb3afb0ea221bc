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
	"reflect"
	"sync"
	"unsafe"
)

type handleKind uint8

const (
	kindPlain handleKind = iota
	kindInstrumented
)

// restoreHandle is attached to every function a stub installs into a slot.
type restoreHandle struct {
	kind    handleKind
	owner   *Register
	restore func()
}

// closure address -> *restoreHandle
var handles sync.Map

/*
IsRestorable reports whether v is a function installed by a stub of this package,
i.e. it carries a restore handle tagged as instrumented.

It never panics: nil, non-function values and nil functions are simply not restorable.
Note that a stub function stays restorable after the stub is restored, it is the
slot that goes back to the original function:

	s, _ := Func(Global(), "now", &now)
	IsRestorable(now)      // true
	s.Restore()
	IsRestorable(now)      // false
	IsRestorable(s.Func()) // true
*/
func IsRestorable(v any) bool {
	h, ok := handleOf(v)
	return ok && h.restore != nil && h.kind == kindInstrumented
}

/*
Owner returns the register that installed stub function v. The second value is
false if v is not a stub function.
*/
func Owner(v any) (*Register, bool) {
	if !IsRestorable(v) {
		return nil, false
	}
	h, _ := handleOf(v)
	return h.owner, true
}

/*
RestoreFunc restores the stub that installed stub function v, whichever register
owns it. It reports false if v is not a stub function.
*/
func RestoreFunc(v any) bool {
	if !IsRestorable(v) {
		return false
	}
	h, _ := handleOf(v)
	h.restore()
	return true
}

func handleOf(v any) (*restoreHandle, bool) {
	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, false
	}
	h, ok := handles.Load(funcID(fn))
	if !ok {
		return nil, false
	}
	return h.(*restoreHandle), true
}

/*
funcID returns the address of the closure behind fn. The code pointer is useless
here because every function made by reflect.MakeFunc shares the same one, but
each of them has its own closure.
*/
func funcID(fn reflect.Value) unsafe.Pointer {
	p := reflect.New(fn.Type())
	p.Elem().Set(fn)
	return *(*unsafe.Pointer)(p.UnsafePointer())
}

func attach(fn reflect.Value, h *restoreHandle) {
	handles.Store(funcID(fn), h)
}
