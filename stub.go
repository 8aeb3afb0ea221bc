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
	"sync"
	"unsafe"
)

// Call is a record of a single call to a stub.
type Call struct {
	Args    []any // variadic arguments are recorded as a single slice
	Returns []any
}

/*
Stub replaces a function held in a slot and records every call made through it.
Unless configured with [Stub.Returns], [Stub.CallsFake] or [Stub.CallThrough]
a stub returns zero values.
*/
type Stub[T any] struct {
	mu        sync.Mutex
	name      string
	reg       *Register
	slot      *T
	release   func()
	original  T
	wrapper   T
	id        unsafe.Pointer
	typ       reflect.Type
	behaviour func([]reflect.Value) []reflect.Value
	calls     []Call
	active    bool
}

/*
Func wraps the function variable <slot> points to with a stub installed into
register <r>. The <name> is used in error messages and reports.

	s, err := restorable.Func(restorable.Global(), "now", &now)
*/
func Func[T any](r *Register, name string, slot *T) (*Stub[T], error) {
	return wrap(r, name, slot, nil)
}

func wrap[T any](r *Register, name string, slot *T, release func()) (*Stub[T], error) {
	if r == nil {
		panic("cannot wrap " + name + " with nil register")
	}
	typ := typeOf[T]()
	if typ.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %s is %s, not a function", ErrSlotType, name, typ)
	}
	if slot == nil || reflect.ValueOf(slot).Elem().IsNil() {
		return nil, fmt.Errorf("%w: %s", ErrNilSlot, name)
	}
	if owner, ok := Owner(*slot); ok {
		return nil, &WrapError{Name: name, Owner: owner.Name()}
	}

	s := &Stub[T]{
		name:     name,
		reg:      r,
		slot:     slot,
		release:  release,
		original: *slot,
		typ:      typ,
		active:   true,
	}
	fn := reflect.MakeFunc(typ, s.invoke)
	reflect.ValueOf(&s.wrapper).Elem().Set(fn)
	s.id = funcID(fn)
	attach(fn, &restoreHandle{kind: kindInstrumented, owner: r, restore: s.Restore})

	*slot = s.wrapper
	r.add(s)
	logger().Debug("slot wrapped", "slot", name, "register", r.name)

	return s, nil
}

func (s *Stub[T]) invoke(args []reflect.Value) []reflect.Value {
	s.mu.Lock()
	behaviour := s.behaviour
	s.mu.Unlock()

	var out []reflect.Value
	if behaviour != nil {
		out = behaviour(args)
	} else {
		out = make([]reflect.Value, s.typ.NumOut())
		for i := range out {
			out[i] = reflect.Zero(s.typ.Out(i))
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{Args: interfaces(args), Returns: interfaces(out)})
	s.mu.Unlock()

	return out
}

/*
Returns makes the stub return <vals>. The number of values and their types must
match the results of T, nil is accepted for nillable results. Returns panics otherwise.
*/
func (s *Stub[T]) Returns(vals ...any) *Stub[T] {
	if len(vals) != s.typ.NumOut() {
		panic(fmt.Sprintf("%s returns %d value(s), %d given", s.name, s.typ.NumOut(), len(vals)))
	}
	out := make([]reflect.Value, len(vals))
	for i, v := range vals {
		want := s.typ.Out(i)
		out[i] = reflect.New(want).Elem()
		if v == nil {
			if !isNillable(want) {
				panic(fmt.Sprintf("%s: return value %d of type %s cannot be nil", s.name, i, want))
			}
			continue
		}
		val := reflect.ValueOf(v)
		if !val.Type().AssignableTo(want) {
			panic(fmt.Sprintf("%s: return value %d is %s, not %s", s.name, i, val.Type(), want))
		}
		out[i].Set(val)
	}

	s.setBehaviour(func([]reflect.Value) []reflect.Value { return out })
	return s
}

// CallsFake makes the stub call <fn> and return its results.
func (s *Stub[T]) CallsFake(fn T) *Stub[T] {
	fv := reflect.ValueOf(fn)
	if fv.IsNil() {
		panic(s.name + ": fake function is nil")
	}
	s.setBehaviour(s.through(fv))
	return s
}

// CallThrough makes the stub call the function it replaced.
func (s *Stub[T]) CallThrough() *Stub[T] {
	s.setBehaviour(s.through(reflect.ValueOf(s.original)))
	return s
}

func (s *Stub[T]) through(fn reflect.Value) func([]reflect.Value) []reflect.Value {
	return func(args []reflect.Value) []reflect.Value {
		if s.typ.IsVariadic() {
			return fn.CallSlice(args)
		}
		return fn.Call(args)
	}
}

func (s *Stub[T]) setBehaviour(b func([]reflect.Value) []reflect.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.behaviour = b
}

// Func returns the stub function, the one installed into the slot.
func (s *Stub[T]) Func() T {
	return s.wrapper
}

// Original returns the function the stub replaced.
func (s *Stub[T]) Original() T {
	return s.original
}

func (s *Stub[T]) Name() string {
	return s.name
}

// Register returns the register the stub was installed into.
func (s *Stub[T]) Register() *Register {
	return s.reg
}

// Active reports whether the stub is still installed, i.e. was not restored yet.
func (s *Stub[T]) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Stub[T]) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *Stub[T]) Called() bool {
	return s.CallCount() > 0
}

func (s *Stub[T]) CalledOnce() bool {
	return s.CallCount() == 1
}

// CalledWith reports whether at least one call was made with <args>.
func (s *Stub[T]) CalledWith(args ...any) bool {
	return CalledWith(s, args...) == nil
}

// Calls returns a copy of the call history, oldest first.
func (s *Stub[T]) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]Call, len(s.calls))
	copy(calls, s.calls)
	return calls
}

func (s *Stub[T]) LastCall() (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return Call{}, false
	}
	return s.calls[len(s.calls)-1], true
}

// ResetHistory forgets all recorded calls, configured behaviour is kept.
func (s *Stub[T]) ResetHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

/*
Restore puts the original function back into the slot and removes the stub from
its register. It can be called on any stub directly, regardless of the register
it belongs to, and it is safe to call it more than once.
If the slot no longer holds this stub, the slot is left as is.
*/
func (s *Stub[T]) Restore() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	if cur := reflect.ValueOf(s.slot).Elem(); !cur.IsNil() && funcID(cur) == s.id {
		*s.slot = s.original
	}
	s.reg.remove(s)
	if s.release != nil {
		s.release()
	}
	logger().Debug("slot restored", "slot", s.name, "register", s.reg.name)
}

func interfaces(vals []reflect.Value) []any {
	res := make([]any, len(vals))
	for i, v := range vals {
		res[i] = v.Interface()
	}
	return res
}
