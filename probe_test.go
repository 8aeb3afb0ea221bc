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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type handler func(string) error

func TestNotCallableIsNotRestorable(t *testing.T) {
	var nilFunc func()
	var nilHandler handler
	var nilIface any

	assert.False(t, IsRestorable(nil))
	assert.False(t, IsRestorable(nilIface))
	assert.False(t, IsRestorable(nilFunc))
	assert.False(t, IsRestorable(nilHandler))
	assert.False(t, IsRestorable(42))
	assert.False(t, IsRestorable("func"))
	assert.False(t, IsRestorable(&nilFunc))
	assert.False(t, IsRestorable(struct{ Restore func() }{Restore: func() {}}))
}

func TestNotCallableProperty(t *testing.T) {
	gen := rapid.OneOf(
		rapid.Int().AsAny(),
		rapid.Bool().AsAny(),
		rapid.Float64().AsAny(),
		rapid.String().AsAny(),
		rapid.SliceOf(rapid.Byte()).AsAny(),
		rapid.MapOf(rapid.String(), rapid.Int()).AsAny(),
	)
	rapid.Check(t, func(rt *rapid.T) {
		v := gen.Draw(rt, "value")
		if IsRestorable(v) {
			rt.Fatalf("%#v reported as restorable", v)
		}
	})
}

func TestPlainFuncIsNotRestorable(t *testing.T) {
	fn := func() int { return 1 }
	assert.False(t, IsRestorable(fn))
	assert.False(t, IsRestorable(TestPlainFuncIsNotRestorable))
	assert.False(t, IsRestorable(handler(func(string) error { return nil })))
}

func TestStubFuncIsRestorable(t *testing.T) {
	reg := Sandbox(t)
	fn := func() int { return 1 }
	org := fn

	s, err := Func(reg, "fn", &fn)
	require.NoError(t, err)

	assert.True(t, IsRestorable(fn))
	assert.True(t, IsRestorable(s.Func()))
	assert.False(t, IsRestorable(org))
	assert.False(t, IsRestorable(s), "stub itself is not a function")

	s.Restore()
	assert.False(t, IsRestorable(fn), "slot holds original function again")
	assert.True(t, IsRestorable(s.Func()), "stub function is still a stub")
}

func TestNamedFuncTypeIsRestorable(t *testing.T) {
	reg := Sandbox(t)
	h := handler(func(string) error { return nil })

	_, err := Func(reg, "h", &h)
	require.NoError(t, err)

	assert.True(t, IsRestorable(h))
	assert.True(t, IsRestorable((func(string) error)(h)), "conversion keeps the closure")
}

func TestOwner(t *testing.T) {
	sandbox := Sandbox(t)
	t.Cleanup(Restore)

	f1 := func() {}
	f2 := func() {}
	_, err := Func(Global(), "f1", &f1)
	require.NoError(t, err)
	_, err = Func(sandbox, "f2", &f2)
	require.NoError(t, err)

	owner, ok := Owner(f1)
	require.True(t, ok)
	assert.Same(t, Global(), owner)

	owner, ok = Owner(f2)
	require.True(t, ok)
	assert.Same(t, sandbox, owner)

	_, ok = Owner(func() {})
	assert.False(t, ok)
	_, ok = Owner(nil)
	assert.False(t, ok)
}
