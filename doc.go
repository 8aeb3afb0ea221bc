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

/*
Package restorable instruments callable slots of Go values with stubs that can
later be restored, and lets tests probe whether a callable currently is such a
stub.

A slot is any addressable location holding a function: a function variable, a
func-typed struct field, or a named slot exposed by a [Target]. Every stub is
installed through a [Register]. The [Global] register is shared by the whole
test binary, while registers created with [NewSandbox] or [Sandbox] are isolated:
restoring one register never reverses stubs installed by another one.

Typical use:

	func TestGreeting(t *testing.T) {
	    reg := restorable.Sandbox(t) // restored automatically when the test ends

	    s, err := restorable.Func(reg, "lookup", &lookup)
	    if err != nil {
	        t.Fatal(err)
	    }
	    s.Returns("Bob", nil)

	    if got := greet(42); got != "Hello, Bob" {
	        t.Errorf("unexpected greeting %q", got)
	    }
	    if err := restorable.CalledOnce(s); err != nil {
	        t.Error(err)
	    }
	}

# Probing

[IsRestorable] reports whether a value is a stub function produced by this
package. It works on the value only, so it cannot tell which register owns a
stub. Use [Owner] for that.

# Limitations

Only data can be instrumented. Methods and plain functions are code, and this
package never patches code, therefore unexported methods of a type are out of
reach of any stub, by construction. Wrapping a slot that already holds a stub
fails with [ErrAlreadyWrapped], no matter which register installed the first
stub.
*/
package restorable
