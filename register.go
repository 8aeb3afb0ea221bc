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
	"slices"
	"sync"
	"testing"
)

type restorer interface {
	Name() string
	Restore()
}

/*
Register keeps track of stubs it installed so they can be restored together
with [Register.Restore]. Registers are independent: restoring one never affects
stubs installed by another one.
*/
type Register struct {
	mu    sync.Mutex
	name  string
	stubs []restorer
}

var global = &Register{name: "global"}

/*
Global returns the register shared by the whole process. Stubs installed into it
stay in place until [Restore] (or [Register.Restore] on it) is called, even across
test cases.
*/
func Global() *Register {
	return global
}

// NewSandbox creates a new isolated register.
func NewSandbox(name string) *Register {
	return &Register{name: name}
}

/*
Sandbox creates an isolated register named after the test and restores it when
the test and all its subtests complete.
*/
func Sandbox(t testing.TB) *Register {
	t.Helper()
	r := NewSandbox(t.Name())
	t.Cleanup(r.Restore)
	return r
}

// Restore restores all stubs installed into the global register.
func Restore() {
	global.Restore()
}

func (r *Register) Name() string {
	return r.name
}

// Len returns the number of active stubs installed by r.
func (r *Register) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stubs)
}

/*
Restore restores all active stubs installed by r, most recent first. Stubs that
were already restored individually are skipped.
*/
func (r *Register) Restore() {
	r.mu.Lock()
	stubs := r.stubs
	r.stubs = nil
	r.mu.Unlock()

	logger().Debug("restoring register", "register", r.name, "stubs", len(stubs))
	for i := len(stubs) - 1; i >= 0; i-- {
		stubs[i].Restore()
	}
}

func (r *Register) add(s restorer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stubs = append(r.stubs, s)
}

func (r *Register) remove(s restorer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := slices.Index(r.stubs, s); i >= 0 {
		r.stubs = slices.Delete(r.stubs, i, i+1)
	}
}
