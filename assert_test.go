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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

func TestCallCount(t *testing.T) {
	reg := Sandbox(t)
	fn := func(int) {}

	s, err := Func(reg, "fn", &fn)
	require.NoError(t, err)

	require.NoError(t, NotCalled(s))
	err = CalledOnce(s)
	require.ErrorIs(t, err, ErrExpectationsNotMet)
	assert.EqualError(t, err, "expectations were not met: fn was not called")

	fn(1)
	require.NoError(t, CalledOnce(s))

	fn(2)
	fn(3)
	err = CallCount(s, 2)
	require.ErrorIs(t, err, ErrExpectationsNotMet)
	assert.EqualError(t, err, "expectations were not met: fn was called 3 time(s) instead of 2")
}

func TestCalledWith(t *testing.T) {
	reg := Sandbox(t)
	fn := func(p *point, tags map[string]int, err error) {}

	s, err := Func(reg, "fn", &fn)
	require.NoError(t, err)

	require.ErrorIs(t, CalledWith(s, nil, nil, nil), ErrExpectationsNotMet)

	fn(&point{1, 2}, map[string]int{"a": 1}, nil)
	fn(nil, nil, errors.New("boom"))

	require.NoError(t, CalledWith(s, &point{1, 2}, map[string]int{"a": 1}, nil))
	require.NoError(t, CalledWith(s, nil, nil, errors.New("boom")))

	err = CalledWith(s, &point{1, 3}, map[string]int{"a": 1}, nil)
	require.ErrorIs(t, err, ErrExpectationsNotMet)
	assert.Contains(t, err.Error(), "call 0: arg 0: struct field 'Y': actual value '2' differs from expected '3'")
	assert.Contains(t, err.Error(), "call 1: arg 0: cannot compare invalid value with valid one")

	err = CalledWith(s, &point{1, 2})
	assert.Contains(t, err.Error(), "actual arg count 3 doesn't match expected 1")
}
