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
	"fmt"
)

// Spy is anything that records calls, e.g. a [Stub].
type Spy interface {
	Name() string
	CallCount() int
	Calls() []Call
}

/*
CallCount checks that <s> was called exactly <n> times. The returned error wraps
[ErrExpectationsNotMet].
*/
func CallCount(s Spy, n int) error {
	act := s.CallCount()
	switch {
	case act == n:
		return nil
	case act == 0:
		return fmt.Errorf("%w: %s was not called", ErrExpectationsNotMet, s.Name())
	default:
		return fmt.Errorf("%w: %s was called %d time(s) instead of %d", ErrExpectationsNotMet, s.Name(), act, n)
	}
}

func NotCalled(s Spy) error {
	return CallCount(s, 0)
}

func CalledOnce(s Spy) error {
	return CallCount(s, 1)
}

/*
CalledWith checks that at least one call to <s> was made with <args>. If none
matches, the error lists the difference for every call made.
*/
func CalledWith(s Spy, args ...any) error {
	calls := s.Calls()
	if len(calls) == 0 {
		return fmt.Errorf("%w: %s was not called", ErrExpectationsNotMet, s.Name())
	}

	err := fmt.Errorf("%w: %s was never called with expected args", ErrExpectationsNotMet, s.Name())
	for i, c := range calls {
		ok, msg := matchArgs(c.Args, args)
		if ok {
			return nil
		}
		err = errors.Join(err, fmt.Errorf("call %d: %s", i, msg))
	}
	return err
}
