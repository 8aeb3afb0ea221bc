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

var (
	ErrAlreadyWrapped     = errors.New("slot is already wrapped")
	ErrNoSlot             = errors.New("no such slot")
	ErrSlotType           = errors.New("slot type mismatch")
	ErrNilSlot            = errors.New("slot holds no function")
	ErrExpectationsNotMet = errors.New("expectations were not met")
)

/*
WrapError is returned when a slot that already holds a stub is wrapped again.
It matches [ErrAlreadyWrapped] with [errors.Is].
*/
type WrapError struct {
	Name  string
	Owner string // name of the register that owns the existing stub
}

func (e *WrapError) Error() string {
	return fmt.Sprintf("attempted to wrap %s which is already wrapped", e.Name)
}

func (e *WrapError) Unwrap() error {
	return ErrAlreadyWrapped
}
