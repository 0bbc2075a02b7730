// Copyright 2025 The NLP Odyssey Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agents

import (
	"errors"
	"fmt"
)

// ToolNotFoundError is returned when the model requests a tool that is not
// part of the registry.
type ToolNotFoundError struct {
	Name string
}

func (err ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found", err.Name)
}

// ModelBehaviorError is returned when the model does something unexpected,
// e.g. providing malformed JSON arguments or returning no choices.
type ModelBehaviorError struct {
	Err error
}

func (err ModelBehaviorError) Error() string { return err.Err.Error() }
func (err ModelBehaviorError) Unwrap() error { return err.Err }

func NewModelBehaviorError(message string) ModelBehaviorError {
	return ModelBehaviorError{Err: errors.New(message)}
}

func ModelBehaviorErrorf(format string, a ...any) ModelBehaviorError {
	return ModelBehaviorError{Err: fmt.Errorf(format, a...)}
}

// ModelInvocationError is returned when the call to the model endpoint
// itself fails (transport, authentication, rate limiting...).
type ModelInvocationError struct {
	Err error
}

func (err ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed: %s", err.Err)
}

func (err ModelInvocationError) Unwrap() error { return err.Err }

// UserError is returned when the package is used incorrectly.
type UserError struct {
	Err error
}

func (err UserError) Error() string { return err.Err.Error() }
func (err UserError) Unwrap() error { return err.Err }

func NewUserError(message string) UserError {
	return UserError{Err: errors.New(message)}
}

func UserErrorf(format string, a ...any) UserError {
	return UserError{Err: fmt.Errorf(format, a...)}
}

// MaxTurnsExceededError is returned when RunConfig.MaxTurns is set and the
// run needs more model turns than allowed.
type MaxTurnsExceededError struct {
	MaxTurns uint64
}

func (err MaxTurnsExceededError) Error() string {
	return fmt.Sprintf("max turns %d exceeded", err.MaxTurns)
}
