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
	"context"
)

// RunHooks is implemented by an object that receives callbacks on the
// steps of an agent run. An error returned by a hook aborts the run.
type RunHooks interface {
	// OnAgentTurn is called before each model call. Turns are numbered from 1.
	OnAgentTurn(ctx context.Context, agent *Agent, turn uint64) error

	// OnToolStart is called right before a tool is invoked.
	OnToolStart(ctx context.Context, agent *Agent, call ToolCallRequest) error

	// OnToolEnd is called after a tool is invoked, with its raw result.
	OnToolEnd(ctx context.Context, agent *Agent, call ToolCallRequest, result any) error

	// OnAgentEnd is called when the agent produces its final output.
	OnAgentEnd(ctx context.Context, agent *Agent, output string) error
}

type NoOpRunHooks struct{}

func (NoOpRunHooks) OnAgentTurn(context.Context, *Agent, uint64) error {
	return nil
}
func (NoOpRunHooks) OnToolStart(context.Context, *Agent, ToolCallRequest) error {
	return nil
}
func (NoOpRunHooks) OnToolEnd(context.Context, *Agent, ToolCallRequest, any) error {
	return nil
}
func (NoOpRunHooks) OnAgentEnd(context.Context, *Agent, string) error {
	return nil
}
