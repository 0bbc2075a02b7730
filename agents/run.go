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
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nlpodyssey/weather-agent-go/modelsettings"
	"github.com/nlpodyssey/weather-agent-go/usage"
	"github.com/openai/openai-go/v3/packages/param"
)

// LoopState is a state of the agent control loop.
type LoopState uint8

const (
	// StateAgentTurn asks the model for the next assistant message.
	StateAgentTurn LoopState = iota
	// StateToolTurn runs the tool calls of the last assistant message.
	StateToolTurn
	// StateDone is terminal.
	StateDone
)

func (s LoopState) String() string {
	switch s {
	case StateAgentTurn:
		return "agent"
	case StateToolTurn:
		return "tools"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("LoopState(%d)", uint8(s))
	}
}

type RunConfig struct {
	// The maximum number of model turns. Zero, the default, means no limit:
	// a model that keeps requesting tools keeps the run going until ctx is
	// canceled.
	MaxTurns uint64

	// Global model settings. Any non-null values will override the
	// agent-specific model settings.
	ModelSettings modelsettings.ModelSettings

	// Optional callbacks for lifecycle events.
	Hooks RunHooks
}

// Runner executes the agent control loop.
type Runner struct {
	Config RunConfig
}

// DefaultRunner is the default Runner instance used by package-level Run
// helpers.
var DefaultRunner = Runner{}

// Run executes startingAgent with the given input using the DefaultRunner.
func Run(ctx context.Context, agent *Agent, input string) (*RunResult, error) {
	return DefaultRunner.Run(ctx, agent, input)
}

type RunResult struct {
	// A unique identifier of the run.
	RunID string

	// The content of the last assistant message.
	FinalOutput string

	// The whole transcript: the input messages followed by everything the
	// run appended.
	Conversation *Conversation

	// The number of model turns performed.
	Turns uint64

	// Token usage accumulated across all model turns.
	Usage *usage.Usage
}

// Run seeds a new conversation with the user input and runs the agent
// until the model answers without tool calls.
func (r Runner) Run(ctx context.Context, agent *Agent, input string) (*RunResult, error) {
	return r.RunConversation(ctx, agent, NewConversation(UserMessage(input)))
}

// RunConversation runs the agent loop on conv, appending to it.
//
// The loop alternates between a model turn and a tool turn. A model turn
// that yields no tool calls ends the run. Tool calls of a turn are run
// sequentially, in the order the model issued them, each producing one
// tool result message.
//
// Errors from the model, unknown tools, invalid tool arguments or failing
// tools abort the run. Context cancellation is checked before every model
// turn.
func (r Runner) RunConversation(ctx context.Context, agent *Agent, conv *Conversation) (*RunResult, error) {
	if agent == nil {
		return nil, NewUserError("agent must not be nil")
	}
	if agent.Model == nil {
		return nil, UserErrorf("agent %q has no model", agent.Name)
	}
	if conv == nil {
		return nil, NewUserError("conversation must not be nil")
	}
	if err := conv.Validate(); err != nil {
		return nil, err
	}

	registry, err := NewToolRegistry(agent.Tools...)
	if err != nil {
		return nil, err
	}

	hooks := r.Config.Hooks
	if hooks == nil {
		hooks = NoOpRunHooks{}
	}

	var instructions param.Opt[string]
	if agent.Instructions != "" {
		instructions = param.NewOpt(agent.Instructions)
	}
	settings := agent.ModelSettings.Resolve(r.Config.ModelSettings)

	result := &RunResult{
		RunID:        uuid.NewString(),
		Conversation: conv,
		Usage:        usage.NewUsage(),
	}
	logger := Logger().With(slog.String("run_id", result.RunID), slog.String("agent", agent.Name))

	state := StateAgentTurn
	for {
		switch state {
		case StateAgentTurn:
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			if r.Config.MaxTurns > 0 && result.Turns >= r.Config.MaxTurns {
				return nil, MaxTurnsExceededError{MaxTurns: r.Config.MaxTurns}
			}
			result.Turns++
			logger.Debug("Running agent turn", slog.Uint64("turn", result.Turns))

			if err = hooks.OnAgentTurn(ctx, agent, result.Turns); err != nil {
				return nil, err
			}

			response, err := agent.Model.GetResponse(ctx, ModelResponseParams{
				SystemInstructions: instructions,
				Input:              conv.Messages(),
				ModelSettings:      settings,
				Tools:              registry.Tools(),
			})
			if err != nil {
				return nil, err
			}
			if response == nil {
				return nil, NewModelBehaviorError("model returned no response")
			}
			result.Usage.Add(response.Usage)

			output := response.Output
			output.Role = RoleAssistant
			conv.Append(output)

			if output.HasToolCalls() {
				state = StateToolTurn
			} else {
				state = StateDone
			}

		case StateToolTurn:
			last, _ := conv.Last()
			for _, call := range last.ToolCalls {
				if err = hooks.OnToolStart(ctx, agent, call); err != nil {
					return nil, err
				}

				output, err := registry.Dispatch(ctx, call)
				if err != nil {
					return nil, err
				}
				content, err := MarshalToolOutput(output)
				if err != nil {
					return nil, fmt.Errorf("failed to JSON-marshal output of tool %q: %w", call.Name, err)
				}

				if err = hooks.OnToolEnd(ctx, agent, call, output); err != nil {
					return nil, err
				}
				conv.Append(ToolResultMessage(call, content))
			}
			state = StateAgentTurn

		case StateDone:
			last, _ := conv.Last()
			result.FinalOutput = last.Content
			if err = hooks.OnAgentEnd(ctx, agent, result.FinalOutput); err != nil {
				return nil, err
			}
			logger.Debug("Run completed", slog.Uint64("turns", result.Turns))
			return result, nil

		default:
			// This would be an unrecoverable implementation bug, so a panic is appropriate.
			panic(fmt.Errorf("unexpected loop state %s", state))
		}
	}
}
