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

package agents_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nlpodyssey/weather-agent-go/agents"
	"github.com/nlpodyssey/weather-agent-go/agentstesting"
	"github.com/nlpodyssey/weather-agent-go/modelsettings"
	"github.com/nlpodyssey/weather-agent-go/usage"
	"github.com/nlpodyssey/weather-agent-go/weather"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeatherTool(t *testing.T, status int, body string) agents.FunctionTool {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	tool, err := weather.NewTool(weather.NewClient(srv.URL))
	require.NoError(t, err)
	return tool
}

func TestRunWeatherScenario(t *testing.T) {
	call := agents.ToolCallRequest{
		ID:        "call_rio",
		Name:      "get_weather",
		Arguments: `{"location":"Rio de Janeiro RJ"}`,
	}
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("", call)},
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("The weather in Rio de Janeiro RJ is sunny, 28°C.")},
	)
	agent := agents.New("weather").
		WithModel(model).
		WithTools(newWeatherTool(t, http.StatusOK, "Rio de Janeiro RJ: ☀️ +28°C"))

	result, err := agents.Run(t.Context(), agent, "what is the weather in Rio de Janeiro RJ?")
	require.NoError(t, err)

	assert.Equal(t, "The weather in Rio de Janeiro RJ is sunny, 28°C.", result.FinalOutput)
	assert.Equal(t, uint64(2), result.Turns)
	assert.Equal(t, uint64(2), result.Usage.Requests)
	assert.NotEmpty(t, result.RunID)

	assert.Equal(t, []agents.Message{
		agents.UserMessage("what is the weather in Rio de Janeiro RJ?"),
		agents.AssistantMessage("", call),
		{
			Role:       agents.RoleTool,
			Content:    `"Rio de Janeiro RJ: ☀️ +28°C"`,
			ToolName:   "get_weather",
			ToolCallID: "call_rio",
		},
		agents.AssistantMessage("The weather in Rio de Janeiro RJ is sunny, 28°C."),
	}, result.Conversation.Messages())
	assert.NoError(t, result.Conversation.Validate())

	// The second turn sees the whole transcript, system prompt apart.
	assert.Equal(t, param.NewOpt(agents.DefaultInstructions), model.LastTurnArgs.SystemInstructions)
	assert.Len(t, model.LastTurnArgs.Input, 3)
	require.Len(t, model.LastTurnArgs.Tools, 1)
	assert.Equal(t, "get_weather", model.LastTurnArgs.Tools[0].ToolName())
}

func TestRunWeatherServiceUnavailable(t *testing.T) {
	call := agentstesting.GetFunctionToolCall("get_weather", `{"location":"Rio de Janeiro RJ"}`)
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("", call)},
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("Sorry, I could not get the weather.")},
	)
	agent := agents.New("weather").
		WithModel(model).
		WithTools(newWeatherTool(t, http.StatusServiceUnavailable, "down"))

	result, err := agents.Run(t.Context(), agent, "what is the weather in Rio de Janeiro RJ?")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I could not get the weather.", result.FinalOutput)

	msgs := result.Conversation.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, agents.RoleTool, msgs[2].Role)
	assert.Equal(t, `"Não consegui obter o clima para Rio de Janeiro RJ."`, msgs[2].Content)
	assert.Equal(t, call.ID, msgs[2].ToolCallID)
}

func TestRunUnknownToolFailsRun(t *testing.T) {
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("",
			agentstesting.GetFunctionToolCall("unknown_tool", `{}`),
		)},
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("unreachable")},
	)
	agent := agents.New("weather").
		WithModel(model).
		WithTools(agentstesting.GetFunctionTool("get_weather", "sunny"))

	conv := agents.NewConversation(agents.UserMessage("hi"))
	result, err := agents.DefaultRunner.RunConversation(t.Context(), agent, conv)
	require.Error(t, err)
	assert.Nil(t, result)

	var notFound agents.ToolNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "unknown_tool", notFound.Name)

	// No tool result was appended, and the model was not re-invoked.
	assert.Equal(t, 2, conv.Len())
	last, _ := conv.Last()
	assert.Equal(t, agents.RoleAssistant, last.Role)
	assert.Equal(t, 1, model.Calls)
}

func TestRunNoToolCallsTerminatesInOneTurn(t *testing.T) {
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("Hello!")},
	)
	var toolCalls []map[string]any
	agent := agents.New("weather").
		WithModel(model).
		WithTools(agentstesting.GetRecordingFunctionTool("get_weather", "sunny", &toolCalls))

	result, err := agents.Run(t.Context(), agent, "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", result.FinalOutput)
	assert.Equal(t, uint64(1), result.Turns)
	assert.Equal(t, 2, result.Conversation.Len())
	assert.Empty(t, toolCalls)
}

func TestRunToolCallsProcessedInOrder(t *testing.T) {
	var order []string
	mkTool := func(name string) agents.FunctionTool {
		return agents.FunctionTool{
			Name: name,
			OnInvokeTool: func(_ context.Context, args map[string]any) (any, error) {
				order = append(order, fmt.Sprintf("%s:%v", name, args["n"]))
				return map[string]any{"tool": name, "n": args["n"]}, nil
			},
		}
	}

	calls := []agents.ToolCallRequest{
		{ID: "c1", Name: "b", Arguments: `{"n":1}`},
		{ID: "c2", Name: "a", Arguments: `{"n":2}`},
		{ID: "c3", Name: "b", Arguments: `{"n":3}`},
	}
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("thinking", calls...)},
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("done")},
	)
	agent := agents.New("test").WithModel(model).WithTools(mkTool("a"), mkTool("b"))

	result, err := agents.Run(t.Context(), agent, "go")
	require.NoError(t, err)
	assert.Equal(t, []string{"b:1", "a:2", "b:3"}, order)

	msgs := result.Conversation.Messages()
	require.Len(t, msgs, 6)
	for i, call := range calls {
		m := msgs[2+i]
		assert.Equal(t, agents.RoleTool, m.Role)
		assert.Equal(t, call.ID, m.ToolCallID)
		assert.Equal(t, call.Name, m.ToolName)
	}
	assert.JSONEq(t, `{"tool":"b","n":1}`, msgs[2].Content)
	assert.JSONEq(t, `{"tool":"a","n":2}`, msgs[3].Content)
}

func TestRunToolResultIsJSONEncoded(t *testing.T) {
	type forecast struct {
		City string  `json:"city"`
		Temp float64 `json:"temp"`
	}
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("",
			agentstesting.GetFunctionToolCall("structured", `{}`),
			agentstesting.GetFunctionToolCall("nothing", `{}`),
			agentstesting.GetFunctionToolCall("html", `{}`),
		)},
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("ok")},
	)
	agent := agents.New("test").WithModel(model).WithTools(
		agentstesting.GetFunctionTool("structured", forecast{City: "Rio", Temp: 28}),
		agentstesting.GetFunctionTool("nothing", nil),
		agentstesting.GetFunctionTool("html", "<b>&</b>"),
	)

	result, err := agents.Run(t.Context(), agent, "go")
	require.NoError(t, err)

	msgs := result.Conversation.Messages()
	require.Len(t, msgs, 6)
	assert.Equal(t, `{"city":"Rio","temp":28}`, msgs[2].Content)
	assert.Equal(t, `null`, msgs[3].Content)
	assert.Equal(t, `"<b>&</b>"`, msgs[4].Content)
}

func TestRunModelErrorFailsRun(t *testing.T) {
	wantErr := agents.ModelInvocationError{Err: errors.New("401 unauthorized")}
	model := agentstesting.NewFakeModel(agentstesting.FakeModelTurnOutput{Error: wantErr})
	agent := agents.New("test").WithModel(model)

	_, err := agents.Run(t.Context(), agent, "go")
	var invErr agents.ModelInvocationError
	require.ErrorAs(t, err, &invErr)
	assert.EqualError(t, invErr.Err, "401 unauthorized")
}

func TestRunToolErrorFailsRun(t *testing.T) {
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("",
			agentstesting.GetFunctionToolCall("boom", `{}`),
		)},
	)
	agent := agents.New("test").WithModel(model).WithTools(
		agentstesting.GetFunctionToolErr("boom", errors.New("kaboom")),
	)

	_, err := agents.Run(t.Context(), agent, "go")
	assert.ErrorContains(t, err, "kaboom")
}

func TestRunInvalidToolArgumentsFailsRun(t *testing.T) {
	for _, args := range []string{`not json`, `{"unexpected": 1}`} {
		t.Run(args, func(t *testing.T) {
			model := agentstesting.NewFakeModel(
				agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("",
					agentstesting.GetFunctionToolCall("get_weather", args),
				)},
			)
			agent := agents.New("test").WithModel(model).WithTools(
				agentstesting.GetFunctionTool("get_weather", "sunny"),
			)

			_, err := agents.Run(t.Context(), agent, "go")
			var behaviorErr agents.ModelBehaviorError
			assert.ErrorAs(t, err, &behaviorErr)
		})
	}
}

// A model that always requests tools never lets the loop reach Done. The
// runner imposes no limit by default: these tests guard the boundary with
// MaxTurns and with context cancellation.
func TestRunModelAlwaysCallingTools(t *testing.T) {
	alwaysCall := func(turn int) agentstesting.FakeModelTurnOutput {
		return agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage(
			fmt.Sprintf("turn %d", turn),
			agentstesting.GetFunctionToolCall("get_weather", `{}`),
		)}
	}

	t.Run("unbounded by default", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		model := &agentstesting.FakeModel{Repeat: alwaysCall}
		const stopAfter = 50
		agent := agents.New("test").WithModel(model).WithTools(agents.FunctionTool{
			Name: "get_weather",
			OnInvokeTool: func(context.Context, map[string]any) (any, error) {
				if model.Calls >= stopAfter {
					cancel()
				}
				return "sunny", nil
			},
		})

		_, err := agents.Run(ctx, agent, "go")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, stopAfter, model.Calls)
	})

	t.Run("MaxTurns guard", func(t *testing.T) {
		model := &agentstesting.FakeModel{Repeat: alwaysCall}
		agent := agents.New("test").WithModel(model).WithTools(
			agentstesting.GetFunctionTool("get_weather", "sunny"),
		)

		_, err := agents.Runner{Config: agents.RunConfig{MaxTurns: 3}}.Run(t.Context(), agent, "go")
		var maxTurnsErr agents.MaxTurnsExceededError
		require.ErrorAs(t, err, &maxTurnsErr)
		assert.Equal(t, uint64(3), maxTurnsErr.MaxTurns)
		assert.Equal(t, 3, model.Calls)
	})
}

func TestRunMaxTurnsNotHitWhenAnswered(t *testing.T) {
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("",
			agentstesting.GetFunctionToolCall("get_weather", `{}`),
		)},
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("done")},
	)
	agent := agents.New("test").WithModel(model).WithTools(
		agentstesting.GetFunctionTool("get_weather", "sunny"),
	)

	result, err := agents.Runner{Config: agents.RunConfig{MaxTurns: 2}}.Run(t.Context(), agent, "go")
	require.NoError(t, err)
	assert.Equal(t, "done", result.FinalOutput)
}

func TestRunModelSettings(t *testing.T) {
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("ok")},
	)
	agent := agents.New("test").
		WithModel(model).
		WithModelSettings(modelsettings.ModelSettings{Temperature: param.NewOpt(0.0)})

	runner := agents.Runner{Config: agents.RunConfig{
		ModelSettings: modelsettings.ModelSettings{MaxTokens: param.NewOpt[int64](64)},
	}}
	_, err := runner.Run(t.Context(), agent, "go")
	require.NoError(t, err)

	assert.Equal(t, modelsettings.ModelSettings{
		Temperature: param.NewOpt(0.0),
		MaxTokens:   param.NewOpt[int64](64),
	}, model.LastTurnArgs.ModelSettings)
}

func TestRunUsageIsAccumulated(t *testing.T) {
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("",
			agentstesting.GetFunctionToolCall("get_weather", `{}`),
		)},
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("done")},
	)
	model.SetHardcodedUsage(usage.Usage{Requests: 1, InputTokens: 10, OutputTokens: 5, TotalTokens: 15})
	agent := agents.New("test").WithModel(model).WithTools(
		agentstesting.GetFunctionTool("get_weather", "sunny"),
	)

	result, err := agents.Run(t.Context(), agent, "go")
	require.NoError(t, err)
	assert.Equal(t, &usage.Usage{Requests: 2, InputTokens: 20, OutputTokens: 10, TotalTokens: 30}, result.Usage)
}

func TestRunRejectsInvalidInput(t *testing.T) {
	var userErr agents.UserError

	_, err := agents.Run(t.Context(), nil, "go")
	assert.ErrorAs(t, err, &userErr)

	_, err = agents.Run(t.Context(), agents.New("no model"), "go")
	assert.ErrorAs(t, err, &userErr)

	agent := agents.New("dup").
		WithModel(agentstesting.NewFakeModel()).
		WithTools(agentstesting.GetFunctionTool("x", 1), agentstesting.GetFunctionTool("x", 2))
	_, err = agents.Run(t.Context(), agent, "go")
	assert.ErrorAs(t, err, &userErr)

	dangling := agents.NewConversation(
		agents.UserMessage("hi"),
		agents.ToolResultMessage(agents.ToolCallRequest{ID: "orphan", Name: "x"}, `"x"`),
	)
	_, err = agents.DefaultRunner.RunConversation(t.Context(), agents.New("a").WithModel(agentstesting.NewFakeModel()), dangling)
	assert.ErrorAs(t, err, &userErr)
}

type recordingHooks struct {
	agents.NoOpRunHooks
	events []string
}

func (h *recordingHooks) OnAgentTurn(_ context.Context, _ *agents.Agent, turn uint64) error {
	h.events = append(h.events, fmt.Sprintf("turn %d", turn))
	return nil
}

func (h *recordingHooks) OnToolStart(_ context.Context, _ *agents.Agent, call agents.ToolCallRequest) error {
	h.events = append(h.events, "start "+call.Name)
	return nil
}

func (h *recordingHooks) OnToolEnd(_ context.Context, _ *agents.Agent, call agents.ToolCallRequest, result any) error {
	h.events = append(h.events, fmt.Sprintf("end %s %v", call.Name, result))
	return nil
}

func (h *recordingHooks) OnAgentEnd(_ context.Context, _ *agents.Agent, output string) error {
	h.events = append(h.events, "final "+output)
	return nil
}

func TestRunHooks(t *testing.T) {
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetToolCallMessage("",
			agentstesting.GetFunctionToolCall("get_weather", `{}`),
		)},
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("done")},
	)
	agent := agents.New("test").WithModel(model).WithTools(
		agentstesting.GetFunctionTool("get_weather", "sunny"),
	)

	hooks := &recordingHooks{}
	_, err := agents.Runner{Config: agents.RunConfig{Hooks: hooks}}.Run(t.Context(), agent, "go")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"turn 1",
		"start get_weather",
		"end get_weather sunny",
		"turn 2",
		"final done",
	}, hooks.events)
}

func TestRunWithoutInstructions(t *testing.T) {
	model := agentstesting.NewFakeModel(
		agentstesting.FakeModelTurnOutput{Value: agentstesting.GetTextMessage("ok")},
	)
	agent := agents.New("test").WithModel(model).WithInstructions("")

	_, err := agents.Run(t.Context(), agent, "go")
	require.NoError(t, err)
	assert.False(t, model.LastTurnArgs.SystemInstructions.Valid())
}
