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
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToolChoice(t *testing.T) {
	conv := ChatCmplConverter()

	assert.Equal(t, openai.ChatCompletionToolChoiceOptionUnionParam{}, conv.ConvertToolChoice(""))

	for _, mode := range []string{"auto", "required", "none"} {
		got := conv.ConvertToolChoice(mode)
		assert.Equal(t, param.NewOpt(mode), got.OfAuto)
		assert.Nil(t, got.OfFunctionToolChoice)
	}

	got := conv.ConvertToolChoice("get_weather")
	require.NotNil(t, got.OfFunctionToolChoice)
	assert.Equal(t, "get_weather", got.OfFunctionToolChoice.Function.Name)
}

func TestMessageToAssistantMessage(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Content: "Hi",
		ToolCalls: []openai.ChatCompletionMessageToolCallUnion{{
			ID: "tool1",
			Function: openai.ChatCompletionMessageFunctionToolCallFunction{
				Name:      "my_func",
				Arguments: `{"x":1}`,
			},
			Type: "function",
		}},
		Role: constant.ValueOf[constant.Assistant](),
	}

	got := ChatCmplConverter().MessageToAssistantMessage(msg)
	assert.Equal(t, AssistantMessage("Hi", ToolCallRequest{
		ID:        "tool1",
		Name:      "my_func",
		Arguments: `{"x":1}`,
	}), got)
}

func TestMessagesToParams(t *testing.T) {
	conv := ChatCmplConverter()

	t.Run("roles", func(t *testing.T) {
		call := ToolCallRequest{ID: "c1", Name: "f"}
		got, err := conv.MessagesToParams([]Message{
			SystemMessage("sys"),
			UserMessage("u"),
			AssistantMessage("a", call),
			ToolResultMessage(call, "r"),
		})
		require.NoError(t, err)
		require.Len(t, got, 4)

		require.NotNil(t, got[0].OfSystem)
		assert.Equal(t, param.NewOpt("sys"), got[0].OfSystem.Content.OfString)
		require.NotNil(t, got[1].OfUser)
		assert.Equal(t, param.NewOpt("u"), got[1].OfUser.Content.OfString)

		require.NotNil(t, got[2].OfAssistant)
		assert.Equal(t, param.NewOpt("a"), got[2].OfAssistant.Content.OfString)
		require.Len(t, got[2].OfAssistant.ToolCalls, 1)
		fn := got[2].OfAssistant.ToolCalls[0].OfFunction
		require.NotNil(t, fn)
		assert.Equal(t, "c1", fn.ID)
		assert.Equal(t, "f", fn.Function.Name)
		assert.Equal(t, "{}", fn.Function.Arguments, "blank arguments are sent as an empty object")

		require.NotNil(t, got[3].OfTool)
		assert.Equal(t, "c1", got[3].OfTool.ToolCallID)
		assert.Equal(t, param.NewOpt("r"), got[3].OfTool.Content.OfString)
	})

	t.Run("errors", func(t *testing.T) {
		var userErr UserError

		_, err := conv.MessagesToParams([]Message{{Role: "narrator", Content: "x"}})
		assert.ErrorAs(t, err, &userErr)

		_, err = conv.MessagesToParams([]Message{{Role: RoleTool, Content: "x"}})
		assert.ErrorAs(t, err, &userErr)
	})
}
