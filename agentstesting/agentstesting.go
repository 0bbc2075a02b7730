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

package agentstesting

import (
	"context"

	"github.com/google/uuid"
	"github.com/nlpodyssey/weather-agent-go/agents"
)

func GetTextMessage(content string) agents.Message {
	return agents.AssistantMessage(content)
}

// GetFunctionToolCall builds a tool call request with a random call ID.
func GetFunctionToolCall(name string, arguments string) agents.ToolCallRequest {
	return agents.ToolCallRequest{
		ID:        "call_" + uuid.NewString(),
		Name:      name,
		Arguments: arguments,
	}
}

// GetToolCallMessage builds an assistant message requesting the given calls.
func GetToolCallMessage(content string, calls ...agents.ToolCallRequest) agents.Message {
	return agents.AssistantMessage(content, calls...)
}

func emptyArgsSchema(name string) map[string]any {
	return map[string]any{
		"title":                name + "_args",
		"type":                 "object",
		"additionalProperties": false,
		"properties":           map[string]any{},
	}
}

func GetFunctionTool(name string, returnValue any) agents.FunctionTool {
	return agents.FunctionTool{
		Name:             name,
		ParamsJSONSchema: emptyArgsSchema(name),
		OnInvokeTool: func(context.Context, map[string]any) (any, error) {
			return returnValue, nil
		},
	}
}

func GetFunctionToolErr(name string, returnErr error) agents.FunctionTool {
	return agents.FunctionTool{
		Name:             name,
		ParamsJSONSchema: emptyArgsSchema(name),
		OnInvokeTool: func(context.Context, map[string]any) (any, error) {
			return nil, returnErr
		},
	}
}

// GetRecordingFunctionTool is like GetFunctionTool, and additionally
// appends the arguments of every invocation to calls.
func GetRecordingFunctionTool(name string, returnValue any, calls *[]map[string]any) agents.FunctionTool {
	return agents.FunctionTool{
		Name: name,
		ParamsJSONSchema: map[string]any{
			"title": name + "_args",
			"type":  "object",
		},
		OnInvokeTool: func(_ context.Context, args map[string]any) (any, error) {
			*calls = append(*calls, args)
			return returnValue, nil
		},
	}
}
