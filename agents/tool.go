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

	"github.com/mitchellh/mapstructure"
)

// A Tool that can be used in an agent.
type Tool interface {
	// ToolName returns the name of the tool, as shown to the LLM.
	ToolName() string

	// ToolDescription returns the description shown to the LLM for tool selection.
	ToolDescription() string

	// ToolParamsJSONSchema returns the JSON schema of the tool arguments.
	ToolParamsJSONSchema() map[string]any

	// Invoke runs the tool with the arguments supplied by the model.
	Invoke(ctx context.Context, arguments map[string]any) (any, error)
}

// FunctionTool is a tool that wraps a function.
type FunctionTool struct {
	// The name of the tool, as shown to the LLM. Generally the name of the function.
	Name string

	// A description of the tool, as shown to the LLM.
	Description string

	// The JSON schema for the tool's parameters.
	ParamsJSONSchema map[string]any

	// A function that invokes the tool with the arguments from the LLM.
	//
	// The returned value is JSON-encoded before being sent back to the LLM.
	// Returning an error fails the whole run: tools that want the model to
	// see a failure should return a descriptive value instead.
	OnInvokeTool func(ctx context.Context, arguments map[string]any) (any, error)
}

func (t FunctionTool) ToolName() string                     { return t.Name }
func (t FunctionTool) ToolDescription() string              { return t.Description }
func (t FunctionTool) ToolParamsJSONSchema() map[string]any { return t.ParamsJSONSchema }

func (t FunctionTool) Invoke(ctx context.Context, arguments map[string]any) (any, error) {
	if t.OnInvokeTool == nil {
		return nil, UserErrorf("tool %q has no OnInvokeTool function", t.Name)
	}
	return t.OnInvokeTool(ctx, arguments)
}

// NewFunctionTool creates a FunctionTool from a function taking a typed
// arguments struct.
//
// The parameters schema is reflected from T, using its `json` and
// `jsonschema` struct tags. At invocation, the argument map is decoded into
// a fresh T, matching map keys against the `json` tags.
func NewFunctionTool[T any](name, description string, handler func(context.Context, T) (any, error)) (FunctionTool, error) {
	if name == "" {
		return FunctionTool{}, NewUserError("function tool name must not be empty")
	}
	schema, err := JSONSchemaFor[T]()
	if err != nil {
		return FunctionTool{}, fmt.Errorf("failed to build JSON schema for tool %q: %w", name, err)
	}
	return FunctionTool{
		Name:             name,
		Description:      description,
		ParamsJSONSchema: schema,
		OnInvokeTool: func(ctx context.Context, arguments map[string]any) (any, error) {
			var args T
			if err := DecodeArguments(arguments, &args); err != nil {
				return nil, ModelBehaviorErrorf("failed to parse arguments for tool %q: %w", name, err)
			}
			return handler(ctx, args)
		},
	}, nil
}

// DecodeArguments decodes a tool argument map into out, which must be a
// pointer to a struct with `json` tags.
func DecodeArguments(arguments map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(arguments)
}
