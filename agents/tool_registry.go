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
	"slices"

	"github.com/xeipuuv/gojsonschema"
)

// ToolRegistry maps tool names to tools. It is built once and then only read.
type ToolRegistry struct {
	tools   []Tool
	byName  map[string]Tool
	schemas map[string]*gojsonschema.Schema
}

// NewToolRegistry builds a registry from the given tools.
// Tool names must be non-empty and unique.
func NewToolRegistry(tools ...Tool) (*ToolRegistry, error) {
	r := &ToolRegistry{
		tools:   make([]Tool, 0, len(tools)),
		byName:  make(map[string]Tool, len(tools)),
		schemas: make(map[string]*gojsonschema.Schema, len(tools)),
	}
	for _, tool := range tools {
		name := tool.ToolName()
		if name == "" {
			return nil, NewUserError("tool name must not be empty")
		}
		if _, ok := r.byName[name]; ok {
			return nil, UserErrorf("duplicate tool name %q", name)
		}
		if s := tool.ToolParamsJSONSchema(); s != nil {
			compiled, err := CompileJSONSchema(s)
			if err != nil {
				return nil, UserErrorf("invalid parameters JSON schema for tool %q: %w", name, err)
			}
			r.schemas[name] = compiled
		}
		r.tools = append(r.tools, tool)
		r.byName[name] = tool
	}
	return r, nil
}

// Tools returns the registered tools in registration order.
func (r *ToolRegistry) Tools() []Tool {
	return slices.Clone(r.tools)
}

// Lookup returns the tool with the given name.
func (r *ToolRegistry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Dispatch invokes the tool requested by call and returns its result as-is.
//
// It fails with ToolNotFoundError if no tool has the requested name, and with
// ModelBehaviorError if the arguments are not valid JSON or do not match the
// tool schema.
func (r *ToolRegistry) Dispatch(ctx context.Context, call ToolCallRequest) (any, error) {
	tool, ok := r.byName[call.Name]
	if !ok {
		return nil, ToolNotFoundError{Name: call.Name}
	}

	args, err := call.ParsedArguments()
	if err != nil {
		return nil, err
	}
	if schema, ok := r.schemas[call.Name]; ok {
		if err = ValidateJSON(schema, args); err != nil {
			return nil, ModelBehaviorErrorf("invalid arguments for tool %q: %w", call.Name, err)
		}
	}

	if DontLogToolData {
		Logger().Debug("Invoking tool", slog.String("name", call.Name))
	} else {
		Logger().Debug("Invoking tool", slog.String("name", call.Name), slog.String("args", call.Arguments))
	}

	result, err := tool.Invoke(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("error running tool %q: %w", call.Name, err)
	}
	return result, nil
}
