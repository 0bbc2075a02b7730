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
	"encoding/json"
	"strings"
)

// Role identifies the author of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single entry of a chat transcript.
//
// Which of the optional fields are meaningful depends on Role:
// ToolCalls is only set on assistant messages, while ToolName and
// ToolCallID are only set on tool result messages.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Tool invocations requested by the model, in the order they were issued.
	ToolCalls []ToolCallRequest `json:"tool_calls,omitempty"`

	// The name of the tool that produced this result.
	ToolName string `json:"name,omitempty"`

	// The ID of the ToolCallRequest this result answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string, toolCalls ...ToolCallRequest) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: toolCalls}
}

// ToolResultMessage builds the tool message answering call.
func ToolResultMessage(call ToolCallRequest, content string) Message {
	return Message{
		Role:       RoleTool,
		Content:    content,
		ToolName:   call.Name,
		ToolCallID: call.ID,
	}
}

// HasToolCalls reports whether m is an assistant message requesting at least one tool call.
func (m Message) HasToolCalls() bool {
	return m.Role == RoleAssistant && len(m.ToolCalls) > 0
}

// ToolCallRequest is a request, issued by the model, to invoke a tool.
type ToolCallRequest struct {
	// Unique within the assistant message that issued it.
	ID string `json:"id"`

	// The name of the tool to invoke.
	Name string `json:"name"`

	// The arguments, as a JSON object text.
	Arguments string `json:"arguments"`
}

// ParsedArguments decodes the arguments into a key-value map.
// Blank arguments are treated as an empty object.
func (r ToolCallRequest) ParsedArguments() (map[string]any, error) {
	args := make(map[string]any)
	if strings.TrimSpace(r.Arguments) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(r.Arguments), &args); err != nil {
		return nil, ModelBehaviorErrorf("invalid JSON arguments for tool %q: %w", r.Name, err)
	}
	return args, nil
}
