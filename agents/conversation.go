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
	"slices"
)

// Conversation is the append-only transcript of a single run.
// Insertion order is the chat order.
//
// A Conversation is owned by one run and is not safe for concurrent use.
type Conversation struct {
	messages []Message
}

func NewConversation(messages ...Message) *Conversation {
	return &Conversation{messages: slices.Clone(messages)}
}

func (c *Conversation) Append(messages ...Message) {
	c.messages = append(c.messages, messages...)
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []Message {
	return slices.Clone(c.messages)
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message, if any.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Validate checks that every tool result answers a call issued by the
// assistant message right before its batch of results.
func (c *Conversation) Validate() error {
	var pending map[string]struct{}
	for i, m := range c.messages {
		switch m.Role {
		case RoleTool:
			if pending == nil {
				return UserErrorf("message %d: tool result %q does not follow an assistant message with tool calls", i, m.ToolCallID)
			}
			if _, ok := pending[m.ToolCallID]; !ok {
				return UserErrorf("message %d: tool result %q does not match any pending tool call", i, m.ToolCallID)
			}
			delete(pending, m.ToolCallID)
		case RoleAssistant:
			pending = make(map[string]struct{}, len(m.ToolCalls))
			for _, tc := range m.ToolCalls {
				pending[tc.ID] = struct{}{}
			}
		default:
			pending = nil
		}
	}
	return nil
}
