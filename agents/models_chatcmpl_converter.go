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
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared/constant"
)

type chatCmplConverter struct{}

func ChatCmplConverter() chatCmplConverter { return chatCmplConverter{} }

func (chatCmplConverter) ConvertToolChoice(toolChoice string) openai.ChatCompletionToolChoiceOptionUnionParam {
	switch toolChoice {
	case "":
		return openai.ChatCompletionToolChoiceOptionUnionParam{}
	case "auto", "required", "none":
		return openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: param.NewOpt(toolChoice),
		}
	default:
		return openai.ChatCompletionToolChoiceOptionUnionParam{
			OfFunctionToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{
					Name: toolChoice,
				},
				Type: constant.ValueOf[constant.Function](),
			},
		}
	}
}

// MessageToAssistantMessage converts the message of a chat completion choice.
// Refusals are surfaced as the message content.
func (chatCmplConverter) MessageToAssistantMessage(message openai.ChatCompletionMessage) Message {
	content := message.Content
	if content == "" && message.Refusal != "" {
		content = message.Refusal
	}

	var toolCalls []ToolCallRequest
	for _, toolCall := range message.ToolCalls {
		toolCalls = append(toolCalls, ToolCallRequest{
			ID:        toolCall.ID,
			Name:      toolCall.Function.Name,
			Arguments: toolCall.Function.Arguments,
		})
	}

	return AssistantMessage(content, toolCalls...)
}

// MessagesToParams converts a transcript into chat completion messages.
func (conv chatCmplConverter) MessagesToParams(messages []Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, m := range messages {
		switch m.Role {
		case RoleSystem:
			result = append(result, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: param.NewOpt(m.Content),
					},
					Role: constant.ValueOf[constant.System](),
				},
			})
		case RoleUser:
			result = append(result, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: param.NewOpt(m.Content),
					},
					Role: constant.ValueOf[constant.User](),
				},
			})
		case RoleAssistant:
			result = append(result, openai.ChatCompletionMessageParamUnion{
				OfAssistant: conv.assistantMessageParam(m),
			})
		case RoleTool:
			if m.ToolCallID == "" {
				return nil, UserErrorf("message %d: tool result without tool call ID", i)
			}
			result = append(result, openai.ChatCompletionMessageParamUnion{
				OfTool: &openai.ChatCompletionToolMessageParam{
					Content: openai.ChatCompletionToolMessageParamContentUnion{
						OfString: param.NewOpt(m.Content),
					},
					ToolCallID: m.ToolCallID,
					Role:       constant.ValueOf[constant.Tool](),
				},
			})
		default:
			return nil, UserErrorf("message %d: unexpected role %q", i, m.Role)
		}
	}
	return result, nil
}

func (chatCmplConverter) assistantMessageParam(m Message) *openai.ChatCompletionAssistantMessageParam {
	asst := &openai.ChatCompletionAssistantMessageParam{
		Role: constant.ValueOf[constant.Assistant](),
	}
	if m.Content != "" {
		asst.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
			OfString: param.NewOpt(m.Content),
		}
	}
	for _, tc := range m.ToolCalls {
		arguments := tc.Arguments
		if arguments == "" {
			arguments = "{}"
		}
		asst.ToolCalls = append(asst.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
				ID: tc.ID,
				Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
					Name:      tc.Name,
					Arguments: arguments,
				},
				Type: constant.ValueOf[constant.Function](),
			},
		})
	}
	return asst
}

func (chatCmplConverter) ToolToOpenai(tool Tool) openai.ChatCompletionToolUnionParam {
	var description param.Opt[string]
	if d := tool.ToolDescription(); d != "" {
		description = param.NewOpt(d)
	}

	return openai.ChatCompletionFunctionTool(
		openai.FunctionDefinitionParam{
			Name:        tool.ToolName(),
			Description: description,
			Parameters:  tool.ToolParamsJSONSchema(),
		},
	)
}
