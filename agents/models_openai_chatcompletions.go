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
	"log/slog"
	"reflect"
	"slices"

	"github.com/nlpodyssey/weather-agent-go/modelsettings"
	"github.com/nlpodyssey/weather-agent-go/usage"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared/constant"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel openai.ChatModel = "gpt-3.5-turbo-1106"

type OpenaiClient struct {
	openai.Client
	BaseURL param.Opt[string]
}

// NewOpenaiClient creates a client. The API key, unless given as an option,
// is read by the SDK from the OPENAI_API_KEY environment variable.
func NewOpenaiClient(baseURL param.Opt[string], opts ...option.RequestOption) OpenaiClient {
	if baseURL.Valid() {
		opts = append(slices.Clone(opts), option.WithBaseURL(baseURL.Value))
	}
	return OpenaiClient{
		Client:  openai.NewClient(opts...),
		BaseURL: baseURL,
	}
}

type OpenAIChatCompletionsModel struct {
	Model  openai.ChatModel
	client OpenaiClient
}

func NewOpenAIChatCompletionsModel(model openai.ChatModel, client OpenaiClient) OpenAIChatCompletionsModel {
	if model == "" {
		model = DefaultModel
	}
	return OpenAIChatCompletionsModel{
		Model:  model,
		client: client,
	}
}

func (m OpenAIChatCompletionsModel) GetResponse(ctx context.Context, params ModelResponseParams) (*ModelResponse, error) {
	body, opts, err := m.prepareRequest(params.SystemInstructions, params.Input, params.ModelSettings, params.Tools)
	if err != nil {
		return nil, err
	}

	response, err := m.client.Chat.Completions.New(ctx, *body, opts...)
	if err != nil {
		return nil, ModelInvocationError{Err: err}
	}
	if len(response.Choices) == 0 {
		return nil, NewModelBehaviorError("chat completion response has no choices")
	}

	if DontLogModelData {
		Logger().Debug("LLM responded")
	} else {
		Logger().Debug("LLM responded", slog.String("message", SimplePrettyJSONMarshal(response.Choices[0].Message)))
	}

	u := usage.NewUsage()
	if !reflect.ValueOf(response.Usage).IsZero() {
		u = usage.FromCompletionUsage(response.Usage)
	} else {
		u.Requests = 1
	}

	return &ModelResponse{
		Output:     ChatCmplConverter().MessageToAssistantMessage(response.Choices[0].Message),
		Usage:      u,
		ResponseID: response.ID,
	}, nil
}

func (m OpenAIChatCompletionsModel) prepareRequest(
	systemInstructions param.Opt[string],
	input []Message,
	modelSettings modelsettings.ModelSettings,
	tools []Tool,
) (*openai.ChatCompletionNewParams, []option.RequestOption, error) {
	convertedMessages, err := ChatCmplConverter().MessagesToParams(input)
	if err != nil {
		return nil, nil, err
	}

	if systemInstructions.Valid() {
		convertedMessages = slices.Insert(convertedMessages, 0, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: param.NewOpt(systemInstructions.Value),
				},
				Role: constant.ValueOf[constant.System](),
			},
		})
	}

	var parallelToolCalls param.Opt[bool]
	if modelSettings.ParallelToolCalls.Valid() {
		if modelSettings.ParallelToolCalls.Value && len(tools) > 0 {
			parallelToolCalls = param.NewOpt(true)
		} else if !modelSettings.ParallelToolCalls.Value {
			parallelToolCalls = param.NewOpt(false)
		}
	}

	toolChoice := ChatCmplConverter().ConvertToolChoice(modelSettings.ToolChoice)

	var convertedTools []openai.ChatCompletionToolUnionParam
	for _, tool := range tools {
		convertedTools = append(convertedTools, ChatCmplConverter().ToolToOpenai(tool))
	}

	if DontLogModelData {
		Logger().Debug("Calling LLM")
	} else {
		Logger().Debug(
			"Calling LLM",
			slog.String("Messages", SimplePrettyJSONMarshal(convertedMessages)),
			slog.String("Tools", SimplePrettyJSONMarshal(convertedTools)),
			slog.String("Tool choice", SimplePrettyJSONMarshal(toolChoice)),
		)
	}

	params := &openai.ChatCompletionNewParams{
		Model:             m.Model,
		Messages:          convertedMessages,
		Tools:             convertedTools,
		Temperature:       modelSettings.Temperature,
		TopP:              modelSettings.TopP,
		MaxTokens:         modelSettings.MaxTokens,
		ToolChoice:        toolChoice,
		ParallelToolCalls: parallelToolCalls,
		Metadata:          modelSettings.Metadata,
	}

	var opts []option.RequestOption
	for k, v := range modelSettings.ExtraHeaders {
		opts = append(opts, option.WithHeader(k, v))
	}
	return params, opts, nil
}
