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

package modelsettings

import (
	"maps"

	"github.com/openai/openai-go/v3/packages/param"
)

// ModelSettings holds settings to use when calling an LLM.
//
// Not all models/providers support all of these parameters, so please check
// the API documentation for the specific model and provider you are using.
type ModelSettings struct {
	// The temperature to use when calling the model.
	Temperature param.Opt[float64] `json:"temperature"`

	// The top_p to use when calling the model.
	TopP param.Opt[float64] `json:"top_p"`

	// Optional tool choice to use when calling the model:
	// "auto", "required", "none", or the name of a specific tool.
	ToolChoice string `json:"tool_choice"`

	// Controls whether the model can make multiple parallel tool calls in a single turn.
	// If not provided, this behavior defers to the underlying model provider's default.
	ParallelToolCalls param.Opt[bool] `json:"parallel_tool_calls"`

	// The maximum number of output tokens to generate.
	MaxTokens param.Opt[int64] `json:"max_tokens"`

	// Optional metadata to include with the model response call.
	Metadata map[string]string `json:"metadata"`

	// Additional headers to provide with the request.
	ExtraHeaders map[string]string `json:"extra_headers"`
}

// Resolve produces a new ModelSettings by overlaying any present values from
// the override on top of this instance.
func (ms ModelSettings) Resolve(override ModelSettings) ModelSettings {
	newSettings := ms

	if override.Temperature.Valid() {
		newSettings.Temperature = override.Temperature
	}
	if override.TopP.Valid() {
		newSettings.TopP = override.TopP
	}
	if override.ToolChoice != "" {
		newSettings.ToolChoice = override.ToolChoice
	}
	if override.ParallelToolCalls.Valid() {
		newSettings.ParallelToolCalls = override.ParallelToolCalls
	}
	if override.MaxTokens.Valid() {
		newSettings.MaxTokens = override.MaxTokens
	}
	if override.Metadata != nil {
		newSettings.Metadata = maps.Clone(override.Metadata)
	}
	if override.ExtraHeaders != nil {
		newSettings.ExtraHeaders = maps.Clone(override.ExtraHeaders)
	}

	return newSettings
}
