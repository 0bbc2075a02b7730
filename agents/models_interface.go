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

	"github.com/nlpodyssey/weather-agent-go/modelsettings"
	"github.com/nlpodyssey/weather-agent-go/usage"
	"github.com/openai/openai-go/v3/packages/param"
)

// Model is the base interface for calling an LLM.
type Model interface {
	// GetResponse sends the transcript and tool declarations to the model and
	// returns exactly one assistant message.
	GetResponse(context.Context, ModelResponseParams) (*ModelResponse, error)
}

type ModelResponseParams struct {
	// The system instructions to use, prepended to the transcript.
	SystemInstructions param.Opt[string]

	// The full transcript so far.
	Input []Message

	// The model settings to use.
	ModelSettings modelsettings.ModelSettings

	// The tools available to the model.
	Tools []Tool
}

type ModelResponse struct {
	// The assistant message produced by the model.
	Output Message

	// The usage information for the response.
	Usage *usage.Usage

	// An ID for the response which can be used to refer to the response in
	// logs. Empty if the provider does not return one.
	ResponseID string
}
