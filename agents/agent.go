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
	"github.com/nlpodyssey/weather-agent-go/modelsettings"
)

// DefaultInstructions is the system prompt sent before every model call
// when an Agent has no explicit instructions.
const DefaultInstructions = "You are a helpful AI assistant, please respond to the users query to the best of your ability!"

// An Agent is a model configured with instructions and tools.
type Agent struct {
	// The name of the agent.
	Name string

	// The system prompt. It is not stored in the conversation: the model
	// receives it in front of the transcript on every turn.
	Instructions string

	// The model implementation to use when invoking the LLM.
	Model Model

	// Configures model-specific tuning parameters (e.g. temperature, top_p).
	ModelSettings modelsettings.ModelSettings

	// A list of tools that the agent can use.
	Tools []Tool
}

// New creates a new Agent with the given name and the default instructions.
func New(name string) *Agent {
	return &Agent{
		Name:         name,
		Instructions: DefaultInstructions,
	}
}

// WithInstructions sets the agent instructions.
func (a *Agent) WithInstructions(instr string) *Agent {
	a.Instructions = instr
	return a
}

// WithModel sets the model instance.
func (a *Agent) WithModel(m Model) *Agent {
	a.Model = m
	return a
}

// WithModelSettings sets model-specific settings.
func (a *Agent) WithModelSettings(settings modelsettings.ModelSettings) *Agent {
	a.ModelSettings = settings
	return a
}

// WithTools sets the list of tools available to the agent.
func (a *Agent) WithTools(t ...Tool) *Agent {
	a.Tools = t
	return a
}
