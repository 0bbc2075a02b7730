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
	"slices"

	"github.com/nlpodyssey/weather-agent-go/agents"
	"github.com/nlpodyssey/weather-agent-go/modelsettings"
	"github.com/nlpodyssey/weather-agent-go/usage"
	"github.com/openai/openai-go/v3/packages/param"
)

// FakeModel replays scripted turn outputs, one per GetResponse call.
// Once the script is exhausted it answers with an empty assistant message.
type FakeModel struct {
	TurnOutputs    []FakeModelTurnOutput
	LastTurnArgs   FakeModelLastTurnArgs
	Calls          int
	HardcodedUsage *usage.Usage

	// When set, it is used instead of TurnOutputs to produce every turn.
	Repeat func(turn int) FakeModelTurnOutput
}

type FakeModelTurnOutput struct {
	Value agents.Message
	Error error
}

type FakeModelLastTurnArgs struct {
	SystemInstructions param.Opt[string]
	Input              []agents.Message
	ModelSettings      modelsettings.ModelSettings
	Tools              []agents.Tool
}

func NewFakeModel(outputs ...FakeModelTurnOutput) *FakeModel {
	return &FakeModel{TurnOutputs: slices.Clone(outputs)}
}

func (m *FakeModel) SetHardcodedUsage(u usage.Usage) {
	m.HardcodedUsage = &u
}

func (m *FakeModel) SetNextOutput(output FakeModelTurnOutput) {
	m.TurnOutputs = append(m.TurnOutputs, output)
}

func (m *FakeModel) AddMultipleTurnOutputs(outputs []FakeModelTurnOutput) {
	m.TurnOutputs = append(m.TurnOutputs, outputs...)
}

func (m *FakeModel) GetNextOutput() FakeModelTurnOutput {
	if m.Repeat != nil {
		return m.Repeat(m.Calls)
	}
	if len(m.TurnOutputs) == 0 {
		return FakeModelTurnOutput{Value: agents.AssistantMessage("")}
	}
	v := m.TurnOutputs[0]
	m.TurnOutputs = m.TurnOutputs[1:]
	return v
}

func (m *FakeModel) GetResponse(_ context.Context, params agents.ModelResponseParams) (*agents.ModelResponse, error) {
	m.Calls++
	m.LastTurnArgs = FakeModelLastTurnArgs{
		SystemInstructions: params.SystemInstructions,
		Input:              slices.Clone(params.Input),
		ModelSettings:      params.ModelSettings,
		Tools:              params.Tools,
	}

	output := m.GetNextOutput()
	if output.Error != nil {
		return nil, output.Error
	}

	u := m.HardcodedUsage
	if u == nil {
		u = &usage.Usage{Requests: 1}
	} else {
		c := *u
		u = &c
	}

	return &agents.ModelResponse{
		Output:     output.Value,
		Usage:      u,
		ResponseID: "",
	}, nil
}
