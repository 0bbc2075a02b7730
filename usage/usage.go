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

package usage

import (
	"github.com/openai/openai-go/v3"
)

type Usage struct {
	// Total requests made to the LLM API.
	Requests uint64

	// Total input tokens sent, across all requests.
	InputTokens uint64

	// Input tokens served from the prompt cache.
	CachedInputTokens uint64

	// Total output tokens received, across all requests.
	OutputTokens uint64

	// Output tokens spent on reasoning.
	ReasoningOutputTokens uint64

	// Total tokens sent and received, across all requests.
	TotalTokens uint64
}

func NewUsage() *Usage {
	return new(Usage)
}

// FromCompletionUsage converts the usage block of one chat completion.
func FromCompletionUsage(u openai.CompletionUsage) *Usage {
	return &Usage{
		Requests:              1,
		InputTokens:           uint64(u.PromptTokens),
		CachedInputTokens:     uint64(u.PromptTokensDetails.CachedTokens),
		OutputTokens:          uint64(u.CompletionTokens),
		ReasoningOutputTokens: uint64(u.CompletionTokensDetails.ReasoningTokens),
		TotalTokens:           uint64(u.TotalTokens),
	}
}

func (u *Usage) Add(other *Usage) {
	if other == nil {
		return
	}
	u.Requests += other.Requests
	u.InputTokens += other.InputTokens
	u.CachedInputTokens += other.CachedInputTokens
	u.OutputTokens += other.OutputTokens
	u.ReasoningOutputTokens += other.ReasoningOutputTokens
	u.TotalTokens += other.TotalTokens
}
