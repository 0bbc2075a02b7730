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

// Package weather implements a weather lookup tool backed by the wttr.in
// plain text service.
//
// Lookups are a single best-effort GET: there is no retry, no caching and
// no client-side timeout. Callers that need a deadline must put it on the
// context.
package weather

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nlpodyssey/weather-agent-go/agents"
)

// DefaultBaseURL is the wttr.in endpoint.
const DefaultBaseURL = "http://wttr.in"

// ToolName is the name under which the lookup is exposed to the model.
const ToolName = "get_weather"

// Client queries a wttr.in compatible service.
type Client struct {
	// BaseURL is the service root, without trailing slash.
	BaseURL string

	// HTTPClient defaults to a client with no timeout.
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// FailureMessage is the text returned in place of a forecast when the
// service cannot be reached or does not answer 200.
func FailureMessage(location string) string {
	return fmt.Sprintf("Não consegui obter o clima para %s.", location)
}

// URL returns the request URL for location, in the compact one-line format.
// The location is embedded in the path verbatim.
func (c *Client) URL(location string) string {
	return c.BaseURL + "/" + location + "?format=3"
}

// Lookup returns the one-line forecast for location.
//
// It never fails: any transport error or non-200 status yields
// FailureMessage(location), so that the model always has some text to
// reason over.
func (c *Client) Lookup(ctx context.Context, location string) string {
	logger := agents.Logger().With(slog.String("location", location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(location), nil)
	if err != nil {
		logger.Warn("Failed to build weather request", slog.String("error", err.Error()))
		return FailureMessage(location)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Warn("Weather request failed", slog.String("error", err.Error()))
		return FailureMessage(location)
	}
	defer func() {
		if e := resp.Body.Close(); e != nil {
			logger.Warn("Failed to close weather response body", slog.String("error", e.Error()))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Weather service returned an error", slog.Int("status", resp.StatusCode))
		return FailureMessage(location)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("Failed to read weather response", slog.String("error", err.Error()))
		return FailureMessage(location)
	}
	return string(body)
}

// Args are the arguments of the weather tool.
type Args struct {
	Location string `json:"location" jsonschema:"title=Location,description=The city or zip code of the location"`
}

// NewTool exposes client as a function tool.
func NewTool(client *Client) (agents.FunctionTool, error) {
	return agents.NewFunctionTool(
		ToolName,
		"Gets the weather for a given location.",
		func(ctx context.Context, args Args) (any, error) {
			return client.Lookup(ctx, args.Location), nil
		},
	)
}
