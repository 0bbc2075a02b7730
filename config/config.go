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

// Package config loads the settings of the weather agent from the
// environment and, optionally, from a config file.
//
// Every key can be set through an environment variable prefixed with
// WEATHER_AGENT_ (e.g. WEATHER_AGENT_MODEL). The API key and base URL
// also honor the usual OPENAI_API_KEY and OPENAI_BASE_URL.
package config

import (
	"fmt"
	"strings"

	"github.com/nlpodyssey/weather-agent-go/agents"
	"github.com/nlpodyssey/weather-agent-go/weather"
	"github.com/spf13/viper"
)

const EnvPrefix = "WEATHER_AGENT"

type Config struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	WeatherURL string `mapstructure:"weather_url"`
	Verbose    bool   `mapstructure:"verbose"`

	// Zero means the run is not bounded.
	MaxTurns uint64 `mapstructure:"max_turns"`
}

// Load reads the configuration from the environment only.
func Load() (Config, error) {
	return LoadFile("")
}

// LoadFile reads the configuration from the file at path, if not empty,
// with environment variables taking precedence over it.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("model", string(agents.DefaultModel))
	v.SetDefault("weather_url", weather.DefaultBaseURL)
	v.SetDefault("verbose", false)
	v.SetDefault("max_turns", 0)

	if err := v.BindEnv("api_key", EnvPrefix+"_API_KEY", "OPENAI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("base_url", EnvPrefix+"_BASE_URL", "OPENAI_BASE_URL"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("api_key is required (set OPENAI_API_KEY)")
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model must not be empty")
	}
	if strings.TrimSpace(c.WeatherURL) == "" {
		return fmt.Errorf("weather_url must not be empty")
	}
	return nil
}
