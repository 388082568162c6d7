// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration and result types shared across packages.
package types

import "time"

// AssistantConfig holds settings for the research pipeline and the
// inference endpoint it calls. The API credential is deliberately not part
// of this struct: it is resolved by the caller and passed explicitly so it
// never ends up in a config file or serialized output.
type AssistantConfig struct {
	// Model is the chat model identifier sent with every request.
	Model string `json:"model" yaml:"model"`

	// BaseURL is the root of the OpenAI-compatible endpoint
	// (e.g. "https://api.groq.com/openai/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout is the HTTP request timeout. Zero means no timeout; each
	// stage then waits for completion or failure.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of rate-limit retries per stage request.
	// Zero means each stage performs exactly one attempt.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// AnalysisTemperature is the sampling temperature for the analysis
	// stage (default 0.6). The questions stage always uses the endpoint
	// default.
	AnalysisTemperature float64 `json:"analysis_temperature" yaml:"analysis_temperature"`
}
