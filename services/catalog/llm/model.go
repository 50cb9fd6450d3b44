// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package llm constructs the language model backend for the Cypher chain
// from service settings. Local-first: Ollama is the default backend, with
// OpenAI available for hosted deployments.
package llm

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/AleutianTunes/services/catalog/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrNoBackend indicates no LLM backend is configured; the caller should
// run without the RAG pipeline rather than fail startup.
var ErrNoBackend = errors.New("no llm backend configured")

// Default models per backend, overridable via TUNES_LLM_MODEL.
const (
	defaultOllamaModel = "llama3.1:8b"
	defaultOpenAIModel = "gpt-4o"
)

// NewModel builds the llms.Model named by the settings.
//
// # Outputs
//
//   - llms.Model: ready for use by the Cypher chain.
//   - error: ErrNoBackend when settings name no backend; otherwise a
//     wrapped construction error.
func NewModel(settings config.Settings) (llms.Model, error) {
	switch settings.LLMBackend {
	case "ollama":
		model := settings.LLMModel
		if model == "" {
			model = defaultOllamaModel
		}
		m, err := ollama.New(
			ollama.WithModel(model),
			ollama.WithServerURL(settings.OllamaURL),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return m, nil
	case "openai":
		model := settings.LLMModel
		if model == "" {
			model = defaultOpenAIModel
		}
		m, err := openai.New(
			openai.WithModel(model),
			openai.WithToken(settings.OpenAIAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}
		return m, nil
	case "":
		return nil, ErrNoBackend
	default:
		return nil, fmt.Errorf("unknown llm backend %q", settings.LLMBackend)
	}
}
