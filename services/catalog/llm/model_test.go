// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianTunes/services/catalog/config"
)

func TestNewModel_NoBackend(t *testing.T) {
	_, err := NewModel(config.Settings{})
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestNewModel_UnknownBackend(t *testing.T) {
	_, err := NewModel(config.Settings{LLMBackend: "bard"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoBackend, "an unknown name is a config mistake, not an absence")
	assert.Contains(t, err.Error(), "bard")
}

// TestNewModel_Ollama constructs the client only; no request is made until
// the chain invokes it.
func TestNewModel_Ollama(t *testing.T) {
	model, err := NewModel(config.Settings{
		LLMBackend: "ollama",
		OllamaURL:  "http://localhost:11434",
	})
	require.NoError(t, err)
	assert.NotNil(t, model)
}
