// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD", "NEO4J_DATABASE",
		"TUNES_LLM_BACKEND", "TUNES_RAG_TOP_K", "CATALOG_PORT", "TUNES_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	settings := FromEnv()

	assert.Equal(t, "bolt://localhost:7687", settings.Neo4jURI)
	assert.Equal(t, "neo4j", settings.Neo4jUsername)
	assert.Equal(t, "neo4j", settings.Neo4jDatabase)
	assert.Empty(t, settings.LLMBackend, "no backend means no RAG pipeline")
	assert.Equal(t, 50, settings.RAGTopK)
	assert.Equal(t, "12220", settings.Port)
	assert.Equal(t, "info", settings.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("NEO4J_URI", "bolt://graph.internal:7687")
	t.Setenv("TUNES_LLM_BACKEND", "Ollama")
	t.Setenv("TUNES_RAG_TOP_K", "25")
	t.Setenv("CATALOG_PORT", "8080")

	settings := FromEnv()

	assert.Equal(t, "bolt://graph.internal:7687", settings.Neo4jURI)
	assert.Equal(t, "ollama", settings.LLMBackend, "backend names are lowercased")
	assert.Equal(t, 25, settings.RAGTopK)
	assert.Equal(t, "8080", settings.Port)
}

// TestFromEnv_QuotedValuesTrimmed guards against container runtimes that
// pass quoted env values through literally.
func TestFromEnv_QuotedValuesTrimmed(t *testing.T) {
	t.Setenv("NEO4J_URI", `"bolt://graph.internal:7687"`)
	t.Setenv("NEO4J_USERNAME", "'admin'")

	settings := FromEnv()

	assert.Equal(t, "bolt://graph.internal:7687", settings.Neo4jURI)
	assert.Equal(t, "admin", settings.Neo4jUsername)
}

func TestFromEnv_BadIntFallsBack(t *testing.T) {
	for _, raw := range []string{"abc", "-5", "0"} {
		t.Setenv("TUNES_RAG_TOP_K", raw)
		assert.Equal(t, 50, FromEnv().RAGTopK, "value %q must fall back", raw)
	}
}
