// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads catalog service settings from the environment,
// with defaults matching a local single-node deployment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings holds every knob the catalog service reads at startup. Built
// once in main and passed down; nothing re-reads the environment later.
type Settings struct {
	// Neo4j connection.
	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string
	Neo4jDatabase string

	// LLM backend: "ollama", "openai", or "" to run without the RAG
	// pipeline (deterministic search and recommendations still work).
	LLMBackend   string
	LLMModel     string
	OllamaURL    string
	OpenAIAPIKey string

	// RAGTopK caps the context rows fed to the answer stage.
	RAGTopK int

	// HTTP listener.
	Port string

	// Observability.
	LogLevel     string
	OTLPEndpoint string
}

// FromEnv builds Settings from the process environment.
func FromEnv() Settings {
	return Settings{
		Neo4jURI:      envOr("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUsername: envOr("NEO4J_USERNAME", "neo4j"),
		Neo4jPassword: os.Getenv("NEO4J_PASSWORD"),
		Neo4jDatabase: envOr("NEO4J_DATABASE", "neo4j"),
		LLMBackend:    strings.ToLower(os.Getenv("TUNES_LLM_BACKEND")),
		LLMModel:      os.Getenv("TUNES_LLM_MODEL"),
		OllamaURL:     envOr("OLLAMA_URL", "http://localhost:11434"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		RAGTopK:       envIntOr("TUNES_RAG_TOP_K", 50),
		Port:          envOr("CATALOG_PORT", "12220"),
		LogLevel:      envOr("TUNES_LOG_LEVEL", "info"),
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func envOr(key, fallback string) string {
	// Trim quotes and whitespace in case the container runtime passes them
	// through literally.
	v := strings.Trim(os.Getenv(key), "\"' ")
	if v == "" {
		return fallback
	}
	return v
}

func envIntOr(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
