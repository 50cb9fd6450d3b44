// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cypherchain implements the text-to-query chain behind the RAG
// pipeline: translate a natural-language question into a Cypher query,
// execute it read-only against the graph, and synthesize an answer from
// the rows the query touched.
//
// # Description
//
// The chain runs three stages per invocation and keeps no state between
// invocations:
//
//  1. Generate: prompt the model with the graph schema and the question,
//     then sanitize the reply (code fences stripped, write clauses
//     rejected).
//  2. Execute: run the generated Cypher against the store and truncate the
//     context to the configured top-k rows.
//  3. Answer: prompt the model with the question and the serialized
//     context rows.
//
// The Result carries both the final answer and the intermediate context so
// the orchestrator can ground the answer back into full song records.
//
// # Thread Safety
//
// A Chain is immutable after construction and safe for concurrent use.
package cypherchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/AleutianAI/AleutianTunes/services/catalog/graphstore"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var chainTracer = otel.Tracer("tunes.catalog.cypherchain")

// DefaultTopK bounds how many context rows feed the answer prompt.
const DefaultTopK = 50

// Sentinel errors returned by Invoke. All of them are generation failures
// from the orchestrator's point of view.
var (
	// ErrEmptyQuery indicates the model produced no usable Cypher.
	ErrEmptyQuery = errors.New("generated query is empty")

	// ErrWriteQuery indicates the model produced a query with write
	// clauses, which the chain refuses to execute.
	ErrWriteQuery = errors.New("generated query contains write clauses")
)

// Result is the outcome of one chain invocation.
type Result struct {
	// Answer is the synthesized natural-language answer.
	Answer string
	// Cypher is the sanitized generated query that was executed.
	Cypher string
	// Context holds the rows the generated query touched, capped at top-k.
	Context []map[string]any
}

// Invoker is the contract the RAG orchestrator consumes; Chain is the
// production implementation.
type Invoker interface {
	Invoke(ctx context.Context, question string) (*Result, error)
}

// Compile-time interface implementation check.
var _ Invoker = (*Chain)(nil)

// Chain is the langchaingo-backed text-to-Cypher chain.
type Chain struct {
	llm    llms.Model
	store  graphstore.Runner
	schema string
	topK   int
}

// New creates a Chain.
//
// # Inputs
//
//   - llm: the language model used for both generation stages.
//   - store: the read-only graph runner.
//   - schema: textual schema description used to ground Cypher generation
//     (see graphstore.SchemaSummary).
//   - topK: maximum context rows kept for the answer stage; <= 0 applies
//     DefaultTopK.
func New(llm llms.Model, store graphstore.Runner, schema string, topK int) *Chain {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Chain{llm: llm, store: store, schema: schema, topK: topK}
}

var cypherPrompt = prompts.NewPromptTemplate(
	`You are an expert Cypher translator for a music catalog graph.

Schema:
{{.schema}}

Write a single read-only Cypher query answering the question below.
Rules:
- Use only labels, relationship types, and properties from the schema.
- Always return the song_id property of any Song node you match.
- Do not use CREATE, MERGE, DELETE, SET, REMOVE, or DROP.
- Return only the Cypher query, without explanation or formatting.

Question: {{.question}}

Cypher:`,
	[]string{"schema", "question"},
)

var answerPrompt = prompts.NewPromptTemplate(
	`You are a helpful music assistant. Answer the question using only the
query results below. If the results are empty, say you found nothing.
When you mention a song, include its song_id in single quotes.

Question: {{.question}}

Query results:
{{.context}}

Answer:`,
	[]string{"question", "context"},
)

// Invoke runs the three chain stages for one question.
func (c *Chain) Invoke(ctx context.Context, question string) (*Result, error) {
	ctx, span := chainTracer.Start(ctx, "Chain.Invoke")
	defer span.End()

	cypher, err := c.generateCypher(ctx, question)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("cypher", cypher))

	rows, err := c.store.Run(ctx, cypher, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("execute generated query: %w", err)
	}
	if len(rows) > c.topK {
		rows = rows[:c.topK]
	}
	span.SetAttributes(attribute.Int("context_rows", len(rows)))

	answer, err := c.generateAnswer(ctx, question, rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &Result{Answer: answer, Cypher: cypher, Context: rows}, nil
}

func (c *Chain) generateCypher(ctx context.Context, question string) (string, error) {
	prompt, err := cypherPrompt.Format(map[string]any{
		"schema":   c.schema,
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("format cypher prompt: %w", err)
	}
	raw, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("generate cypher: %w", err)
	}
	cypher := SanitizeCypher(raw)
	if cypher == "" {
		return "", ErrEmptyQuery
	}
	if containsWriteClause(cypher) {
		slog.Warn("rejecting generated query with write clauses", "cypher", cypher)
		return "", ErrWriteQuery
	}
	return cypher, nil
}

func (c *Chain) generateAnswer(ctx context.Context, question string, rows []map[string]any) (string, error) {
	serialized, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("serialize context: %w", err)
	}
	prompt, err := answerPrompt.Format(map[string]any{
		"question": question,
		"context":  string(serialized),
	})
	if err != nil {
		return "", fmt.Errorf("format answer prompt: %w", err)
	}
	answer, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

var codeFence = regexp.MustCompile("(?s)```(?:cypher|sql)?\\s*(.*?)```")

// SanitizeCypher strips markdown code fences and surrounding noise from a
// model reply, returning the bare query text.
func SanitizeCypher(raw string) string {
	if m := codeFence.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}
	return strings.TrimSpace(raw)
}

var writeClause = regexp.MustCompile(`(?i)\b(CREATE|MERGE|DELETE|DETACH|SET|REMOVE|DROP)\b`)

func containsWriteClause(cypher string) bool {
	return writeClause.MatchString(cypher)
}

var quoted = regexp.MustCompile(`'([^']*)'`)

// ExtractQuoted returns every single-quoted substring of text in order of
// appearance, duplicates preserved. Used as the fallback identifier source
// when the structured context exposes no song-id column.
func ExtractQuoted(text string) []string {
	matches := quoted.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[1] != "" {
			out = append(out, m[1])
		}
	}
	return out
}
