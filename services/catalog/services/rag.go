// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package services

import (
	"context"
	"log/slog"

	"github.com/AleutianAI/AleutianTunes/services/catalog/cypherchain"
	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ragTracer = otel.Tracer("tunes.catalog.services.rag")

// DegradedAnswer is the fixed reply returned when the chain fails for any
// reason. The failure detail goes to the log, never to the user.
const DegradedAnswer = "Sorry, something went wrong while answering your question. Please try again."

// songIDInstruction is appended to every question so the generated answer
// and query keep song identifiers visible for re-hydration.
const songIDInstruction = ". Always include the song_id of every song in the result."

// IDLookup hydrates a bare song id into zero or one full records.
// SearchService provides the production implementation.
type IDLookup interface {
	LookupByID(ctx context.Context, songID string) []datatypes.SongRecord
}

// RAGService runs the two-stage generate-then-ground pipeline: invoke the
// text-to-Cypher chain, extract the song ids its query touched, and
// re-hydrate them into full records through the deterministic id template.
//
// No state survives a query, and no retries are attempted: one chain
// failure ends the pipeline for that request with a degraded response.
type RAGService struct {
	chain  cypherchain.Invoker
	lookup IDLookup
}

// NewRAGService creates a RAGService over the given chain and id lookup.
func NewRAGService(chain cypherchain.Invoker, lookup IDLookup) *RAGService {
	return &RAGService{chain: chain, lookup: lookup}
}

// Query answers a free-text question about the catalog.
//
// # Outputs
//
//   - answer: the generated answer, or DegradedAnswer when the chain
//     failed.
//   - songs: the hydrated records for every song id the chain's context
//     touched, in extraction order. Never nil.
//
// Query never returns an error; graceful degradation is the contract.
func (r *RAGService) Query(ctx context.Context, question string) (string, []datatypes.SongRecord) {
	ctx, span := ragTracer.Start(ctx, "RAGService.Query")
	defer span.End()

	result, err := r.chain.Invoke(ctx, question+songIDInstruction)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("RAG chain failed, returning degraded answer", "error", err)
		return DegradedAnswer, []datatypes.SongRecord{}
	}

	ids := extractSongIDs(result.Context)
	if len(ids) == 0 && len(result.Context) > 0 {
		// The generated query returned rows but surfaced no song-id
		// column; fall back to the quoted identifiers the answer prompt
		// asks the model to emit. Non-id strings miss harmlessly below.
		ids = cypherchain.ExtractQuoted(result.Answer)
		slog.Warn("context rows lack a song id column, using quoted-answer fallback",
			"cypher", result.Cypher, "candidates", len(ids))
	}
	span.SetAttributes(attribute.Int("extracted_ids", len(ids)))

	songs := make([]datatypes.SongRecord, 0, len(ids))
	for _, id := range ids {
		songs = append(songs, r.lookup.LookupByID(ctx, id)...)
	}
	slog.Info("RAG query answered", "extracted_ids", len(ids), "hydrated_songs", len(songs))
	return result.Answer, songs
}

// songIDColumns are the context aliases checked for identifiers, in
// preference order. The generated queries name the song node "s" by prompt
// convention, but a bare alias is accepted too.
var songIDColumns = []string{"s.song_id", "song_id", "rec.song_id"}

// extractSongIDs collects the song id of every context row, preserving row
// order and duplicates.
func extractSongIDs(rows []map[string]any) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		for _, column := range songIDColumns {
			// A present-but-null alias must not mask an id under a later
			// alias in the same row; keep trying until one extracts.
			if id, ok := row[column].(string); ok && id != "" {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids
}
