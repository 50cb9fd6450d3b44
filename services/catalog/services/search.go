// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package services contains the business logic over the graph query
// templates: deterministic search, recommendations, and the RAG
// orchestrator. Services hold injected dependencies, carry no per-request
// state, and are safe for concurrent use.
//
// Failure policy: an unsupported kind is a caller programming error and is
// returned as an explicit error; a store failure inside a template is
// logged and degraded to an empty result so a partial outage never fails
// the whole request.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
	"github.com/AleutianAI/AleutianTunes/services/catalog/templates"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var searchTracer = otel.Tracer("tunes.catalog.services.search")

// ErrUnsupportedSearchKind is returned when Search receives a kind outside
// {title, artist}. The RAG kind is routed by the handler, not here.
var ErrUnsupportedSearchKind = errors.New("unsupported search type")

// SearchService dispatches deterministic searches to the title or artist
// template. No business logic lives here beyond dispatch.
type SearchService struct {
	templates *templates.Templates
}

// NewSearchService creates a SearchService over the given templates.
func NewSearchService(t *templates.Templates) *SearchService {
	return &SearchService{templates: t}
}

// Search runs a deterministic search.
//
// # Inputs
//
//   - query: the substring to match, case-insensitively.
//   - kind: datatypes.KindTitle or datatypes.KindArtist; anything else
//     returns ErrUnsupportedSearchKind.
//   - limit: maximum rows; <= 0 resolves to the template default.
//
// # Outputs
//
//   - []datatypes.SongRecord: never nil; empty on no match or on a
//     degraded store failure.
//   - error: only ErrUnsupportedSearchKind (wrapped with the kind).
func (s *SearchService) Search(ctx context.Context, query, kind string, limit int) ([]datatypes.SongRecord, error) {
	ctx, span := searchTracer.Start(ctx, "SearchService.Search")
	defer span.End()
	span.SetAttributes(attribute.String("kind", kind), attribute.Int("limit", limit))

	var (
		records []datatypes.SongRecord
		err     error
	)
	switch kind {
	case datatypes.KindTitle:
		records, err = s.templates.SearchByTitle(ctx, query, limit)
	case datatypes.KindArtist:
		records, err = s.templates.SearchByArtist(ctx, query, limit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSearchKind, kind)
	}
	if err != nil {
		slog.Error("search degraded to empty result", "kind", kind, "error", err)
		return []datatypes.SongRecord{}, nil
	}
	return records, nil
}

// LookupByID hydrates a bare song id into its full record. Returns zero or
// one records; store failures degrade to empty.
func (s *SearchService) LookupByID(ctx context.Context, songID string) []datatypes.SongRecord {
	records, err := s.templates.SearchBySongID(ctx, songID)
	if err != nil {
		slog.Error("id lookup degraded to empty result", "song_id", songID, "error", err)
		return []datatypes.SongRecord{}
	}
	return records
}
