// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package templates implements the parameterized graph traversals that
// resolve search and recommendation anchors into deduplicated, ordered
// song records.
//
// # Description
//
// Each template is a pure function of its resolved parameters and the
// injected read-only store. Results are memoized per exact argument tuple:
// the first successful execution is the only one to reach the store, and a
// legitimate empty result is cached exactly like a populated one. Store
// failures are returned as errors and never cached, so the caller decides
// whether to retry or degrade.
//
// # Thread Safety
//
// Safe for concurrent use. The only mutable state is the memoization
// tables, which collapse concurrent identical calls into one execution.
package templates

import (
	"context"
	"log/slog"
	"time"

	"github.com/AleutianAI/AleutianTunes/pkg/memo"
	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
	"github.com/AleutianAI/AleutianTunes/services/catalog/graphstore"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var templateTracer = otel.Tracer("tunes.catalog.templates")

// Default limits applied before cache keys are built, so that an implicit
// and an explicit default produce the same tuple.
const (
	DefaultSearchLimit    = 10
	DefaultRecommendLimit = 5
	DefaultPopularLimit   = 10
)

// Templates bundles the six traversals with their per-template caches.
type Templates struct {
	store graphstore.Runner

	byTitle   *memo.Cache[[]datatypes.SongRecord]
	byArtist  *memo.Cache[[]datatypes.SongRecord]
	bySongID  *memo.Cache[[]datatypes.SongRecord]
	byGenre   *memo.Cache[[]datatypes.SongRecord]
	coArtist  *memo.Cache[[]datatypes.SongRecord]
	popular   *memo.Cache[[]datatypes.SongRecord]
	cacheOpts []memo.Option
}

// New creates the template set over the given store. Cache options (for
// example memo.WithCapacity) apply to every per-template cache; the default
// is unbounded, matching a read-mostly catalog.
func New(store graphstore.Runner, cacheOpts ...memo.Option) *Templates {
	return &Templates{
		store:     store,
		byTitle:   memo.New[[]datatypes.SongRecord](cacheOpts...),
		byArtist:  memo.New[[]datatypes.SongRecord](cacheOpts...),
		bySongID:  memo.New[[]datatypes.SongRecord](cacheOpts...),
		byGenre:   memo.New[[]datatypes.SongRecord](cacheOpts...),
		coArtist:  memo.New[[]datatypes.SongRecord](cacheOpts...),
		popular:   memo.New[[]datatypes.SongRecord](cacheOpts...),
		cacheOpts: cacheOpts,
	}
}

// SearchByTitle returns songs whose title contains the substring, case
// insensitively, ordered by title ascending. A substring matching nothing
// yields an empty list, not an error.
func (t *Templates) SearchByTitle(ctx context.Context, query string, limit int) ([]datatypes.SongRecord, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return t.run(ctx, t.byTitle, "SearchByTitle", searchByTitleCypher,
		map[string]any{"query": query, "limit": limit},
		memo.Key("title", query, limit))
}

// SearchByArtist returns songs whose artist name contains the substring,
// case insensitively, ordered by title ascending.
func (t *Templates) SearchByArtist(ctx context.Context, query string, limit int) ([]datatypes.SongRecord, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return t.run(ctx, t.byArtist, "SearchByArtist", searchByArtistCypher,
		map[string]any{"query": query, "limit": limit},
		memo.Key("artist", query, limit))
}

// SearchBySongID returns the zero-or-one song with the exact id. A
// malformed or unknown id yields an empty list.
func (t *Templates) SearchBySongID(ctx context.Context, songID string) ([]datatypes.SongRecord, error) {
	return t.run(ctx, t.bySongID, "SearchBySongID", searchBySongIDCypher,
		map[string]any{"song_id": songID},
		memo.Key("song_id", songID))
}

// RecommendByGenre returns songs sharing a genre with the anchor, in store
// random order, never including the anchor itself.
func (t *Templates) RecommendByGenre(ctx context.Context, songID string, limit int) ([]datatypes.SongRecord, error) {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	return t.run(ctx, t.byGenre, "RecommendByGenre", recommendByGenreCypher,
		map[string]any{"song_id": songID, "limit": limit},
		memo.Key("rec_genre", songID, limit))
}

// RecommendByArtist returns other songs by the anchor's artist, newest
// issue date first, never including the anchor itself.
func (t *Templates) RecommendByArtist(ctx context.Context, songID string, limit int) ([]datatypes.SongRecord, error) {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	return t.run(ctx, t.coArtist, "RecommendByArtist", recommendByArtistCypher,
		map[string]any{"song_id": songID, "limit": limit},
		memo.Key("rec_artist", songID, limit))
}

// RecommendPopular returns songs ranked by the number of playlists that
// include them, most-included first.
func (t *Templates) RecommendPopular(ctx context.Context, limit int) ([]datatypes.SongRecord, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return t.run(ctx, t.popular, "RecommendPopular", recommendPopularCypher,
		map[string]any{"limit": limit},
		memo.Key("popular", limit))
}

// PurgeCaches drops every memoized result. Intended for admin tooling
// after a catalog reload.
func (t *Templates) PurgeCaches() {
	t.byTitle.Purge()
	t.byArtist.Purge()
	t.bySongID.Purge()
	t.byGenre.Purge()
	t.coArtist.Purge()
	t.popular.Purge()
}

func (t *Templates) run(ctx context.Context, cache *memo.Cache[[]datatypes.SongRecord],
	name, cypher string, params map[string]any, key string) ([]datatypes.SongRecord, error) {

	return cache.Do(key, func() ([]datatypes.SongRecord, error) {
		ctx, span := templateTracer.Start(ctx, "Templates."+name)
		defer span.End()

		start := time.Now()
		rows, err := t.store.Run(ctx, cypher, params)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("graph query failed", "template", name, "error", err)
			return nil, err
		}

		records := make([]datatypes.SongRecord, 0, len(rows))
		for _, row := range rows {
			if record, ok := recordFromRow(row); ok {
				records = append(records, record)
			}
		}
		span.SetAttributes(attribute.Int("results", len(records)))
		slog.Info("graph query executed",
			"template", name, "results", len(records), "duration", time.Since(start))
		return records, nil
	})
}
