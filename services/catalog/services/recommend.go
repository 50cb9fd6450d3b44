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
	"errors"
	"fmt"
	"log/slog"

	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
	"github.com/AleutianAI/AleutianTunes/services/catalog/templates"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var recommendTracer = otel.Tracer("tunes.catalog.services.recommend")

// ErrUnsupportedRecommendKind is returned when Recommend receives a kind
// outside {genre, artist}.
var ErrUnsupportedRecommendKind = errors.New("unsupported recommendation type")

// RecommendationService dispatches to the genre-neighbor, artist-neighbor,
// or popularity template. Recommendations are supplementary, so template
// failures surface as empty lists: a search result must not fail because
// its recommendation sidebar did.
type RecommendationService struct {
	templates *templates.Templates
}

// NewRecommendationService creates a RecommendationService over the given
// templates.
func NewRecommendationService(t *templates.Templates) *RecommendationService {
	return &RecommendationService{templates: t}
}

// Recommend returns songs related to the anchor song by shared genre or
// shared artist. The anchor never appears in its own results.
//
// The only error returned is ErrUnsupportedRecommendKind; store failures
// degrade to an empty list.
func (r *RecommendationService) Recommend(ctx context.Context, songID, kind string, limit int) ([]datatypes.SongRecord, error) {
	ctx, span := recommendTracer.Start(ctx, "RecommendationService.Recommend")
	defer span.End()
	span.SetAttributes(attribute.String("kind", kind), attribute.String("song_id", songID))

	var (
		records []datatypes.SongRecord
		err     error
	)
	switch kind {
	case datatypes.KindGenre:
		records, err = r.templates.RecommendByGenre(ctx, songID, limit)
	case datatypes.KindArtist:
		records, err = r.templates.RecommendByArtist(ctx, songID, limit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRecommendKind, kind)
	}
	if err != nil {
		slog.Error("recommendation degraded to empty result",
			"kind", kind, "song_id", songID, "error", err)
		return []datatypes.SongRecord{}, nil
	}
	return records, nil
}

// Popular returns the songs included in the most playlists, most-included
// first. Store failures degrade to an empty list.
func (r *RecommendationService) Popular(ctx context.Context, limit int) []datatypes.SongRecord {
	records, err := r.templates.RecommendPopular(ctx, limit)
	if err != nil {
		slog.Error("popular songs degraded to empty result", "error", err)
		return []datatypes.SongRecord{}
	}
	return records
}
