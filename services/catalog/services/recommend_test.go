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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
	"github.com/AleutianAI/AleutianTunes/services/catalog/templates"
)

func TestRecommend_GenreKindUsesGenreTemplate(t *testing.T) {
	store := storeWith(row("s2", "Neighbor"))
	svc := NewRecommendationService(templates.New(store))

	records, err := svc.Recommend(context.Background(), "s1", datatypes.KindGenre, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, store.cyphers, 1)
	assert.Contains(t, store.cyphers[0], "HAS_GENRE")
	assert.Equal(t, "s1", store.params[0]["song_id"])
}

func TestRecommend_ArtistKindUsesArtistTemplate(t *testing.T) {
	store := storeWith(row("s2", "Same Artist Song"))
	svc := NewRecommendationService(templates.New(store))

	_, err := svc.Recommend(context.Background(), "s1", datatypes.KindArtist, 5)
	require.NoError(t, err)
	require.Len(t, store.cyphers, 1)
	assert.Contains(t, store.cyphers[0], "PERFORMED_BY")
	assert.Contains(t, store.cyphers[0], "ORDER BY rec.issue_date DESC")
}

func TestRecommend_UnsupportedKindFailsFast(t *testing.T) {
	store := storeWith()
	svc := NewRecommendationService(templates.New(store))

	_, err := svc.Recommend(context.Background(), "s1", "vibes", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedRecommendKind)
	assert.Equal(t, 0, store.calls)
}

// TestRecommend_StoreFailureDegradesToEmpty: recommendations are
// supplementary, so a store failure is an empty sidebar, not an error.
func TestRecommend_StoreFailureDegradesToEmpty(t *testing.T) {
	store := &fakeStore{err: errors.New("neo4j unreachable")}
	svc := NewRecommendationService(templates.New(store))

	records, err := svc.Recommend(context.Background(), "s1", datatypes.KindGenre, 5)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestPopular_ReturnsRankedSongs(t *testing.T) {
	store := storeWith(row("s1", "Hit"), row("s2", "Also Ran"))
	svc := NewRecommendationService(templates.New(store))

	records := svc.Popular(context.Background(), 10)
	require.Len(t, records, 2)
	assert.Equal(t, "Hit", records[0].Title)
	assert.Contains(t, store.cyphers[0], "INCLUDES")
}

func TestPopular_StoreFailureDegradesToEmpty(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	svc := NewRecommendationService(templates.New(store))
	assert.Empty(t, svc.Popular(context.Background(), 10))
}
