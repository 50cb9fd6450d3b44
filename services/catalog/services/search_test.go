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

// =============================================================================
// Fake store
// =============================================================================

// fakeStore implements graphstore.Runner for service-level tests.
type fakeStore struct {
	rows    []map[string]any
	err     error
	calls   int
	cyphers []string
	params  []map[string]any
}

func (f *fakeStore) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	f.calls++
	f.cyphers = append(f.cyphers, cypher)
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func storeWith(rows ...map[string]any) *fakeStore {
	return &fakeStore{rows: rows}
}

func row(id, title string) map[string]any {
	return map[string]any{"song_id": id, "title": title}
}

// =============================================================================
// Search dispatch
// =============================================================================

func TestSearch_TitleKindUsesTitleTemplate(t *testing.T) {
	store := storeWith(row("s1", "Love Song"))
	svc := NewSearchService(templates.New(store))

	records, err := svc.Search(context.Background(), "love", datatypes.KindTitle, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "s1", records[0].SongID)
	require.Len(t, store.cyphers, 1)
	assert.Contains(t, store.cyphers[0], "toLower(s.title) CONTAINS")
}

func TestSearch_ArtistKindUsesArtistTemplate(t *testing.T) {
	store := storeWith(row("s2", "B-Side"))
	svc := NewSearchService(templates.New(store))

	_, err := svc.Search(context.Background(), "west", datatypes.KindArtist, 10)
	require.NoError(t, err)
	require.Len(t, store.cyphers, 1)
	assert.Contains(t, store.cyphers[0], "toLower(a.name) CONTAINS")
}

// TestSearch_UnsupportedKindFailsFast: an unknown kind is a caller
// programming error and must never be silently an empty list.
func TestSearch_UnsupportedKindFailsFast(t *testing.T) {
	store := storeWith(row("s1", "Love Song"))
	svc := NewSearchService(templates.New(store))

	records, err := svc.Search(context.Background(), "x", "bogus", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedSearchKind)
	assert.Contains(t, err.Error(), "bogus")
	assert.Nil(t, records)
	assert.Equal(t, 0, store.calls, "dispatch must fail before reaching the store")
}

// TestSearch_RAGKindIsNotHandledHere: the rag kind is routed by the
// handler, not this service.
func TestSearch_RAGKindIsNotHandledHere(t *testing.T) {
	svc := NewSearchService(templates.New(storeWith()))
	_, err := svc.Search(context.Background(), "x", datatypes.KindRAG, 10)
	assert.ErrorIs(t, err, ErrUnsupportedSearchKind)
}

// TestSearch_StoreFailureDegradesToEmpty: a store outage degrades to an
// empty result rather than failing the request.
func TestSearch_StoreFailureDegradesToEmpty(t *testing.T) {
	store := &fakeStore{err: errors.New("neo4j unreachable")}
	svc := NewSearchService(templates.New(store))

	records, err := svc.Search(context.Background(), "love", datatypes.KindTitle, 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

// =============================================================================
// Id lookup
// =============================================================================

func TestLookupByID_ZeroOrOne(t *testing.T) {
	store := storeWith(row("s3", "Found"))
	svc := NewSearchService(templates.New(store))

	records := svc.LookupByID(context.Background(), "s3")
	require.Len(t, records, 1)
	assert.Equal(t, "Found", records[0].Title)

	missing := NewSearchService(templates.New(storeWith()))
	assert.Empty(t, missing.LookupByID(context.Background(), "nope"))
}

func TestLookupByID_StoreFailureDegradesToEmpty(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	svc := NewSearchService(templates.New(store))
	assert.Empty(t, svc.LookupByID(context.Background(), "s1"))
}
