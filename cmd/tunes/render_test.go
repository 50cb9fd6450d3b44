// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
)

func ptr(s string) *string { return &s }

func TestSongLine_AllFields(t *testing.T) {
	line := songLine(datatypes.SongRecord{
		SongID:       "s1",
		Title:        "Love Song",
		ArtistName:   ptr("The Examples"),
		AlbumTitle:   ptr("First Pressing"),
		IssueDate:    ptr("2001-05-01"),
		GenreName:    ptr("Rock"),
		SubgenreName: ptr("Indie Rock"),
	})

	assert.Contains(t, line, "Love Song - The Examples")
	assert.Contains(t, line, "(First Pressing, 2001-05-01)")
	assert.Contains(t, line, "[Rock/Indie Rock]")
	assert.Contains(t, line, "s1")
}

// TestSongLine_SparseFields: absent optionals are skipped, never rendered
// as placeholders or empty brackets.
func TestSongLine_SparseFields(t *testing.T) {
	line := songLine(datatypes.SongRecord{SongID: "s9", Title: "Orphan Track"})

	assert.Contains(t, line, "Orphan Track")
	assert.NotContains(t, line, "(")
	assert.NotContains(t, line, "[")
	assert.NotContains(t, line, " - ")
}

func TestSongLine_GenreWithoutSubgenre(t *testing.T) {
	line := songLine(datatypes.SongRecord{
		SongID:    "s2",
		Title:     "Plain Genre",
		GenreName: ptr("Jazz"),
	})

	assert.Contains(t, line, "[Jazz]")
	assert.NotContains(t, line, "/")
}
