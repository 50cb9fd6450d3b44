// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package templates

import (
	"fmt"

	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
)

// recordFromRow maps one store row onto a SongRecord. Rows without the two
// required columns are dropped; every optional column maps a driver null to
// a nil pointer so a missing relationship never drops the row.
func recordFromRow(row map[string]any) (datatypes.SongRecord, bool) {
	songID, ok := stringColumn(row, "song_id")
	if !ok {
		return datatypes.SongRecord{}, false
	}
	title, ok := stringColumn(row, "title")
	if !ok {
		return datatypes.SongRecord{}, false
	}
	return datatypes.SongRecord{
		SongID:       songID,
		Title:        title,
		IssueDate:    optionalColumn(row, "issue_date"),
		ArtistName:   optionalColumn(row, "artist_name"),
		ArtistID:     optionalColumn(row, "artist_id"),
		GenreName:    optionalColumn(row, "genre_name"),
		GenreID:      optionalColumn(row, "genre_id"),
		AlbumTitle:   optionalColumn(row, "album_title"),
		AlbumID:      optionalColumn(row, "album_id"),
		SubgenreName: optionalColumn(row, "subgenre_name"),
	}, true
}

func stringColumn(row map[string]any, column string) (string, bool) {
	v, ok := row[column]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// optionalColumn returns nil for absent or null columns. Non-string scalars
// (a numeric issue date, say) are rendered with their default formatting
// rather than dropped.
func optionalColumn(row map[string]any, column string) *string {
	v, ok := row[column]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	s := fmt.Sprintf("%v", v)
	return &s
}
