// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the request, response, and record types
// exchanged between the catalog handlers, services, and query templates.
package datatypes

// SongRecord is the denormalized result row returned by every graph query
// template: a song joined with its optionally linked artist, genre, album,
// and subgenre.
//
// # Description
//
// SongID and Title are always present. Every other field is a pointer
// because the underlying relationships (PERFORMED_BY, HAS_GENRE, IN_ALBUM,
// CONTAINS) are each optional in the graph: a nil field means the song has
// no such linked node, not that the value is unknown.
//
// # Thread Safety
//
// Records are value types constructed per response and never mutated after
// construction.
type SongRecord struct {
	SongID       string  `json:"song_id"`
	Title        string  `json:"title"`
	IssueDate    *string `json:"issue_date"`
	ArtistName   *string `json:"artist_name"`
	ArtistID     *string `json:"artist_id"`
	GenreName    *string `json:"genre_name"`
	GenreID      *string `json:"genre_id"`
	AlbumTitle   *string `json:"album_title"`
	AlbumID      *string `json:"album_id"`
	SubgenreName *string `json:"subgenre_name"`
}
