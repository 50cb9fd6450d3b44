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
	"fmt"
	"strings"

	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
)

func printSongs(songs []datatypes.SongRecord) {
	if len(songs) == 0 {
		fmt.Println(Styles.Muted.Render("no songs"))
		return
	}
	for i, song := range songs {
		fmt.Printf("%s %s\n", Styles.Highlight.Render(fmt.Sprintf("%2d.", i+1)), songLine(song))
	}
}

// songLine renders one song as "Title - Artist (Album, Date) [genre/subgenre] id".
// Absent fields are skipped rather than rendered as placeholders.
func songLine(song datatypes.SongRecord) string {
	var b strings.Builder
	b.WriteString(song.Title)
	if song.ArtistName != nil {
		b.WriteString(" - ")
		b.WriteString(*song.ArtistName)
	}
	var paren []string
	if song.AlbumTitle != nil {
		paren = append(paren, *song.AlbumTitle)
	}
	if song.IssueDate != nil {
		paren = append(paren, *song.IssueDate)
	}
	if len(paren) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(paren, ", "))
		b.WriteString(")")
	}
	if song.GenreName != nil {
		b.WriteString(" [")
		b.WriteString(*song.GenreName)
		if song.SubgenreName != nil {
			b.WriteString("/")
			b.WriteString(*song.SubgenreName)
		}
		b.WriteString("]")
	}
	b.WriteString(" ")
	b.WriteString(Styles.Muted.Render(song.SongID))
	return b.String()
}
