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

// The traversal patterns below share one discipline: anchor the pattern,
// collapse to DISTINCT songs, then attach related nodes through OPTIONAL
// MATCH so a missing relationship nulls the column instead of dropping the
// row. head(collect(DISTINCT ...)) picks exactly one representative when a
// song reaches the same related-entity type through several paths.

const searchByTitleCypher = `
MATCH (s:Song)
WHERE toLower(s.title) CONTAINS toLower($query)
WITH DISTINCT s
OPTIONAL MATCH (s)-[:PERFORMED_BY]-(a:Artist)
OPTIONAL MATCH (s)-[:HAS_GENRE]-(g:Genre)
OPTIONAL MATCH (s)-[:IN_ALBUM]-(al:Album)
OPTIONAL MATCH (g)-[:CONTAINS]-(sg:SubGenre)
WITH s,
     head(collect(DISTINCT a)) AS artist,
     head(collect(DISTINCT g)) AS genre,
     head(collect(DISTINCT al)) AS album,
     head(collect(DISTINCT sg)) AS subgenre
RETURN s.song_id AS song_id,
       s.title AS title,
       s.issue_date AS issue_date,
       artist.name AS artist_name,
       artist.artist_id AS artist_id,
       genre.name AS genre_name,
       genre.genre_id AS genre_id,
       album.title AS album_title,
       album.album_id AS album_id,
       subgenre.name AS subgenre_name
ORDER BY s.title
LIMIT $limit`

const searchBySongIDCypher = `
MATCH (s:Song {song_id: $song_id})
OPTIONAL MATCH (s)-[:PERFORMED_BY]-(a:Artist)
OPTIONAL MATCH (s)-[:HAS_GENRE]-(g:Genre)
OPTIONAL MATCH (s)-[:IN_ALBUM]-(al:Album)
OPTIONAL MATCH (g)-[:CONTAINS]-(sg:SubGenre)
WITH s,
     head(collect(DISTINCT a)) AS artist,
     head(collect(DISTINCT g)) AS genre,
     head(collect(DISTINCT al)) AS album,
     head(collect(DISTINCT sg)) AS subgenre
RETURN s.song_id AS song_id,
       s.title AS title,
       s.issue_date AS issue_date,
       artist.name AS artist_name,
       artist.artist_id AS artist_id,
       genre.name AS genre_name,
       genre.genre_id AS genre_id,
       album.title AS album_title,
       album.album_id AS album_id,
       subgenre.name AS subgenre_name`

const searchByArtistCypher = `
MATCH (a:Artist)
WHERE toLower(a.name) CONTAINS toLower($query)
WITH DISTINCT a
OPTIONAL MATCH (a)-[:PERFORMED_BY]-(s:Song)
OPTIONAL MATCH (s)-[:HAS_GENRE]-(g:Genre)
OPTIONAL MATCH (s)-[:IN_ALBUM]-(al:Album)
OPTIONAL MATCH (g)-[:CONTAINS]-(sg:SubGenre)
WITH s, a,
     head(collect(DISTINCT g)) AS genre,
     head(collect(DISTINCT al)) AS album,
     head(collect(DISTINCT sg)) AS subgenre
WHERE s IS NOT NULL
RETURN s.song_id AS song_id,
       s.title AS title,
       s.issue_date AS issue_date,
       a.name AS artist_name,
       a.artist_id AS artist_id,
       genre.name AS genre_name,
       genre.genre_id AS genre_id,
       album.title AS album_title,
       album.album_id AS album_id,
       subgenre.name AS subgenre_name
ORDER BY s.title
LIMIT $limit`

const recommendByGenreCypher = `
MATCH (s:Song {song_id: $song_id})-[:HAS_GENRE]-(g:Genre)-[:HAS_GENRE]-(rec:Song)
WHERE s.song_id <> rec.song_id
WITH DISTINCT rec
OPTIONAL MATCH (rec)-[:PERFORMED_BY]-(a:Artist)
OPTIONAL MATCH (rec)-[:HAS_GENRE]-(rg:Genre)
OPTIONAL MATCH (rec)-[:IN_ALBUM]-(al:Album)
WITH rec,
     head(collect(DISTINCT a)) AS artist,
     head(collect(DISTINCT rg)) AS genre,
     head(collect(DISTINCT al)) AS album
RETURN rec.song_id AS song_id,
       rec.title AS title,
       rec.issue_date AS issue_date,
       artist.name AS artist_name,
       artist.artist_id AS artist_id,
       genre.name AS genre_name,
       genre.genre_id AS genre_id,
       album.title AS album_title,
       album.album_id AS album_id
ORDER BY rand()
LIMIT $limit`

const recommendByArtistCypher = `
MATCH (s:Song {song_id: $song_id})-[:PERFORMED_BY]-(a:Artist)-[:PERFORMED_BY]-(rec:Song)
WHERE s.song_id <> rec.song_id
WITH DISTINCT rec, a
OPTIONAL MATCH (rec)-[:HAS_GENRE]-(g:Genre)
OPTIONAL MATCH (rec)-[:IN_ALBUM]-(al:Album)
WITH rec, a,
     head(collect(DISTINCT g)) AS genre,
     head(collect(DISTINCT al)) AS album
RETURN rec.song_id AS song_id,
       rec.title AS title,
       rec.issue_date AS issue_date,
       a.name AS artist_name,
       a.artist_id AS artist_id,
       genre.name AS genre_name,
       genre.genre_id AS genre_id,
       album.title AS album_title,
       album.album_id AS album_id
ORDER BY rec.issue_date DESC
LIMIT $limit`

// Popularity ranks first so the LIMIT applies to the playlist-count
// ordering, then attributes are attached to the surviving songs.
const recommendPopularCypher = `
MATCH (s:Song)-[:INCLUDES]-(p:Playlist)
WITH s, count(p) AS playlist_count
ORDER BY playlist_count DESC
LIMIT $limit
WITH DISTINCT s
OPTIONAL MATCH (s)-[:PERFORMED_BY]-(a:Artist)
OPTIONAL MATCH (s)-[:HAS_GENRE]-(g:Genre)
OPTIONAL MATCH (s)-[:IN_ALBUM]-(al:Album)
WITH s,
     head(collect(DISTINCT a)) AS artist,
     head(collect(DISTINCT g)) AS genre,
     head(collect(DISTINCT al)) AS album
RETURN s.song_id AS song_id,
       s.title AS title,
       s.issue_date AS issue_date,
       artist.name AS artist_name,
       artist.artist_id AS artist_id,
       genre.name AS genre_name,
       genre.genre_id AS genre_id,
       album.title AS album_title,
       album.album_id AS album_id`
