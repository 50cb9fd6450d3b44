// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

// Search kinds accepted by the /v1/search endpoint. The deterministic
// search service only handles KindTitle and KindArtist; KindRAG is routed
// by the handler to the RAG pipeline.
const (
	KindTitle  = "title"
	KindArtist = "artist"
	KindRAG    = "rag"
)

// KindGenre is the genre-neighbor recommendation kind; the artist-neighbor
// kind reuses KindArtist.
const KindGenre = "genre"

// Bounds for result-count limits, shared by every endpoint that accepts
// one. Struct tags cannot reference constants, so the binding tags below
// carry the same values as literals.
const (
	MinLimit = 1
	MaxLimit = 50
)

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Query      string `json:"query" binding:"required,min=1,max=500"`
	SearchType string `json:"search_type" binding:"required,oneof=title artist rag"`
	Limit      int    `json:"limit" binding:"omitempty,min=1,max=50"`
	UserID     string `json:"user_id,omitempty"`
}

// SearchResponse is the body returned by POST /v1/search.
//
// RAGResponse is only populated for search_type "rag"; for deterministic
// searches it is omitted.
type SearchResponse struct {
	Songs         []SongRecord `json:"songs"`
	RAGResponse   *string      `json:"rag_response,omitempty"`
	TotalCount    int          `json:"total_count"`
	SearchType    string       `json:"search_type"`
	Query         string       `json:"query"`
	ExecutionTime float64      `json:"execution_time"`
}

// AskRequest is the body of POST /v1/ask, the dedicated RAG entry point.
type AskRequest struct {
	Question string `json:"question" binding:"required,min=1,max=1000"`
}

// AskResponse is the body returned by POST /v1/ask. Answer is always
// populated, falling back to a fixed degraded message when the pipeline
// fails internally.
type AskResponse struct {
	Answer        string       `json:"answer"`
	Songs         []SongRecord `json:"songs"`
	TotalCount    int          `json:"total_count"`
	ExecutionTime float64      `json:"execution_time"`
}

// RecommendRequest is the body of POST /v1/recommendations.
type RecommendRequest struct {
	SongID string `json:"song_id" binding:"required"`
	Kind   string `json:"kind" binding:"required,oneof=genre artist"`
	Limit  int    `json:"limit" binding:"omitempty,min=1,max=50"`
}

// RecommendResponse is the body returned by POST /v1/recommendations and
// GET /v1/songs/popular.
type RecommendResponse struct {
	Songs      []SongRecord `json:"songs"`
	TotalCount int          `json:"total_count"`
}
