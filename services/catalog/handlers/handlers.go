// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers exposes the catalog services over gin. Handlers do
// request binding, dispatch, and response shaping only; all business rules
// live in the services package.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
	"github.com/AleutianAI/AleutianTunes/services/catalog/services"
)

var handlerTracer = otel.Tracer("tunes.catalog.handlers")

// =============================================================================
// Service contracts
// =============================================================================

// Searcher is the deterministic search surface the handlers consume.
type Searcher interface {
	Search(ctx context.Context, query, kind string, limit int) ([]datatypes.SongRecord, error)
	LookupByID(ctx context.Context, songID string) []datatypes.SongRecord
}

// Asker is the RAG surface the handlers consume.
type Asker interface {
	Query(ctx context.Context, question string) (string, []datatypes.SongRecord)
}

// Recommender is the recommendation surface the handlers consume.
type Recommender interface {
	Recommend(ctx context.Context, songID, kind string, limit int) ([]datatypes.SongRecord, error)
	Popular(ctx context.Context, limit int) []datatypes.SongRecord
}

// Pinger reports store liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) bool
}

// =============================================================================
// Search
// =============================================================================

// HandleSearch serves POST /v1/search. Deterministic kinds go to the
// search service; the "rag" kind is routed to the RAG pipeline, which may
// be nil when no LLM backend is configured.
func HandleSearch(searcher Searcher, asker Asker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := handlerTracer.Start(c.Request.Context(), "HandleSearch")
		defer span.End()

		var request datatypes.SearchRequest
		if err := c.BindJSON(&request); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("failed to bind search request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		span.SetAttributes(
			attribute.String("search_type", request.SearchType),
			attribute.Int("limit", request.Limit),
		)

		requestID := uuid.New().String()
		slog.Info("received search request",
			"request_id", requestID, "search_type", request.SearchType, "query", request.Query)

		start := time.Now()
		if request.SearchType == datatypes.KindRAG {
			if asker == nil {
				c.JSON(http.StatusServiceUnavailable,
					gin.H{"error": "RAG search requires a configured LLM backend"})
				return
			}
			answer, songs := asker.Query(ctx, request.Query)
			c.JSON(http.StatusOK, datatypes.SearchResponse{
				Songs:         songs,
				RAGResponse:   &answer,
				TotalCount:    len(songs),
				SearchType:    request.SearchType,
				Query:         request.Query,
				ExecutionTime: time.Since(start).Seconds(),
			})
			return
		}

		songs, err := searcher.Search(ctx, request.Query, request.SearchType, request.Limit)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, datatypes.SearchResponse{
			Songs:         songs,
			TotalCount:    len(songs),
			SearchType:    request.SearchType,
			Query:         request.Query,
			ExecutionTime: time.Since(start).Seconds(),
		})
	}
}

// =============================================================================
// RAG
// =============================================================================

// HandleAsk serves POST /v1/ask. Degraded answers are still HTTP 200; the
// pipeline contract is that it never fails a request.
func HandleAsk(asker Asker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := handlerTracer.Start(c.Request.Context(), "HandleAsk")
		defer span.End()

		var request datatypes.AskRequest
		if err := c.BindJSON(&request); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if asker == nil {
			c.JSON(http.StatusServiceUnavailable,
				gin.H{"error": "asking questions requires a configured LLM backend"})
			return
		}

		start := time.Now()
		answer, songs := asker.Query(ctx, request.Question)
		c.JSON(http.StatusOK, datatypes.AskResponse{
			Answer:        answer,
			Songs:         songs,
			TotalCount:    len(songs),
			ExecutionTime: time.Since(start).Seconds(),
		})
	}
}

// =============================================================================
// Recommendations
// =============================================================================

// HandleRecommend serves POST /v1/recommendations.
func HandleRecommend(recommender Recommender) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := handlerTracer.Start(c.Request.Context(), "HandleRecommend")
		defer span.End()

		var request datatypes.RecommendRequest
		if err := c.BindJSON(&request); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		span.SetAttributes(attribute.String("kind", request.Kind))

		songs, err := recommender.Recommend(ctx, request.SongID, request.Kind, request.Limit)
		if err != nil {
			if errors.Is(err, services.ErrUnsupportedRecommendKind) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, datatypes.RecommendResponse{Songs: songs, TotalCount: len(songs)})
	}
}

// HandlePopular serves GET /v1/songs/popular.
func HandlePopular(recommender Recommender) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := handlerTracer.Start(c.Request.Context(), "HandlePopular")
		defer span.End()

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < datatypes.MinLimit || n > datatypes.MaxLimit {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(
					"limit must be an integer between %d and %d", datatypes.MinLimit, datatypes.MaxLimit)})
				return
			}
			limit = n
		}
		songs := recommender.Popular(ctx, limit)
		c.JSON(http.StatusOK, datatypes.RecommendResponse{Songs: songs, TotalCount: len(songs)})
	}
}

// HandleSongByID serves GET /v1/songs/:songId.
func HandleSongByID(searcher Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := handlerTracer.Start(c.Request.Context(), "HandleSongByID")
		defer span.End()

		songID := c.Param("songId")
		records := searcher.LookupByID(ctx, songID)
		if len(records) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "song not found", "song_id": songID})
			return
		}
		c.JSON(http.StatusOK, records[0])
	}
}

// =============================================================================
// Health
// =============================================================================

// HandleHealth serves GET /health with a store liveness probe.
func HandleHealth(pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := handlerTracer.Start(c.Request.Context(), "HandleHealth")
		defer span.End()

		healthy := pinger.Ping(ctx)
		status := "healthy"
		database := "connected"
		code := http.StatusOK
		if !healthy {
			status = "unhealthy"
			database = "disconnected"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"database":  database,
			"timestamp": time.Now().Unix(),
		})
	}
}
