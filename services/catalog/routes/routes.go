// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianTunes/services/catalog/handlers"
)

// SetupRoutes wires the catalog endpoints onto the router. Asker may be
// nil when no LLM backend is configured; the affected endpoints then
// answer 503 instead of being absent.
func SetupRoutes(router *gin.Engine, searcher handlers.Searcher, asker handlers.Asker,
	recommender handlers.Recommender, pinger handlers.Pinger) {

	router.GET("/health", handlers.HandleHealth(pinger))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/search", handlers.HandleSearch(searcher, asker))
		v1.POST("/ask", handlers.HandleAsk(asker))
		v1.POST("/recommendations", handlers.HandleRecommend(recommender))
		songs := v1.Group("/songs")
		{
			songs.GET("/popular", handlers.HandlePopular(recommender))
			songs.GET("/:songId", handlers.HandleSongByID(searcher))
		}
	}
}
