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
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/AleutianAI/AleutianTunes/pkg/logging"
	"github.com/AleutianAI/AleutianTunes/services/catalog/config"
	"github.com/AleutianAI/AleutianTunes/services/catalog/cypherchain"
	"github.com/AleutianAI/AleutianTunes/services/catalog/graphstore"
	"github.com/AleutianAI/AleutianTunes/services/catalog/handlers"
	"github.com/AleutianAI/AleutianTunes/services/catalog/llm"
	"github.com/AleutianAI/AleutianTunes/services/catalog/routes"
	"github.com/AleutianAI/AleutianTunes/services/catalog/services"
	"github.com/AleutianAI/AleutianTunes/services/catalog/templates"
)

func initTracer(endpoint string) (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("catalog-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func main() {
	settings := config.FromEnv()

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(settings.LogLevel),
		Service: "catalog",
		JSON:    true,
	})
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	// --- Init the tracer (optional: no endpoint means no export) ---
	if settings.OTLPEndpoint != "" {
		cleanup, err := initTracer(settings.OTLPEndpoint)
		if err != nil {
			log.Fatalf("failed to setup the OTLP tracer: %v", err)
		}
		defer cleanup(context.Background())
	}

	// --- Graph store: constructed once here, injected everywhere ---
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := graphstore.NewStore(ctx, graphstore.Config{
		URI:      settings.Neo4jURI,
		Username: settings.Neo4jUsername,
		Password: settings.Neo4jPassword,
		Database: settings.Neo4jDatabase,
	})
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to Neo4j: %v", err)
	}
	defer store.Close(context.Background())

	queryTemplates := templates.New(store)
	searchService := services.NewSearchService(queryTemplates)
	recommendService := services.NewRecommendationService(queryTemplates)

	// --- RAG pipeline: degrade to deterministic-only when no backend ---
	var asker handlers.Asker
	model, err := llm.NewModel(settings)
	switch {
	case err == nil:
		schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
		schema := graphstore.SchemaSummary(schemaCtx, store)
		schemaCancel()
		chain := cypherchain.New(model, store, schema, settings.RAGTopK)
		asker = services.NewRAGService(chain, searchService)
		slog.Info("RAG pipeline enabled", "backend", settings.LLMBackend)
	case errors.Is(err, llm.ErrNoBackend):
		slog.Warn("no LLM backend configured, RAG endpoints answer 503")
	default:
		log.Fatalf("failed to create LLM backend: %v", err)
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("catalog-service"))
	routes.SetupRoutes(router, searchService, asker, recommendService, store)

	slog.Info("catalog service listening", "port", settings.Port)
	if err := router.Run(":" + settings.Port); err != nil {
		log.Fatalf("catalog service exited: %v", err)
	}
}
