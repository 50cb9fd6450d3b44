// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graphstore wraps the Neo4j Go driver behind a small query-runner
// interface so templates and the Cypher chain can be tested against fakes.
//
// The store is constructed exactly once in main and injected into every
// consumer. There is no lazy global: initialization happens before the
// HTTP listener starts, and the driver is reused read-only afterwards.
package graphstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var storeTracer = otel.Tracer("tunes.catalog.graphstore")

// Compile-time interface implementation check.
var _ Runner = (*Store)(nil)

// Runner executes a Cypher query with named parameters and returns the
// result rows as alias→value maps, in store order.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use; every call is one
// independent read, with no transactional scope spanning calls.
type Runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// Store is the Neo4j-backed Runner used in production.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
}

// Config holds the connection settings for NewStore.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// NewStore creates the driver and verifies connectivity.
//
// # Inputs
//
//   - ctx: used for the connectivity probe.
//   - cfg: bolt URI, credentials, and target database name.
//
// # Outputs
//
//   - *Store: ready for concurrent use.
//   - error: non-nil when the driver cannot be created or the probe fails.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	slog.Info("Neo4j connection established", "uri", cfg.URI, "database", cfg.Database)
	return &Store{driver: driver, database: cfg.Database}, nil
}

// Run executes cypher via neo4j.ExecuteQuery, which manages sessions and
// transactions itself, and buffers the full result before returning.
func (s *Store) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	ctx, span := storeTracer.Start(ctx, "Store.Run")
	defer span.End()

	result, err := neo4j.ExecuteQuery(ctx, s.driver, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("execute neo4j query: %w", err)
	}
	span.SetAttributes(attribute.Int("rows", len(result.Records)))

	rows := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		rows = append(rows, record.AsMap())
	}
	return rows, nil
}

// Ping reports whether the database answers a trivial query.
func (s *Store) Ping(ctx context.Context) bool {
	rows, err := s.Run(ctx, "RETURN 1 AS ok", nil)
	if err != nil {
		slog.Error("Neo4j health probe failed", "error", err)
		return false
	}
	return len(rows) > 0
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// fallbackSchema describes the music graph for the Cypher-generation
// prompt when the introspection procedures are not available (e.g. a
// stripped-down server without db.labels).
const fallbackSchema = `Node labels: Song(song_id, title, issue_date), Artist(artist_id, name), Genre(genre_id, name), SubGenre(name), Album(album_id, title), Playlist(playlist_id, name)
Relationships: (Song)-[:PERFORMED_BY]-(Artist), (Song)-[:HAS_GENRE]-(Genre), (Genre)-[:CONTAINS]-(SubGenre), (Song)-[:IN_ALBUM]-(Album), (Playlist)-[:INCLUDES]-(Song)`

// SchemaSummary builds a short textual description of the graph schema for
// prompt grounding: node labels and relationship types as the server
// reports them, falling back to the built-in catalog description when
// introspection fails.
func SchemaSummary(ctx context.Context, runner Runner) string {
	labels, err := columnValues(ctx, runner, "CALL db.labels() YIELD label RETURN label", "label")
	if err != nil {
		slog.Warn("schema introspection unavailable, using built-in schema", "error", err)
		return fallbackSchema
	}
	relTypes, err := columnValues(ctx, runner,
		"CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType", "relationshipType")
	if err != nil {
		slog.Warn("schema introspection unavailable, using built-in schema", "error", err)
		return fallbackSchema
	}
	if len(labels) == 0 {
		return fallbackSchema
	}
	sort.Strings(labels)
	sort.Strings(relTypes)
	return fmt.Sprintf("Node labels: %s\nRelationship types: %s",
		strings.Join(labels, ", "), strings.Join(relTypes, ", "))
}

func columnValues(ctx context.Context, runner Runner, cypher, column string) ([]string, error) {
	rows, err := runner.Run(ctx, cypher, nil)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if v, ok := row[column].(string); ok {
			values = append(values, v)
		}
	}
	return values, nil
}
