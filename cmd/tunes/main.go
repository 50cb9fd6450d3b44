// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// The tunes CLI is a thin client for the catalog service API: search the
// song graph, ask free-text questions, and fetch recommendations from the
// terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

var (
	serverURL  string // Catalog service base URL
	jsonOutput bool   // Raw JSON output for scripting
)

var rootCmd = &cobra.Command{
	Use:   "tunes",
	Short: "Query the AleutianTunes music catalog",
	Long: `tunes is the terminal client for the AleutianTunes catalog service.

Examples:
  tunes search --kind title "love"      # Songs whose title contains "love"
  tunes search --kind artist "west"     # Songs by matching artists
  tunes ask "upbeat jazz from the 90s"  # Natural-language question (RAG)
  tunes recommend --kind genre SONG_ID  # Songs sharing the anchor's genre
  tunes popular --limit 20              # Most-playlisted songs
  tunes song SONG_ID                    # One song by exact id
  tunes health                          # Service and database liveness`,
}

func init() {
	defaultURL := os.Getenv("TUNES_SERVER_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:12220"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultURL,
		"Catalog service base URL (env: TUNES_SERVER_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output raw JSON for scripting")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(popularCmd)
	rootCmd.AddCommand(songCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, Styles.Error.Render(err.Error()))
		os.Exit(1)
	}
}
