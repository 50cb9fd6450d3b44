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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	searchKind     string // title or artist
	searchLimit    int    // Max results for search
	recommendKind  string // genre or artist
	recommendLimit int    // Max results for recommendations
	popularLimit   int    // Max results for popular
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search songs by title or artist substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newAPIClient().search(args[0], searchKind, searchLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(resp)
		}
		fmt.Println(Styles.Title.Render(fmt.Sprintf("%d songs for %q (%s search)",
			resp.TotalCount, resp.Query, resp.SearchType)))
		printSongs(resp.Songs)
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a free-text question about the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newAPIClient().ask(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(resp)
		}
		fmt.Println(Styles.AnswerBox.Render(resp.Answer))
		if resp.TotalCount > 0 {
			fmt.Println(Styles.Subtitle.Render("Referenced songs:"))
			printSongs(resp.Songs)
		}
		return nil
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [song-id]",
	Short: "Recommend songs related to an anchor song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newAPIClient().recommend(args[0], recommendKind, recommendLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(resp)
		}
		fmt.Println(Styles.Title.Render(fmt.Sprintf("%d recommendations (%s) for %s",
			resp.TotalCount, recommendKind, args[0])))
		printSongs(resp.Songs)
		return nil
	},
}

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most-playlisted songs",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newAPIClient().popular(popularLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(resp)
		}
		fmt.Println(Styles.Title.Render(fmt.Sprintf("%d popular songs", resp.TotalCount)))
		printSongs(resp.Songs)
		return nil
	},
}

var songCmd = &cobra.Command{
	Use:   "song [song-id]",
	Short: "Show one song by exact id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := newAPIClient().song(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(record)
		}
		printSongs([]datatypes.SongRecord{*record})
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show catalog service and database liveness",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := newAPIClient().health()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(status)
		}
		line := fmt.Sprintf("service: %v  database: %v", status["status"], status["database"])
		if status["status"] == "healthy" {
			fmt.Println(Styles.Success.Render(line))
		} else {
			fmt.Println(Styles.Warning.Render(line))
		}
		return nil
	},
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "title",
		"Search kind: title or artist")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0,
		"Maximum results (server default when 0)")

	recommendCmd.Flags().StringVarP(&recommendKind, "kind", "k", "genre",
		"Recommendation kind: genre or artist")
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "l", 0,
		"Maximum results (server default when 0)")

	popularCmd.Flags().IntVarP(&popularLimit, "limit", "l", 0,
		"Maximum results (server default when 0)")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
