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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AleutianAI/AleutianTunes/services/catalog/datatypes"
)

// RAG answers can take a while on local models.
var httpClient = &http.Client{Timeout: 4 * time.Minute}

// apiClient wraps the catalog service HTTP API.
type apiClient struct {
	baseURL string
}

func newAPIClient() *apiClient {
	return &apiClient{baseURL: serverURL}
}

func (a *apiClient) search(query, kind string, limit int) (*datatypes.SearchResponse, error) {
	body := datatypes.SearchRequest{Query: query, SearchType: kind, Limit: limit}
	var out datatypes.SearchResponse
	if err := a.postJSON("/v1/search", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *apiClient) ask(question string) (*datatypes.AskResponse, error) {
	body := datatypes.AskRequest{Question: question}
	var out datatypes.AskResponse
	if err := a.postJSON("/v1/ask", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *apiClient) recommend(songID, kind string, limit int) (*datatypes.RecommendResponse, error) {
	body := datatypes.RecommendRequest{SongID: songID, Kind: kind, Limit: limit}
	var out datatypes.RecommendResponse
	if err := a.postJSON("/v1/recommendations", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *apiClient) popular(limit int) (*datatypes.RecommendResponse, error) {
	path := "/v1/songs/popular"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var out datatypes.RecommendResponse
	if err := a.getJSON(path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *apiClient) song(songID string) (*datatypes.SongRecord, error) {
	var out datatypes.SongRecord
	if err := a.getJSON("/v1/songs/"+songID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// health decodes both the healthy (200) and unhealthy (503) payloads.
func (a *apiClient) health() (map[string]any, error) {
	resp, err := httpClient.Get(a.baseURL + "/health")
	if err != nil {
		return nil, fmt.Errorf("reach catalog service: %w", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

func (a *apiClient) postJSON(path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	resp, err := httpClient.Post(a.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("reach catalog service: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (a *apiClient) getJSON(path string, out any) error {
	resp, err := httpClient.Get(a.baseURL + path)
	if err != nil {
		return fmt.Errorf("reach catalog service: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (HTTP %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
