package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// destination mirrors the API's destination payload; only the fields the
// generator needs are decoded.
type destination struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Country    string   `json:"country"`
	Region     string   `json:"region"`
	Summary    string   `json:"summary"`
	Categories []string `json:"categories"`
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type apiClient struct {
	baseURL    string
	adminToken string
	httpClient *http.Client
}

func newAPIClient(baseURL, adminToken string) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminToken: adminToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *apiClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.adminToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("API returned status %d with unreadable body", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK || !envelope.Success {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, envelope.Error)
	}
	if out != nil {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}

func (a *apiClient) GetDestination(ctx context.Context, slug string) (*destination, error) {
	var dest destination
	if err := a.do(ctx, http.MethodGet, "/api/destinations/"+url.PathEscape(slug), nil, &dest); err != nil {
		return nil, fmt.Errorf("destination %q: %w", slug, err)
	}
	return &dest, nil
}

// ListDestinations pages through every destination for a country. The API
// caps pageSize at 100, so large regions take multiple round trips.
func (a *apiClient) ListDestinations(ctx context.Context, country string) ([]destination, error) {
	var all []destination
	for page := 1; ; page++ {
		path := fmt.Sprintf("/api/destinations?country=%s&page=%d&pageSize=100", url.QueryEscape(country), page)
		var batch []destination
		if err := a.do(ctx, http.MethodGet, path, nil, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < 100 {
			return all, nil
		}
	}
}

type upsertGuideRequest struct {
	DestinationID uint   `json:"destinationId"`
	CategorySlug  string `json:"categorySlug"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	ModelName     string `json:"modelName"`
}

func (a *apiClient) UpsertGuide(ctx context.Context, destinationID uint, category string, content *guideContent, model string, restaurant bool) error {
	path := "/api/admin/guides/category"
	if restaurant {
		path = "/api/admin/guides/restaurant"
	}
	return a.do(ctx, http.MethodPut, path, upsertGuideRequest{
		DestinationID: destinationID,
		CategorySlug:  category,
		Title:         content.Title,
		Content:       content.Body,
		ModelName:     model,
	}, nil)
}
