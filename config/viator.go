package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/toptours/api-go/types"
)

// ViatorClient calls the Viator partner API. Constructed once in main and
// injected into the tour controller.
type ViatorClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewViatorClient(cfg *Config) *ViatorClient {
	return &ViatorClient{
		apiKey:  cfg.ViatorAPIKey,
		baseURL: cfg.ViatorBaseURL,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

func (v *ViatorClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, v.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("exp-api-key", v.apiKey)
	req.Header.Set("Accept", "application/json;version=2.0")
	req.Header.Set("Accept-Language", "en-US")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return fmt.Errorf("viator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr types.ViatorErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("viator returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("viator returned %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// SearchTours runs a product search for one destination.
func (v *ViatorClient) SearchTours(ctx context.Context, req types.ViatorSearchRequest) (*types.ViatorSearchResponse, error) {
	if req.Currency == "" {
		req.Currency = "USD"
	}
	var out types.ViatorSearchResponse
	if err := v.do(ctx, http.MethodPost, "/partner/products/search", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches one product by its Viator product code.
func (v *ViatorClient) GetProduct(ctx context.Context, productCode string) (*types.ViatorProduct, error) {
	var out types.ViatorProduct
	if err := v.do(ctx, http.MethodGet, "/partner/products/"+productCode, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
