package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func newGeminiClient(apiKey, model string) *geminiClient {
	return &geminiClient{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type guideContent struct {
	Title string
	Body  string
}

// GenerateGuide asks the model for a markdown guide. The prompt pins the
// output shape: first line is the title, the remainder is the article body.
func (g *geminiClient) GenerateGuide(ctx context.Context, dest destination, category string) (*guideContent, error) {
	prompt := buildPrompt(dest, category)

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", geminiBaseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result geminiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("generative API returned status %d with unreadable body", resp.StatusCode)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("generative API error %d: %s", result.Error.Code, result.Error.Message)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("generative API returned no candidates")
	}

	return parseGuide(result.Candidates[0].Content.Parts[0].Text)
}

func buildPrompt(dest destination, category string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a travel guide about %q for %s, %s.\n", strings.ReplaceAll(category, "-", " "), dest.Name, dest.Country)
	if dest.Summary != "" {
		fmt.Fprintf(&b, "Context about the destination: %s\n", dest.Summary)
	}
	b.WriteString("The first line must be a catchy article title with no markdown markup.\n")
	b.WriteString("After the title, write the article body in markdown with section headings.\n")
	b.WriteString("Keep it factual, useful for tourists, and around 800 words.\n")
	return b.String()
}

// parseGuide splits the model output into title and body. Models sometimes
// wrap the title line in markdown emphasis despite the prompt, so strip it.
func parseGuide(text string) (*guideContent, error) {
	text = strings.TrimSpace(text)
	title, body, found := strings.Cut(text, "\n")
	if !found {
		return nil, fmt.Errorf("model output has no body")
	}

	title = strings.Trim(strings.TrimSpace(title), "#* ")
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, fmt.Errorf("model output is missing a title or body")
	}

	return &guideContent{Title: title, Body: body}, nil
}
