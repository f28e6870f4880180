// Package enrich provides best-effort autofill of book details from an
// external text-generation service. The collaborator is treated as opaque:
// one attempt, a bounded timeout, and a neutral fallback on any failure.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Suggestion is the enrichment payload for a book draft.
type Suggestion struct {
	Genre       string `json:"genre"`
	Description string `json:"description"`
}

// GeminiClient requests genre/description suggestions from the Gemini
// generateContent API, constrained to a JSON response schema.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
)

// NewGeminiClient creates a client for the Gemini API. Model may be empty
// to use the default. The client carries no timeout of its own; the
// request context is the only deadline, so the Enricher's configured bound
// governs every call.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultModel
	}
	return &GeminiClient{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		model:      model,
		apiKey:     apiKey,
	}
}

// SetBaseURL overrides the API endpoint, used in tests.
func (c *GeminiClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   *responseSchema `json:"responseSchema,omitempty"`
}

type responseSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]schemaProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

type schemaProperty struct {
	Type string `json:"type"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Suggest asks the model for a genre and short description for the given
// title and author.
func (c *GeminiClient) Suggest(ctx context.Context, title, author string) (*Suggestion, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	prompt := fmt.Sprintf(
		"Provide a professional summary and the main genre for a book titled %q by %q.",
		title, author,
	)

	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &responseSchema{
				Type: "OBJECT",
				Properties: map[string]schemaProperty{
					"genre":       {Type: "STRING"},
					"description": {Type: "STRING"},
				},
				Required: []string{"genre", "description"},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch suggestion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(genResp.Candidates[0].Content.Parts[0].Text), &suggestion); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}

	return &suggestion, nil
}
