// Package openai generates SQL with an OpenAI-compatible chat completions API.
// The same client serves Groq through its compatible endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"findash/internal/config"
	"findash/internal/generator"
	"findash/internal/port"
)

const (
	openAIURL   = "https://api.openai.com/v1/chat/completions"
	groqURL     = "https://api.groq.com/openai/v1/chat/completions"
	openAIModel = "gpt-4o-mini"
	groqModel   = "llama-3.3-70b-versatile"
)

func init() {
	generator.RegisterProvider("openai", func(cfg *config.ProviderConfig) (port.SQLGenerator, error) {
		return newGenerator(cfg, "openai", openAIURL, openAIModel), nil
	})
	generator.RegisterProvider("groq", func(cfg *config.ProviderConfig) (port.SQLGenerator, error) {
		return newGenerator(cfg, "groq", groqURL, groqModel), nil
	})
}

// Generator implements port.SQLGenerator using chat completions.
type Generator struct {
	name     string
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGenerator creates an OpenAI generator from a provider config.
func NewGenerator(cfg *config.ProviderConfig) *Generator {
	return newGenerator(cfg, "openai", openAIURL, openAIModel)
}

// NewGeneratorWithEndpoint creates a generator pointing at a custom API endpoint (for testing).
func NewGeneratorWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Generator {
	g := newGenerator(cfg, "openai", openAIURL, openAIModel)
	g.endpoint = endpoint
	return g
}

func newGenerator(cfg *config.ProviderConfig, name, defaultURL, defaultModel string) *Generator {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Generator{
		name:     name,
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *Generator) GenerateSQL(ctx context.Context, question string) (string, error) {
	reqBody := map[string]interface{}{
		"model":       g.model,
		"temperature": 0,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": generator.BuildSQLPrompt(question),
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s API: %w", g.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", generator.StatusError(g.name, resp.StatusCode, resp.Header.Get("Retry-After"), respBody)
	}

	return parseResponse(respBody)
}

// apiResponse models the chat completions response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	if resp.Choices[0].FinishReason == "length" {
		return "", fmt.Errorf("output truncated (finish_reason: length)")
	}

	sql := generator.ExtractSQL(resp.Choices[0].Message.Content)
	if sql == "" {
		return "", generator.ErrEmptySQL
	}
	return sql, nil
}
