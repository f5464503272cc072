// Package vanna generates SQL through the hosted Vanna RPC API.
package vanna

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
	apiURL       = "https://ask.vanna.ai/rpc"
	defaultModel = "chinook"
)

func init() {
	generator.RegisterProvider("vanna", func(cfg *config.ProviderConfig) (port.SQLGenerator, error) {
		return NewGenerator(cfg), nil
	})
}

// Generator implements port.SQLGenerator against the Vanna RPC endpoint.
// The model names the trained schema profile (the Vanna "org").
type Generator struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGenerator creates a Vanna generator from a provider config.
func NewGenerator(cfg *config.ProviderConfig) *Generator {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return NewGeneratorWithEndpoint(cfg, endpoint)
}

// NewGeneratorWithEndpoint creates a generator pointing at a custom endpoint (for testing).
func NewGeneratorWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Generator {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Generator{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type rpcRequest struct {
	Method string        `json:"method"`
	Params []rpcQuestion `json:"params"`
}

type rpcQuestion struct {
	Question string `json:"question"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *Generator) GenerateSQL(ctx context.Context, question string) (string, error) {
	bodyBytes, err := json.Marshal(rpcRequest{
		Method: "generate_sql",
		Params: []rpcQuestion{{Question: question}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Vanna-Key", g.apiKey)
	req.Header.Set("Vanna-Org", g.model)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling vanna API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", generator.StatusError("vanna", resp.StatusCode, resp.Header.Get("Retry-After"), respBody)
	}

	return parseResponse(respBody)
}

func parseResponse(body []byte) (string, error) {
	var resp rpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("vanna API error: %s", resp.Error.Message)
	}

	// result is either {"sql": "..."} or the bare statement.
	var sql string
	var obj struct {
		SQL string `json:"sql"`
	}
	if err := json.Unmarshal(resp.Result, &obj); err == nil {
		sql = obj.SQL
	} else if err := json.Unmarshal(resp.Result, &sql); err != nil {
		return "", fmt.Errorf("unexpected vanna result: %s", generator.Truncate(string(resp.Result), 200))
	}

	sql = generator.ExtractSQL(sql)
	if sql == "" {
		return "", generator.ErrEmptySQL
	}
	return sql, nil
}
