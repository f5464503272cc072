package vanna_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/config"
	"findash/internal/generator"
	"findash/internal/generator/vanna"
)

func newTestGenerator(serverURL string) *vanna.Generator {
	return vanna.NewGeneratorWithEndpoint(&config.ProviderConfig{
		Provider:    "vanna",
		APIKey:      "test-key",
		Model:       "chinook",
		TimeoutSecs: 5,
	}, serverURL)
}

func TestVannaGenerator_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("Vanna-Key"))
		assert.Equal(t, "chinook", r.Header.Get("Vanna-Org"))

		var body struct {
			Method string `json:"method"`
			Params []struct {
				Question string `json:"question"`
			} `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "generate_sql", body.Method)
		if assert.Len(t, body.Params, 1) {
			assert.Equal(t, "How many invoices?", body.Params[0].Question)
		}

		_, _ = w.Write([]byte(`{"result": {"sql": "SELECT COUNT(*) FROM invoices"}}`))
	}))
	defer server.Close()

	sql, err := newTestGenerator(server.URL).GenerateSQL(context.Background(), "How many invoices?")

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM invoices", sql)
}

func TestVannaGenerator_StringResultWithFence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{\"result\": \"```sql\\nSELECT 1\\n```\"}"))
	}))
	defer server.Close()

	sql, err := newTestGenerator(server.URL).GenerateSQL(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", sql)
}

func TestVannaGenerator_RPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).GenerateSQL(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestVannaGenerator_EmptySQL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": {"sql": "  "}}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).GenerateSQL(context.Background(), "q")

	assert.ErrorIs(t, err, generator.ErrEmptySQL)
}

func TestVannaGenerator_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "20")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).GenerateSQL(context.Background(), "q")

	var rlErr *generator.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "vanna", rlErr.Provider)
	assert.Equal(t, 20*time.Second, rlErr.RetryAfter)
}

func TestVannaGenerator_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).GenerateSQL(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestVannaGenerator_Registered(t *testing.T) {
	g, err := generator.NewGenerator(&config.ProviderConfig{Provider: "vanna"})
	require.NoError(t, err)
	assert.IsType(t, &vanna.Generator{}, g)
}
