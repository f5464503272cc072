package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/config"
	"findash/internal/generator/gemini"
)

func newTestGenerator(serverURL string) *gemini.Generator {
	return gemini.NewGeneratorWithEndpoint(&config.ProviderConfig{
		Provider:    "gemini",
		APIKey:      "test-key",
		TimeoutSecs: 5,
	}, serverURL)
}

func TestGeminiGenerator_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		contents, _ := reqBody["contents"].([]interface{})
		assert.Len(t, contents, 1)

		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "SELECT COUNT(*) "}, {"text": "FROM vendors"}]}, "finishReason": "STOP"}]}`))
	}))
	defer server.Close()

	sql, err := newTestGenerator(server.URL).GenerateSQL(context.Background(), "how many vendors")

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM vendors", sql)
}

func TestGeminiGenerator_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).GenerateSQL(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiGenerator_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key"}}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).GenerateSQL(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
