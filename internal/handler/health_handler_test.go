package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/handler"
	"findash/internal/repository/sqlite/sqlitetest"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(nil)

	w := get(h.Liveness, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp["status"])
	_, err := time.Parse(time.RFC3339, resp["timestamp"])
	assert.NoError(t, err)
}

func TestHealthHandler_Readiness(t *testing.T) {
	db := sqlitetest.NewDB(t)
	h := handler.NewHealthHandler(db)

	w := get(h.Readiness, "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Close())
	w = get(h.Readiness, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
