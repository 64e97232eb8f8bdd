// internal/tests/router_test.go
package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	w := server.do(t, http.MethodGet, "/health", nil, "", nextIP())
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	assert.True(t, response["success"].(bool))
	assert.Equal(t, "Fast Purchase API is running", response["message"])

	object := response["object"].(map[string]interface{})
	assert.Equal(t, "healthy", object["status"])
	assert.NotEmpty(t, object["timestamp"])
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t)

	w := server.do(t, http.MethodGet, "/does-not-exist", nil, "", nextIP())
	require.Equal(t, http.StatusNotFound, w.Code)

	response := decodeResponse(t, w)
	assert.Equal(t, "Route not found", response["message"])
	assert.Contains(t, responseErrors(response), "Cannot GET /does-not-exist")
}

func TestCORSHeadersPresent(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.RemoteAddr = nextIP()

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
