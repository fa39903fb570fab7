package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aidmatch/trust-engine/internal/fraud"
	"github.com/aidmatch/trust-engine/internal/matching"
	"github.com/aidmatch/trust-engine/pkg/common"
	"github.com/aidmatch/trust-engine/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServiceVersion = "1.0.0"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			ServiceName: serviceName,
			Version:     testServiceVersion,
			CORSOrigins: "http://localhost:3000",
		},
	}
}

// setupTestRouter builds the router the way main does, without upstream stores
func setupTestRouter(checks map[string]func() error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(testConfig(), routerDeps{
		matchingService: matching.NewService(nil, nil, nil, nil),
		fraudService:    fraud.NewService(nil),
		healthChecks:    checks,
	})
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name           string
		checks         map[string]func() error
		expectedStatus int
		expectedHealth string
	}{
		{
			name:           "stores disabled",
			checks:         map[string]func() error{"database": nil, "redis": nil},
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
		},
		{
			name: "redis down",
			checks: map[string]func() error{
				"database": func() error { return nil },
				"redis":    func() error { return errors.New("connection refused") },
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(tt.checks)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp common.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedHealth, resp.Status)
			assert.Equal(t, serviceName, resp.Service)
			assert.Equal(t, testServiceVersion, resp.Version)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouter(nil)

	// generate at least one observation
	warm := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "trust_engine_http_requests_total"))
}

func TestCorrelationIDIsEchoed(t *testing.T) {
	router := setupTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trust/score", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestRoutesAreRegistered(t *testing.T) {
	router := setupTestRouter(nil)

	routes := make(map[string]bool)
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, expected := range []string{
		"GET /healthz",
		"GET /metrics",
		"POST /api/v1/trust/score",
		"POST /api/v1/preferences/filter",
		"POST /api/v1/matching/suggestions",
		"GET /api/v1/matching/beneficiaries/:id/suggestions",
		"POST /api/v1/fraud/analyze",
		"GET /api/v1/fraud/network",
	} {
		assert.True(t, routes[expected], "missing route %s", expected)
	}
}

func TestStoredEndpointsWithoutStores(t *testing.T) {
	router := setupTestRouter(nil)

	for _, path := range []string{"/api/v1/fraud/network", "/api/v1/matching/beneficiaries/b1/suggestions"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}
