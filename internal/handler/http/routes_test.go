package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/service"
	"github.com/MKhiriev/go-shop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler_OptionalFeatures(t *testing.T) {
	svcs, _, _, _ := testServices()

	h := NewHandler(svcs, nil, config.App{}, config.Server{}, logger.Nop())
	assert.Nil(t, h.credentialLimiter)
	assert.Nil(t, h.paymentHasher)

	h = NewHandler(svcs, nil, config.App{PaymentHashKey: "k"}, config.Server{RateLimit: 1, RateBurst: 2}, logger.Nop())
	assert.NotNil(t, h.credentialLimiter)
	assert.NotNil(t, h.paymentHasher)
}

func TestRoot(t *testing.T) {
	svcs, _, _, _ := testServices()
	router := newTestHandler(t, svcs, config.App{}, defaultServerConfig()).Init()

	rr := doRequest(t, router, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "API is running", rr.Body.String())
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain"))
}

func TestNotFound(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/api/products"},
		{name: "unknown path with query", method: http.MethodGet, path: "/nope?page=2"},
		{name: "method not allowed on known path", method: http.MethodPatch, path: "/api/users/login"},
		{name: "unknown nested path", method: http.MethodGet, path: "/api/orders/x/y/z"},
	}

	svcs, _, _, _ := testServices()
	router := newTestHandler(t, svcs, config.App{}, defaultServerConfig()).Init()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, tt.method, tt.path, userToken, nil)

			require.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, "Not Found - "+tt.path, decodeMessage(t, rr).Message)
		})
	}
}

func TestVersion(t *testing.T) {
	svcs, _, _, _ := testServices()
	router := newTestHandler(t, svcs, config.App{}, defaultServerConfig()).Init()

	rr := doRequest(t, router, http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.AppBuildInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, models.AppBuildInfo{Version: "1.2.3", BuildDate: "2026-04-01", BuildCommit: "abc123"}, got)
}

func TestMetricsEndpoint_CountsByRoutePattern(t *testing.T) {
	svcs, _, _, _ := testServices()
	router := newTestHandler(t, svcs, config.App{}, defaultServerConfig()).Init()

	doRequest(t, router, http.MethodGet, "/", "", nil)
	doRequest(t, router, http.MethodGet, "/api/orders/abc", "", nil)

	rr := doRequest(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, `goshop_http_requests_total{method="GET",route="/",status="200"} 1`)
	assert.Contains(t, body, `route="/api/orders/*",status="401"`)
	assert.NotContains(t, body, "/api/orders/abc")
}

func TestRecoverer_PanicBecomes500(t *testing.T) {
	svcs, _, _, _ := testServices()
	svcs.AppInfoService = nil // the version handler dereferences it
	router := newTestHandler(t, svcs, config.App{}, defaultServerConfig()).Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestNewHandler_NilMetricsSkipsEndpoint(t *testing.T) {
	svcs := &service.Services{}
	router := NewHandler(svcs, nil, config.App{}, config.Server{}, logger.Nop()).Init()

	rr := doRequest(t, router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
