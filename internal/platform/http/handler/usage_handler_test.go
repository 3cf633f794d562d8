package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance_dashboard/internal/api"
)

type fakeUsageCounter struct {
	enabled bool
	counts  map[string]int64
	err     error
}

func (f *fakeUsageCounter) Enabled() bool { return f.enabled }

func (f *fakeUsageCounter) Count(ctx context.Context, provider string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[provider], nil
}

func TestUsageHandler_Handle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		counter        UsageCounter
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "enabled: counts per provider",
			counter:        &fakeUsageCounter{enabled: true, counts: map[string]int64{"alphavantage": 3}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"enabled":true,"calls":{"alphavantage":3,"newsapi":0}}`,
		},
		{
			name:           "disabled: zeros without touching redis",
			counter:        &fakeUsageCounter{enabled: false, err: errors.New("must not be called")},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"enabled":false,"calls":{"alphavantage":0,"newsapi":0}}`,
		},
		{
			name:           "nil counter",
			counter:        nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"enabled":false,"calls":{"alphavantage":0,"newsapi":0}}`,
		},
		{
			name:           "redis error",
			counter:        &fakeUsageCounter{enabled: true, err: errors.New("connection refused")},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"usage counter unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/usage", NewUsageHandler(tt.counter, "alphavantage", "newsapi").Handle)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/usage", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		})
	}
}

func TestUsageHandler_ErrorUsesSharedErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	counter := &fakeUsageCounter{enabled: true, err: errors.New("dial tcp: connection refused")}
	router.GET("/usage", NewUsageHandler(counter, "alphavantage").Handle)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/usage", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var res api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, api.ErrorResponse{Error: "usage counter unavailable"}, res)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
