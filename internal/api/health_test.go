package api

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

	"easiernav/boreholed/internal/models/dtos"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthCheckHandler(t *testing.T) {
	upSince := time.Now().Add(-90 * time.Second)

	cases := []struct {
		name    string
		pingErr error
		status  int
		overall string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"database down", errors.New("database is closed"), http.StatusServiceUnavailable, "down"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := HealthCheckHandler(pingerFunc(func(ctx context.Context) error { return tc.pingErr }), upSince)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))

			require.Equal(t, tc.status, rr.Code)
			var resp dtos.HealthCheckResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tc.overall, resp.Status)
			assert.Equal(t, tc.overall, resp.Services["database"].Status)
			assert.NotEmpty(t, resp.Uptime)
		})
	}
}
