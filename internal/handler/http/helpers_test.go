package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/mock"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testServerConfig() config.Server {
	return config.Server{
		HTTPAddress:    "localhost:8080",
		RequestTimeout: 5 * time.Second,
		AllowedOrigins: []string{"*"},
	}
}

// newHandlerWithMock builds a Handler backed by a gomock AuthService.
func newHandlerWithMock(t *testing.T) (*Handler, *mock.MockAuthService) {
	t.Helper()
	auth := mock.NewMockAuthService(gomock.NewController(t))
	svcs := &service.Services{AuthService: auth}
	return NewHandler(svcs, testServerConfig(), logger.Nop()), auth
}

// credentialsBody serialises credentials to a JSON request body.
func credentialsBody(t *testing.T, c models.Credentials) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(c)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
