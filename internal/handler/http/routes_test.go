// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/internal/workers"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// ─────────────────────────────────────────────
// Full router on top of the in-memory store
// ─────────────────────────────────────────────

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:     "router-test-sign-key",
			TokenIssuer:      "go-auth-keeper",
			TokenDuration:    time.Hour,
			PasswordHashCost: bcrypt.MinCost,
		},
		Storage: config.Storage{DB: config.DB{Driver: config.DriverMemory}},
		Server:  testServerConfig(),
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, utils.NewUUIDGenerator(), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	services := service.NewServices(storages, workers.NewPool(2), cfg, logger.Nop())
	return NewHandler(services, cfg.Server, logger.Nop()).Init()
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(router, req)
}

func TestRouter_Hello(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello world!"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, routeRegister, `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered models.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "a@x.com", registered.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = postJSON(t, router, routeLogin, `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, registered, session.User)

	req := httptest.NewRequest(http.MethodGet, routeMe, nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec = serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me models.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, registered, me)
}

func TestRouter_RegisterDuplicate(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, routeRegister, `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, routeRegister, `{"email":"a@x.com","password":"other-password"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, service.ErrDuplicateCredential.Error(), decodeError(t, rec))
}

func TestRouter_RegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty email", `{"email":"","password":"secret1"}`},
		{"too long password", `{"email":"a@x.com","password":"` + strings.Repeat("p", 73) + `"}`},
		{"empty password", `{"email":"a@x.com","password":""}`},
		{"missing fields", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, routeRegister, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.True(t, strings.HasPrefix(decodeError(t, rec), service.ErrValidation.Error()))
		})
	}
}

// Emails are opaque identifiers: any non-empty value registers and logs in.
func TestRouter_UnformattedCredentialsRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{
		`{"email":"alice","password":"secret1"}`,
		`{"email":" a@x.com","password":"secret1"}`,
		`{"email":"b@x.com","password":"   "}`,
		`{"email":"Alice <c@x.com>","password":"secret1"}`,
	} {
		rec := postJSON(t, router, routeRegister, body)
		require.Equal(t, http.StatusCreated, rec.Code, body)

		rec = postJSON(t, router, routeLogin, body)
		assert.Equal(t, http.StatusOK, rec.Code, body)
	}
}

func TestRouter_LoginFailuresAreIndistinguishable(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, routeRegister, `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := postJSON(t, router, routeLogin, `{"email":"a@x.com","password":"wrong"}`)
	unknownEmail := postJSON(t, router, routeLogin, `{"email":"nobody@x.com","password":"secret1"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestRouter_MeWithoutToken(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, routeMe, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, routeMe, nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec = serve(router, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.ErrTokenIsExpiredOrInvalid.Error(), decodeError(t, rec))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/users/unknown", nil),
		httptest.NewRequest(http.MethodGet, routeRegister, nil),
		httptest.NewRequest(http.MethodDelete, routeMe, nil),
	} {
		rec := serve(router, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, req.Method+" "+req.URL.Path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, routeLogin, nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	rec := serve(router, req)

	assert.Less(t, rec.Code, http.StatusMultipleChoices)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_CompressesJSONResponses(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Hello world!"}`, string(body))
}

func TestRouter_AcceptsGzipRequestBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, routeRegister,
		strings.NewReader(string(gzipBytes(t, `{"email":"gz@x.com","password":"secret1"}`))))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	rec := serve(router, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
