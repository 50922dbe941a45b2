package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// injectLogger puts zerolog.Logger into request context the same way
// withTraceID middleware does (via zerolog/log.Ctx).
func injectLogger(r *http.Request, l zerolog.Logger) *http.Request {
	return r.WithContext(l.WithContext(r.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		path             string
		handler          http.HandlerFunc
		checkLogContains []string
	}{
		{
			name:   "POST 201",
			method: http.MethodPost,
			path:   routeRegister,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"id":"u-1"}`))
			},
			checkLogContains: []string{`"status":201`, `"method":"POST"`, `"uri":"/api/users/register"`, `"size":12`},
		},
		{
			name:   "implicit 200",
			method: http.MethodGet,
			path:   "/",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("ok"))
			},
			checkLogContains: []string{`"status":200`, `"size":2`},
		},
		{
			name:             "no write at all",
			method:           http.MethodGet,
			path:             "/empty",
			handler:          func(w http.ResponseWriter, r *http.Request) {},
			checkLogContains: []string{`"status":200`, `"size":0`},
		},
	}

	h, _ := newHandlerWithMock(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			req := injectLogger(httptest.NewRequest(tt.method, tt.path, nil), zerolog.New(&buf))

			serve(h.withLogging(tt.handler), req)

			for _, s := range tt.checkLogContains {
				assert.Contains(t, buf.String(), s)
			}
			assert.Contains(t, buf.String(), `"duration"`)
		})
	}
}

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	rw.WriteHeader(http.StatusConflict)
	rw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusConflict, rw.status)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Same(t, http.ResponseWriter(rec), rw.Unwrap())
}
