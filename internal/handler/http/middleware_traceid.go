package http

import (
	"net/http"

	"github.com/google/uuid"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID puts a request logger tagged with the trace id into the
// request context and echoes the id in the response header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := traceIDFromRequest(r)

		requestLogger := h.logger.WithTraceID(traceID)
		w.Header().Set(traceIDHeader, traceID)

		next.ServeHTTP(w, r.WithContext(requestLogger.WithContext(r.Context())))
	})
}

// traceIDFromRequest reuses a well-formed UUID sent by the caller. Anything
// else is replaced so that arbitrary header values never reach the logs.
func traceIDFromRequest(r *http.Request) string {
	if id, err := uuid.Parse(r.Header.Get(traceIDHeader)); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
