package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
)

// errorStatuses is checked in order; the first kind matched by errors.Is wins.
var errorStatuses = []struct {
	kind   error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrDuplicateCredential, http.StatusConflict},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrStoreUnavailable, http.StatusServiceUnavailable},
	{service.ErrPasswordHashingFailed, http.StatusServiceUnavailable},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},
	{context.DeadlineExceeded, http.StatusServiceUnavailable},
}

// errorFromService returns the status and the message safe to send to the
// client. Only validation errors carry their detail; every other kind is
// reported by its own message so that causes never leak.
func errorFromService(err error) (int, string) {
	for _, e := range errorStatuses {
		if !errors.Is(err, e.kind) {
			continue
		}
		if e.kind == service.ErrValidation {
			return e.status, err.Error()
		}
		if e.kind == context.DeadlineExceeded {
			return e.status, http.StatusText(e.status)
		}
		return e.status, e.kind.Error()
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func statusFromError(err error) int {
	status, _ := errorFromService(err)
	return status
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorFromService(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, message, status)
}
