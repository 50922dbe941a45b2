package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// maxCredentialsBodySize caps the register and login request bodies.
const maxCredentialsBodySize = 1 << 16

const helloMessage = "Hello world!"

func (h *Handler) hello(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: helloMessage}, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	credentials, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.Register(ctx, credentials)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Debug().Str("user_id", user.ID).Msg("user registered")
	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	credentials, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	session, err := h.services.AuthService.Authenticate(ctx, credentials)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Debug().Str("user_id", session.User.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, session, http.StatusOK)
}

// me returns the user the bearer token was issued for. The auth middleware
// has already verified the token.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user in request context")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// decodeCredentials reads the JSON body of r. On failure it writes a 400
// response and returns ok == false.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (models.Credentials, bool) {
	var credentials models.Credentials

	r.Body = http.MaxBytesReader(w, r.Body, maxCredentialsBodySize)
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, errInvalidJSON.Error(), http.StatusBadRequest)
		return models.Credentials{}, false
	}

	return credentials, true
}
