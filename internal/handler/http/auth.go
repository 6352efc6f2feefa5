package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("registration payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		_, _ = utils.WriteAPIError(w, http.StatusInternalServerError, app.MsgRegistrationFailed, models.CodeDatabaseError)
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Str("role", string(registeredUser.Role)).Msg("user registered")

	_, _ = utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString, User: registeredUser}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("login payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		// A wrong password and an unknown email produce the same answer so
		// the endpoint cannot be used to probe registered addresses.
		h.writeLoginError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		_, _ = utils.WriteAPIError(w, http.StatusInternalServerError, app.MsgLoginFailed, models.CodeDatabaseError)
		return
	}

	log.Info().Int64("id", foundUser.UserID).Msg("user logged in")

	_, _ = utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString, User: foundUser}, http.StatusOK)
}

// profile returns the live principal record resolved by the auth middleware.
// The client's session controller uses it as its revalidation probe.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgAuthenticationRequired, models.CodeUnauthenticated)
		return
	}

	_, _ = utils.WriteJSON(w, principal, http.StatusOK)
}

// logout exists for API symmetry: tokens are stateless, so the server has
// nothing to revoke and the client clears its own credential slot.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// updateProfile lets the principal change their own display name and/or
// email. The target account is always the authenticated principal; there is
// no way to address another user through this endpoint.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgAuthenticationRequired, models.CodeUnauthenticated)
		return
	}

	var request models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if request.Name == "" && request.Email == "" {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("profile payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	updated, err := h.services.AuthService.UpdateProfile(ctx, principal.UserID, request)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	log.Info().Int64("id", updated.UserID).Msg("profile updated")

	_, _ = utils.WriteJSON(w, updated, http.StatusOK)
}

// changePassword re-verifies the principal's current password before storing
// the new hash. A wrong current password is a 400, not a 401: the caller is
// authenticated, the payload is what is wrong.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		_, _ = utils.WriteAPIError(w, http.StatusUnauthorized, app.MsgAuthenticationRequired, models.CodeUnauthenticated)
		return
	}

	var request models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("password change payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, principal.UserID, request); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			log.Warn().Int64("id", principal.UserID).Msg("password change with wrong current password")
			_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgCurrentPasswordIncorrect, models.CodeValidationError)
			return
		}

		h.writeBusinessError(w, r, err)
		return
	}

	log.Info().Int64("id", principal.UserID).Msg("password changed")

	w.WriteHeader(http.StatusNoContent)
}
