package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	role := models.Role(r.URL.Query().Get("role"))

	users, err := h.services.UserService.GetUsers(r.Context(), role)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, users, http.StatusOK)
}

// createUser is the admin-driven twin of register: same payload, same
// service path, but gated behind the ADMIN role.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("user payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	createdUser, err := h.services.AuthService.RegisterUser(r.Context(), request)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, createdUser, http.StatusCreated)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), userID)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := pathID(r, "id")
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	var request models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("user update failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	updatedUser, err := h.services.UserService.UpdateUser(r.Context(), models.User{
		UserID: userID,
		Name:   request.Name,
		Role:   request.Role,
	})
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	log.Info().Int64("id", updatedUser.UserID).Str("role", string(updatedUser.Role)).Msg("user updated")

	_, _ = utils.WriteJSON(w, updatedUser, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.services.UserService.DeleteUser(r.Context(), userID); err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID reads a positive int64 URL parameter registered with chi.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// getAdminDashboard serves the aggregate role and consumption counters.
func (h *Handler) getAdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.services.UserService.GetAdminDashboard(r.Context())
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, dashboard, http.StatusOK)
}
