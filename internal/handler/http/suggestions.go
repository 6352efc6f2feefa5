// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
)

func (h *Handler) getSuggestions(w http.ResponseWriter, r *http.Request) {
	status := models.SuggestionStatus(r.URL.Query().Get("status"))

	suggestions, err := h.services.SuggestionService.GetSuggestions(r.Context(), status)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, suggestions, http.StatusOK)
}

func (h *Handler) getSuggestion(w http.ResponseWriter, r *http.Request) {
	suggestionID, err := pathID(r, "id")
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	suggestion, err := h.services.SuggestionService.GetSuggestion(r.Context(), suggestionID)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, suggestion, http.StatusOK)
}

// createSuggestion ingests a proposed menu batch from the external generator.
// The suggestion lands as PENDING and stays inert until an admin decides it.
func (h *Handler) createSuggestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("suggestion payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	suggestion, err := suggestionFromRequest(request)
	if err != nil {
		log.Warn().Err(err).Msg("suggestion payload carries malformed dates")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	createdSuggestion, err := h.services.SuggestionService.CreateSuggestion(r.Context(), suggestion)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	log.Info().Int64("id", createdSuggestion.SuggestionID).Int("items", len(createdSuggestion.Items)).Msg("menu suggestion ingested")

	_, _ = utils.WriteJSON(w, createdSuggestion, http.StatusCreated)
}

// acceptSuggestion drives the PENDING → ACCEPTED transition. The service
// layer guarantees at most one concurrent caller wins; everyone else comes
// back here with a state conflict.
func (h *Handler) acceptSuggestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	suggestionID, err := pathID(r, "id")
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	var request models.AcceptSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	actingUserID := request.ActingUserID
	if principal, ok := utils.GetPrincipalFromContext(r.Context()); ok {
		// The authenticated principal always wins over the body field.
		actingUserID = principal.UserID
	}

	acceptedSuggestion, err := h.services.SuggestionService.AcceptSuggestion(r.Context(), suggestionID, actingUserID)
	if err != nil {
		suggestionTransitionsTotal.WithLabelValues(acceptOutcome(err)).Inc()
		h.writeBusinessError(w, r, err)
		return
	}
	suggestionTransitionsTotal.WithLabelValues("accepted").Inc()

	log.Info().Int64("id", acceptedSuggestion.SuggestionID).Int64("accepted_by", actingUserID).Msg("menu suggestion accepted")

	_, _ = utils.WriteJSON(w, models.AcceptedRange{
		StartDate: acceptedSuggestion.StartDate.Format(dateLayout),
		EndDate:   acceptedSuggestion.EndDate.Format(dateLayout),
	}, http.StatusOK)
}

func (h *Handler) rejectSuggestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	suggestionID, err := pathID(r, "id")
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.services.SuggestionService.RejectSuggestion(r.Context(), suggestionID); err != nil {
		if errors.Is(err, service.ErrInvalidState) {
			suggestionTransitionsTotal.WithLabelValues("conflict").Inc()
		}
		h.writeBusinessError(w, r, err)
		return
	}
	suggestionTransitionsTotal.WithLabelValues("rejected").Inc()

	log.Info().Int64("id", suggestionID).Msg("menu suggestion rejected")

	w.WriteHeader(http.StatusNoContent)
}

// acceptOutcome buckets accept failures for the transition counter.
func acceptOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrSuggestionExpired):
		return "expired"
	case errors.Is(err, service.ErrInvalidState):
		return "conflict"
	default:
		return "failed"
	}
}

// suggestionFromRequest converts wire-format dates into the domain model.
func suggestionFromRequest(request models.SuggestionRequest) (models.MenuSuggestion, error) {
	startDate, err := time.Parse(dateLayout, request.StartDate)
	if err != nil {
		return models.MenuSuggestion{}, err
	}
	endDate, err := time.Parse(dateLayout, request.EndDate)
	if err != nil {
		return models.MenuSuggestion{}, err
	}

	suggestion := models.MenuSuggestion{
		StartDate: startDate,
		EndDate:   endDate,
		Items:     make([]models.SuggestionItem, 0, len(request.Items)),
	}
	for position, item := range request.Items {
		itemDate, err := time.Parse(dateLayout, item.Date)
		if err != nil {
			return models.MenuSuggestion{}, err
		}
		suggestion.Items = append(suggestion.Items, models.SuggestionItem{
			Date:            itemDate,
			MealType:        item.MealType,
			FoodItemID:      item.FoodItemID,
			PlannedQuantity: item.PlannedQuantity,
			Position:        position,
		})
	}

	return suggestion, nil
}
