// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/app"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
)

// dateLayout is the wire format for all date query parameters and fields.
const dateLayout = "2006-01-02"

// getMenu serves the public menu. Without parameters it answers with today's
// plan as a single day; with a from/to pair it answers with the day list for
// the inclusive range.
func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	if fromParam == "" && toParam == "" {
		menu, err := h.services.MenuService.GetTodayMenu(r.Context())
		if err != nil {
			h.writeBusinessError(w, r, err)
			return
		}
		_, _ = utils.WriteJSON(w, menu, http.StatusOK)
		return
	}

	from, to, err := parseDateRange(fromParam, toParam)
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	menu, err := h.services.MenuService.GetMenu(r.Context(), from, to)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, menu, http.StatusOK)
}

func (h *Handler) createMenuEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.MenuEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("menu entry payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	entryDate, err := time.Parse(dateLayout, request.Date)
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	entry := models.MenuPlanEntry{
		Date:            entryDate,
		MealType:        request.MealType,
		FoodItemID:      request.FoodItemID,
		PlannedQuantity: request.PlannedQuantity,
	}
	if principal, ok := utils.GetPrincipalFromContext(r.Context()); ok {
		entry.CreatedBy = principal.UserID
	}

	createdEntry, err := h.services.MenuService.CreateMenuEntry(r.Context(), entry)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	log.Info().Int64("id", createdEntry.EntryID).Str("meal_type", createdEntry.MealType).Msg("menu entry created")

	_, _ = utils.WriteJSON(w, createdEntry, http.StatusCreated)
}

func (h *Handler) deleteMenuEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathID(r, "id")
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.services.MenuService.DeleteMenuEntry(r.Context(), entryID); err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getFoodItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.services.MenuService.GetFoodItems(r.Context())
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) createFoodItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.FoodItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("food item payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	createdItem, err := h.services.MenuService.CreateFoodItem(r.Context(), models.FoodItem{
		Name:     request.Name,
		Category: request.Category,
		Unit:     request.Unit,
	})
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	log.Info().Int64("id", createdItem.FoodItemID).Str("name", createdItem.Name).Msg("food item created")

	_, _ = utils.WriteJSON(w, createdItem, http.StatusCreated)
}

// parseDateRange parses a from/to query pair. Both bounds are required once
// either is present.
func parseDateRange(fromParam, toParam string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromParam)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(dateLayout, toParam)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
