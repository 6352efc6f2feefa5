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

func (h *Handler) recordConsumption(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.ConsumptionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("consumption payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	recordDate, err := time.Parse(dateLayout, request.Date)
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	record := models.ConsumptionRecord{
		FoodItemID: request.FoodItemID,
		Quantity:   request.Quantity,
		Date:       recordDate,
		MealType:   request.MealType,
	}
	if principal, ok := utils.GetPrincipalFromContext(r.Context()); ok {
		record.RecordedBy = principal.UserID
	}

	createdRecord, err := h.services.RecordsService.RecordConsumption(r.Context(), record)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, createdRecord, http.StatusCreated)
}

func (h *Handler) getConsumption(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	records, err := h.services.RecordsService.GetConsumption(r.Context(), from, to)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) recordWaste(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.WasteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("waste payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	recordDate, err := time.Parse(dateLayout, request.Date)
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	record := models.WasteRecord{
		FoodItemID: request.FoodItemID,
		Quantity:   request.Quantity,
		Date:       recordDate,
		MealType:   request.MealType,
	}
	if principal, ok := utils.GetPrincipalFromContext(r.Context()); ok {
		record.RecordedBy = principal.UserID
	}

	createdRecord, err := h.services.RecordsService.RecordWaste(r.Context(), record)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, createdRecord, http.StatusCreated)
}

// getWasteReport aggregates waste per food item over an inclusive date range.
func (h *Handler) getWasteReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	report, err := h.services.RecordsService.GetWasteReport(r.Context(), from, to)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, report, http.StatusOK)
}

// submitFeedback records a student's meal rating. The student id always comes
// from the authenticated principal, never from the body.
func (h *Handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("feedback payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	mealDate, err := time.Parse(dateLayout, request.MealDate)
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	feedback := models.Feedback{
		MealDate: mealDate,
		MealType: request.MealType,
		Rating:   request.Rating,
		Comment:  request.Comment,
	}
	if principal, ok := utils.GetPrincipalFromContext(r.Context()); ok {
		feedback.StudentID = principal.UserID
	}

	createdFeedback, err := h.services.RecordsService.SubmitFeedback(r.Context(), feedback)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, createdFeedback, http.StatusCreated)
}

func (h *Handler) getFeedback(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	feedback, err := h.services.RecordsService.GetFeedback(r.Context(), from, to)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, feedback, http.StatusOK)
}

func (h *Handler) createHoliday(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.HolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.validateStruct(request); err != nil {
		log.Warn().Err(err).Msg("holiday payload failed validation")
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, err.Error(), models.CodeValidationError)
		return
	}

	startDate, endDate, err := parseDateRange(request.StartDate, request.EndDate)
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	holiday := models.HolidaySchedule{
		StartDate:   startDate,
		EndDate:     endDate,
		Description: request.Description,
	}
	if principal, ok := utils.GetPrincipalFromContext(r.Context()); ok {
		holiday.CreatedBy = principal.UserID
	}

	createdHoliday, err := h.services.RecordsService.CreateHoliday(r.Context(), holiday)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	log.Info().Int64("id", createdHoliday.ScheduleID).Msg("holiday scheduled")

	_, _ = utils.WriteJSON(w, createdHoliday, http.StatusCreated)
}

func (h *Handler) getHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.services.RecordsService.GetHolidays(r.Context())
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, holidays, http.StatusOK)
}

func (h *Handler) deleteHoliday(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := pathID(r, "id")
	if err != nil {
		_, _ = utils.WriteAPIError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, models.CodeValidationError)
		return
	}

	if err := h.services.RecordsService.DeleteHoliday(r.Context(), scheduleID); err != nil {
		h.writeBusinessError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
