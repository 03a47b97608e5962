package http

import (
	"net/http"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OverrideHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Set(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type overrideHandlerImpl struct {
	overrideService attendance.OverrideService
}

func NewOverrideHandler(overrideService attendance.OverrideService) OverrideHandler {
	return &overrideHandlerImpl{overrideService: overrideService}
}

func (h *overrideHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.OverrideFilter{
		EmployeeID: chi.URLParam(r, "id"),
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		From:       queryString(r, "from"),
		To:         queryString(r, "to"),
	}

	result, err := h.overrideService.ListOverrides(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Set creates or replaces the override for one day
func (h *overrideHandlerImpl) Set(w http.ResponseWriter, r *http.Request) {
	var req attendance.SetOverrideRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.overrideService.SetOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance override saved", result)
}

func (h *overrideHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	date := chi.URLParam(r, "date")

	if err := h.overrideService.DeleteOverride(r.Context(), employeeID, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance override removed", nil)
}
