package vacationhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/roster"
	"nomina/internal/domain/vacation"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Service *vacation.Service
	Roster  *roster.Roster
}

func NewHandler(service *vacation.Service, r *roster.Roster) *Handler {
	return &Handler{Service: service, Roster: r}
}

type requestPayload struct {
	Employee      string `json:"employee"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	DaysRequested int    `json:"daysRequested"`
	DaysAvailable int    `json:"daysAvailable"`
	Reason        string `json:"reason"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/vacations", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSubmit)
		r.Get("/counts", h.handleCounts)
		r.Post("/{requestID}/approve", h.handleApprove)
		r.Post("/{requestID}/reject", h.handleReject)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requests := h.Service.List(r.URL.Query().Get("status"))
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCounts(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Counts(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employee", payload.Employee, "employee is required")
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if payload.DaysRequested <= 0 {
		v.Add("daysRequested", "must be a positive number of days")
	}
	if payload.DaysRequested > payload.DaysAvailable {
		v.Add("daysRequested", "cannot exceed the days available")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	employee, err := h.Roster.FindByName(payload.Employee)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found in roster", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.Submit(r.Context(), vacation.Request{
		Employee:      employee.Name,
		Department:    employee.Department,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
		DaysRequested: payload.DaysRequested,
		DaysAvailable: payload.DaysAvailable,
		Reason:        payload.Reason,
	})
	if err != nil {
		h.failMutation(w, r, err)
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	request, err := h.Service.Approve(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		h.failMutation(w, r, err)
		return
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	request, err := h.Service.Reject(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		h.failMutation(w, r, err)
		return
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failMutation(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, vacation.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "request_not_found", "vacation request not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, vacation.ErrAlreadyDecided):
		api.Fail(w, http.StatusConflict, "already_decided", "vacation request is no longer pending", middleware.GetRequestID(r.Context()))
	case errors.Is(err, vacation.ErrStorage):
		api.Fail(w, http.StatusInternalServerError, "storage_error", "change could not be persisted", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, "vacation_failed", "vacation operation failed", middleware.GetRequestID(r.Context()))
	}
}
