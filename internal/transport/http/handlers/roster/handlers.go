package rosterhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/roster"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Roster *roster.Roster
}

func NewHandler(r *roster.Roster) *Handler {
	return &Handler{Roster: r}
}

type employeePayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Status     string `json:"status"`
	StartDate  string `json:"startDate"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees := h.Roster.List(r.URL.Query().Get("q"))
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Roster.FindByID(chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	created, err := h.Roster.Create(r.Context(), employee)
	if err != nil {
		h.failMutation(w, r, err)
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	employee.ID = chi.URLParam(r, "employeeID")
	updated, err := h.Roster.Update(r.Context(), employee)
	if err != nil {
		h.failMutation(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Roster.Delete(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		h.failMutation(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request) (roster.Employee, bool) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return roster.Employee{}, false
	}

	if payload.Status == "" {
		payload.Status = roster.StatusActive
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("department", payload.Department, "department is required")
	if !roster.ValidStatus(payload.Status) {
		v.Add("status", "must be active, inactive or suspended")
	}
	if payload.StartDate != "" {
		v.Date("startDate", payload.StartDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return roster.Employee{}, false
	}

	return roster.Employee{
		Name:       payload.Name,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Department: payload.Department,
		Position:   payload.Position,
		Status:     payload.Status,
		StartDate:  payload.StartDate,
	}, true
}

func (h *Handler) failMutation(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roster.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, roster.ErrDuplicateName):
		api.Fail(w, http.StatusConflict, "duplicate_employee", "an employee with that name already exists", middleware.GetRequestID(r.Context()))
	case errors.Is(err, roster.ErrStorage):
		api.Fail(w, http.StatusInternalServerError, "storage_error", "change could not be persisted", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, "roster_failed", "roster operation failed", middleware.GetRequestID(r.Context()))
	}
}
