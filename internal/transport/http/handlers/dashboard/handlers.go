package dashboardhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/payroll"
	"nomina/internal/domain/roster"
	"nomina/internal/domain/vacation"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
)

type Handler struct {
	Ledger    *payroll.Ledger
	Roster    *roster.Roster
	Vacations *vacation.Service
}

func NewHandler(ledger *payroll.Ledger, r *roster.Roster, vacations *vacation.Service) *Handler {
	return &Handler{Ledger: ledger, Roster: r, Vacations: vacations}
}

type summary struct {
	Headcount      map[string]int        `json:"headcount"`
	Payroll        payroll.Totals        `json:"payroll"`
	ProcessedCount int                   `json:"processedCount"`
	Vacations      vacation.StatusCounts `json:"vacations"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/summary", h.handleSummary)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	records := h.Ledger.Snapshot()
	api.Success(w, summary{
		Headcount:      h.Roster.CountByStatus(),
		Payroll:        payroll.Aggregate(records),
		ProcessedCount: len(records),
		Vacations:      h.Vacations.Counts(),
	}, middleware.GetRequestID(r.Context()))
}
