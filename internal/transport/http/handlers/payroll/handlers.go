package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/payroll"
	"nomina/internal/domain/reports"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

type calcPayload struct {
	Employee        string  `json:"employee"`
	GrossSalary     float64 `json:"grossSalary"`
	Bonuses         float64 `json:"bonuses"`
	OtherDeductions float64 `json:"otherDeductions"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/records", h.handleListRecords)
		r.Get("/records/{recordID}/payslip", h.handlePayslip)
		r.Get("/summary", h.handleSummary)
		r.Post("/calculate", h.handleCalculate)
		r.Post("/process", h.handleProcess)
		r.Get("/export", h.handleExport)
		r.Post("/import", h.handleImport)
	})
	r.Get("/reports/payroll-register", h.handleRegister)
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.Service.Ledger().Search(r.URL.Query().Get("q"))
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	records := h.Service.Ledger().Search(r.URL.Query().Get("q"))
	summary := struct {
		payroll.Totals
		EmployeeCount int `json:"employeeCount"`
	}{payroll.Aggregate(records), len(records)}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeCalcPayload(w, r)
	if !ok {
		return
	}
	record, err := h.Service.Calculate(input)
	if err != nil {
		h.failCalc(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeCalcPayload(w, r)
	if !ok {
		return
	}
	record, err := h.Service.Process(r.Context(), input)
	if err != nil {
		if errors.Is(err, payroll.ErrStorage) {
			// The in-memory ledger kept the record; warn the caller that it
			// may not survive a restart.
			api.FailWithDetails(w, http.StatusInternalServerError, "storage_error",
				"record processed but could not be persisted", record, middleware.GetRequestID(r.Context()))
			return
		}
		h.failCalc(w, r, err)
		return
	}
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := payroll.EncodeSnapshot(h.Service.Ledger().Snapshot())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to encode payroll snapshot", middleware.GetRequestID(r.Context()))
		return
	}
	filename := fmt.Sprintf("nomina_%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "failed to read import payload", middleware.GetRequestID(r.Context()))
		return
	}
	count, err := h.Service.Ledger().Import(r.Context(), data)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrBadSnapshot):
			api.Fail(w, http.StatusBadRequest, "invalid_snapshot", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, payroll.ErrStorage):
			api.Fail(w, http.StatusInternalServerError, "storage_error", "imported records could not be persisted", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "import_failed", "import failed", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, map[string]int{"imported": count}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	record, ok := h.Service.Ledger().Find(chi.URLParam(r, "recordID"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "record_not_found", "payroll record not found", middleware.GetRequestID(r.Context()))
		return
	}
	pdf, err := reports.PayslipPDF(record, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payslip_"+record.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	pdf, err := reports.RegisterPDF(h.Service.Ledger().Snapshot(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to render payroll register", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payroll_register.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) decodeCalcPayload(w http.ResponseWriter, r *http.Request) (payroll.CalcInput, bool) {
	var payload calcPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return payroll.CalcInput{}, false
	}

	v := shared.NewValidator()
	v.Required("employee", payload.Employee, "employee is required")
	v.Positive("grossSalary", payload.GrossSalary)
	v.NonNegative("bonuses", payload.Bonuses)
	v.NonNegative("otherDeductions", payload.OtherDeductions)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return payroll.CalcInput{}, false
	}

	return payroll.CalcInput{
		Employee:        payload.Employee,
		GrossSalary:     payload.GrossSalary,
		Bonuses:         payload.Bonuses,
		OtherDeductions: payload.OtherDeductions,
	}, true
}

func (h *Handler) failCalc(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, payroll.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found in roster", middleware.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusInternalServerError, "payroll_failed", "payroll calculation failed", middleware.GetRequestID(r.Context()))
}
