package payrollhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/payroll"
	"nomina/internal/domain/roster"
	filestore "nomina/internal/platform/storage/file"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	store, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("filestore: %v", err)
	}

	ros, err := roster.New(ctx, store, []roster.Employee{
		{ID: "1", Name: "María García López", Department: "Ventas", Status: roster.StatusActive},
		{ID: "2", Name: "Carlos Rodríguez Pérez", Department: "IT", Status: roster.StatusActive},
	})
	if err != nil {
		t.Fatalf("roster: %v", err)
	}

	ledger, err := payroll.NewLedger(ctx, store, nil)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}

	router := chi.NewRouter()
	NewHandler(payroll.NewService(ledger, ros)).RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, env
}

func TestProcessJourney(t *testing.T) {
	server := newTestServer(t)

	// preview first, the dialog's "Calcular" step
	resp, env := doJSON(t, http.MethodPost, server.URL+"/payroll/calculate",
		`{"employee":"María García López","grossSalary":85000,"bonuses":5000}`)
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("calculate failed: status %d, envelope %+v", resp.StatusCode, env)
	}
	var preview payroll.Record
	if err := json.Unmarshal(env.Data, &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if preview.NetSalary != 75143.63 {
		t.Fatalf("expected net 75143.63, got %v", preview.NetSalary)
	}

	// the ledger is still empty
	_, env = doJSON(t, http.MethodGet, server.URL+"/payroll/records", "")
	var records []payroll.Record
	if err := json.Unmarshal(env.Data, &records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("preview must not mutate the ledger, got %d records", len(records))
	}

	// process, the dialog's "Procesar Nómina" step
	resp, env = doJSON(t, http.MethodPost, server.URL+"/payroll/process",
		`{"employee":"María García López","grossSalary":85000,"bonuses":5000}`)
	if resp.StatusCode != http.StatusCreated || !env.Success {
		t.Fatalf("process failed: status %d, envelope %+v", resp.StatusCode, env)
	}

	_, env = doJSON(t, http.MethodGet, server.URL+"/payroll/records", "")
	if err := json.Unmarshal(env.Data, &records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(records) != 1 || records[0].Department != "Ventas" {
		t.Fatalf("expected one processed record with the roster department, got %+v", records)
	}
}

func TestProcessUnknownEmployee(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/payroll/process",
		`{"employee":"Nadie","grossSalary":50000}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "employee_not_found" {
		t.Fatalf("expected employee_not_found, got %+v", env.Error)
	}
}

func TestProcessRejectsNonPositiveGross(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/payroll/process",
		`{"employee":"María García López","grossSalary":0}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %+v", env.Error)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	server := newTestServer(t)

	for _, body := range []string{
		`{"employee":"María García López","grossSalary":85000,"bonuses":5000}`,
		`{"employee":"Carlos Rodríguez Pérez","grossSalary":120000,"otherDeductions":2000}`,
	} {
		if resp, _ := doJSON(t, http.MethodPost, server.URL+"/payroll/process", body); resp.StatusCode != http.StatusCreated {
			t.Fatalf("process failed with %d", resp.StatusCode)
		}
	}

	resp, err := http.Get(server.URL + "/payroll/export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer resp.Body.Close()
	if disposition := resp.Header.Get("Content-Disposition"); !strings.Contains(disposition, "nomina_") {
		t.Fatalf("expected a date-named attachment, got %q", disposition)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read export: %v", err)
	}

	importResp, env := doJSON(t, http.MethodPost, server.URL+"/payroll/import", buf.String())
	if importResp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("import failed: status %d, envelope %+v", importResp.StatusCode, env)
	}

	_, env = doJSON(t, http.MethodGet, server.URL+"/payroll/records", "")
	var records []payroll.Record
	if err := json.Unmarshal(env.Data, &records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected the exported records back, got %d", len(records))
	}
}

func TestImportRejectsMalformedPayload(t *testing.T) {
	server := newTestServer(t)

	if resp, _ := doJSON(t, http.MethodPost, server.URL+"/payroll/process",
		`{"employee":"María García López","grossSalary":85000}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("process failed with %d", resp.StatusCode)
	}

	resp, env := doJSON(t, http.MethodPost, server.URL+"/payroll/import", `{"not":"an array"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "invalid_snapshot" {
		t.Fatalf("expected invalid_snapshot, got %+v", env.Error)
	}

	// prior content untouched
	_, env = doJSON(t, http.MethodGet, server.URL+"/payroll/records", "")
	var records []payroll.Record
	if err := json.Unmarshal(env.Data, &records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("rejected import must not mutate the ledger, got %d records", len(records))
	}
}

func TestSummary(t *testing.T) {
	server := newTestServer(t)

	for _, body := range []string{
		`{"employee":"María García López","grossSalary":85000,"bonuses":5000}`,
		`{"employee":"Carlos Rodríguez Pérez","grossSalary":120000,"otherDeductions":2000}`,
	} {
		if resp, _ := doJSON(t, http.MethodPost, server.URL+"/payroll/process", body); resp.StatusCode != http.StatusCreated {
			t.Fatalf("process failed with %d", resp.StatusCode)
		}
	}

	_, env := doJSON(t, http.MethodGet, server.URL+"/payroll/summary", "")
	var summary struct {
		payroll.Totals
		EmployeeCount int `json:"employeeCount"`
	}
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.EmployeeCount != 2 {
		t.Fatalf("expected 2 employees, got %d", summary.EmployeeCount)
	}
	if summary.TotalGross != 205000 {
		t.Fatalf("expected total gross 205000, got %v", summary.TotalGross)
	}
	if summary.TotalBonuses != 5000 {
		t.Fatalf("expected total bonuses 5000, got %v", summary.TotalBonuses)
	}

	// search filter narrows the aggregation
	_, env = doJSON(t, http.MethodGet, server.URL+"/payroll/summary?q=ventas", "")
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.EmployeeCount != 1 || summary.TotalGross != 85000 {
		t.Fatalf("expected the filtered subset, got %+v", summary)
	}
}

func TestPayslipAndRegisterPDFs(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/payroll/process",
		`{"employee":"María García López","grossSalary":85000}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("process failed with %d", resp.StatusCode)
	}
	var record payroll.Record
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}

	for _, url := range []string{
		server.URL + "/payroll/records/" + record.ID + "/payslip",
		server.URL + "/reports/payroll-register",
	} {
		resp, err := http.Get(url)
		if err != nil {
			t.Fatalf("GET %s: %v", url, err)
		}
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: status %d", url, resp.StatusCode)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
			t.Fatalf("GET %s: expected a PDF document", url)
		}
	}
}
