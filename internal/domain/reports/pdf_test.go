package reports

import (
	"bytes"
	"testing"
	"time"

	"nomina/internal/domain/payroll"
)

func TestPayslipPDF(t *testing.T) {
	record := payroll.Compute("1", "María García López", "Ventas", 85000, 5000, 0)

	pdf, err := PayslipPDF(record, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("PayslipPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestRegisterPDF(t *testing.T) {
	records := []payroll.Record{
		payroll.Compute("1", "María García López", "Ventas", 85000, 5000, 0),
		payroll.Compute("2", "Carlos Rodríguez Pérez", "IT", 120000, 8000, 2000),
	}

	pdf, err := RegisterPDF(records, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RegisterPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestRegisterPDFEmptyLedger(t *testing.T) {
	pdf, err := RegisterPDF(nil, time.Now())
	if err != nil {
		t.Fatalf("RegisterPDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected a document even with no records")
	}
}
