package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"nomina/internal/domain/payroll"
)

// PayslipPDF renders a single payroll record as a payslip document.
func PayslipPDF(record payroll.Record, period time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", record.Employee))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", record.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross salary: %.2f DOP", record.GrossSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("AFP (2.87%%): -%.2f DOP", record.AFP))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("SFS (3.04%%): -%.2f DOP", record.SFS))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("ISR: -%.2f DOP", record.ISR))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Other deductions: -%.2f DOP", record.OtherDeductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonuses: +%.2f DOP", record.Bonuses))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %.2f DOP", record.NetSalary))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RegisterPDF renders the payroll register: one row per ledger record plus
// a totals footer.
func RegisterPDF(records []payroll.Record, period time.Time) ([]byte, error) {
	totals := payroll.Aggregate(records)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(60, 10, "Payroll Register")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 10, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(14)

	headers := []string{"Employee", "Department", "Gross", "AFP", "SFS", "ISR", "Other", "Bonuses", "Net"}
	widths := []float64{58, 36, 28, 24, 24, 26, 24, 26, 30}
	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range records {
		cells := []string{
			r.Employee,
			r.Department,
			fmt.Sprintf("%.2f", r.GrossSalary),
			fmt.Sprintf("%.2f", r.AFP),
			fmt.Sprintf("%.2f", r.SFS),
			fmt.Sprintf("%.2f", r.ISR),
			fmt.Sprintf("%.2f", r.OtherDeductions),
			fmt.Sprintf("%.2f", r.Bonuses),
			fmt.Sprintf("%.2f", r.NetSalary),
		}
		for i, cell := range cells {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1], 8, fmt.Sprintf("Totals (%d employees)", len(records)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[2], 8, fmt.Sprintf("%.2f", totals.TotalGross), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3]+widths[4]+widths[5]+widths[6], 8, fmt.Sprintf("deductions %.2f", totals.TotalDeductions), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[7], 8, fmt.Sprintf("%.2f", totals.TotalBonuses), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[8], 8, fmt.Sprintf("%.2f", totals.TotalNet), "1", 0, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
