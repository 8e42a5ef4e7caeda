package payroll

import "math"

// Statutory withholding rates on monthly gross salary.
const (
	AFPRate = 0.0287
	SFSRate = 0.0304
)

// taxBand is one slice of the annualized income-tax schedule. Upper is the
// inclusive annual ceiling of the band, zero meaning unbounded. Base is the
// accumulated tax owed for all lower bands.
type taxBand struct {
	Upper float64
	Rate  float64
	Base  float64
}

// isrBands is the schedule, ordered, evaluated first match wins. The lower
// bound of each band is the previous band's ceiling.
var isrBands = []taxBand{
	{Upper: 416220, Rate: 0, Base: 0},
	{Upper: 624329, Rate: 0.15, Base: 0},
	{Upper: 867123, Rate: 0.20, Base: 31216.35},
	{Upper: 0, Rate: 0.25, Base: 79775.15},
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CalcAFP returns the monthly social-security withholding.
func CalcAFP(grossSalary float64) float64 {
	return Round2(grossSalary * AFPRate)
}

// CalcSFS returns the monthly health-insurance withholding.
func CalcSFS(grossSalary float64) float64 {
	return Round2(grossSalary * SFSRate)
}

// CalcISR returns the monthly income-tax withholding. The monthly gross is
// annualized, taxed through the band schedule, and the annual tax divided
// back into a monthly amount.
func CalcISR(grossSalary float64) float64 {
	annual := grossSalary * 12
	lower := 0.0
	for _, band := range isrBands {
		if band.Upper == 0 || annual <= band.Upper {
			return Round2(((annual-lower)*band.Rate + band.Base) / 12)
		}
		lower = band.Upper
	}
	return 0
}

// Compute itemizes a monthly gross salary plus adjustments into a Record.
// Pure and deterministic; the caller supplies identity fields and the ID.
// Net salary carries no floor, deductions past gross + bonuses go negative.
func Compute(id, employee, department string, grossSalary, bonuses, otherDeductions float64) Record {
	afp := CalcAFP(grossSalary)
	sfs := CalcSFS(grossSalary)
	isr := CalcISR(grossSalary)
	return Record{
		ID:              id,
		Employee:        employee,
		Department:      department,
		GrossSalary:     grossSalary,
		AFP:             afp,
		SFS:             sfs,
		ISR:             isr,
		OtherDeductions: otherDeductions,
		Bonuses:         bonuses,
		NetSalary:       Round2(grossSalary - afp - sfs - isr - otherDeductions + bonuses),
	}
}

// Aggregate sums a record subset into its summary totals. Callers may
// pre-filter, for example by a search term, before aggregating.
func Aggregate(records []Record) Totals {
	var t Totals
	for _, r := range records {
		t.TotalGross += r.GrossSalary
		t.TotalDeductions += r.AFP + r.SFS + r.ISR + r.OtherDeductions
		t.TotalBonuses += r.Bonuses
		t.TotalNet += r.NetSalary
	}
	t.TotalGross = Round2(t.TotalGross)
	t.TotalDeductions = Round2(t.TotalDeductions)
	t.TotalBonuses = Round2(t.TotalBonuses)
	t.TotalNet = Round2(t.TotalNet)
	return t
}
