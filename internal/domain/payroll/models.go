package payroll

// Record is one employee's payroll result for the current period. The JSON
// field names (afp, sfs, isr) are the wire shape shared by the persisted
// store and file import/export.
type Record struct {
	ID              string  `json:"id"`
	Employee        string  `json:"employee"`
	Department      string  `json:"department"`
	GrossSalary     float64 `json:"grossSalary"`
	AFP             float64 `json:"afp"`
	SFS             float64 `json:"sfs"`
	ISR             float64 `json:"isr"`
	OtherDeductions float64 `json:"otherDeductions"`
	Bonuses         float64 `json:"bonuses"`
	NetSalary       float64 `json:"netSalary"`
}

// Totals aggregates a record set for the summary cards. TotalDeductions
// covers AFP + SFS + ISR + other deductions across all records.
type Totals struct {
	TotalGross      float64 `json:"totalGross"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalBonuses    float64 `json:"totalBonuses"`
	TotalNet        float64 `json:"totalNet"`
}
