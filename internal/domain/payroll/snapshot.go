package payroll

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// snapshotRecord mirrors Record with pointer fields so that missing keys and
// wrongly typed values are distinguishable after decoding. The original
// system accepted import payloads unchecked; here the whole file is shape
// checked before the ledger is touched.
type snapshotRecord struct {
	ID              *string  `json:"id"`
	Employee        *string  `json:"employee"`
	Department      *string  `json:"department"`
	GrossSalary     *float64 `json:"grossSalary"`
	AFP             *float64 `json:"afp"`
	SFS             *float64 `json:"sfs"`
	ISR             *float64 `json:"isr"`
	OtherDeductions *float64 `json:"otherDeductions"`
	Bonuses         *float64 `json:"bonuses"`
	NetSalary       *float64 `json:"netSalary"`
}

// DecodeSnapshot parses an exported payroll file back into records. The
// payload must be a JSON array of fully populated record objects; anything
// else fails with ErrBadSnapshot and no partial result. Records without an
// ID get a fresh one.
func DecodeSnapshot(data []byte) ([]Record, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON array", ErrBadSnapshot)
	}

	records := make([]Record, 0, len(elements))
	for i, element := range elements {
		var raw snapshotRecord
		if err := json.Unmarshal(element, &raw); err != nil {
			return nil, fmt.Errorf("%w: record %d is malformed", ErrBadSnapshot, i)
		}
		if raw.Employee == nil || raw.Department == nil ||
			raw.GrossSalary == nil || raw.AFP == nil || raw.SFS == nil || raw.ISR == nil ||
			raw.OtherDeductions == nil || raw.Bonuses == nil || raw.NetSalary == nil {
			return nil, fmt.Errorf("%w: record %d is missing required fields", ErrBadSnapshot, i)
		}
		record := Record{
			Employee:        *raw.Employee,
			Department:      *raw.Department,
			GrossSalary:     *raw.GrossSalary,
			AFP:             *raw.AFP,
			SFS:             *raw.SFS,
			ISR:             *raw.ISR,
			OtherDeductions: *raw.OtherDeductions,
			Bonuses:         *raw.Bonuses,
			NetSalary:       *raw.NetSalary,
		}
		if raw.ID != nil {
			record.ID = *raw.ID
		}
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		records = append(records, record)
	}

	if err := validateRecords(records); err != nil {
		return nil, err
	}
	return records, nil
}

// EncodeSnapshot serializes the record sequence in the persisted wire shape.
func EncodeSnapshot(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.MarshalIndent(records, "", "  ")
}

func validateRecords(records []Record) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		name := strings.TrimSpace(r.Employee)
		if name == "" {
			return fmt.Errorf("%w: record %d has an empty employee name", ErrBadSnapshot, i)
		}
		if _, dup := seen[r.Employee]; dup {
			return fmt.Errorf("%w: duplicate employee %q", ErrBadSnapshot, r.Employee)
		}
		seen[r.Employee] = struct{}{}

		amounts := []struct {
			field string
			value float64
		}{
			{"grossSalary", r.GrossSalary},
			{"afp", r.AFP},
			{"sfs", r.SFS},
			{"isr", r.ISR},
			{"otherDeductions", r.OtherDeductions},
			{"bonuses", r.Bonuses},
		}
		for _, amount := range amounts {
			if math.IsNaN(amount.value) || math.IsInf(amount.value, 0) || amount.value < 0 {
				return fmt.Errorf("%w: record %d has an invalid %s", ErrBadSnapshot, i, amount.field)
			}
		}
		// Net salary may legitimately be negative when deductions exceed
		// gross + bonuses; only reject non-finite values.
		if math.IsNaN(r.NetSalary) || math.IsInf(r.NetSalary, 0) {
			return fmt.Errorf("%w: record %d has an invalid netSalary", ErrBadSnapshot, i)
		}
	}
	return nil
}
