package payroll

import "context"

// LedgerStore persists the full record set. Load returns a nil slice when
// nothing has ever been saved; an explicitly saved empty ledger round-trips
// as an empty non-nil slice.
type LedgerStore interface {
	LoadPayroll(ctx context.Context) ([]Record, error)
	SavePayroll(ctx context.Context, records []Record) error
}
