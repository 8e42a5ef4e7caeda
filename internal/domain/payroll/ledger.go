package payroll

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Ledger owns the authoritative record set for the current period. Records
// are ordered and unique by employee name, which acts as the upsert key.
// In-memory state stays the source of truth even when a persist fails; the
// wrapped ErrStorage tells the caller the change may not survive a restart.
//
// The logical actor model is a single writer; the mutex only serializes
// concurrent HTTP handlers within this process. Two processes sharing one
// store are last-write-wins.
type Ledger struct {
	mu      sync.Mutex
	store   LedgerStore
	records []Record
}

// NewLedger builds a ledger over the store's current content. A store that
// has never been written (nil load) starts from the seed records.
func NewLedger(ctx context.Context, store LedgerStore, seed []Record) (*Ledger, error) {
	records, err := store.LoadPayroll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrStorage, err)
	}
	if records == nil && len(seed) > 0 {
		records = make([]Record, len(seed))
		copy(records, seed)
		if err := store.SavePayroll(ctx, records); err != nil {
			return nil, fmt.Errorf("%w: seed: %v", ErrStorage, err)
		}
	}
	return &Ledger{store: store, records: records}, nil
}

// Upsert replaces the record carrying the same employee name in place,
// preserving order, or appends when the employee is new. The full set is
// persisted afterward; on a storage fault the in-memory change sticks and
// the error is reported as ErrStorage.
func (l *Ledger) Upsert(ctx context.Context, record Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	replaced := false
	for i := range l.records {
		if l.records[i].Employee == record.Employee {
			l.records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		l.records = append(l.records, record)
	}
	return l.persist(ctx)
}

// ReplaceAll swaps the entire ledger content for the imported records,
// all-or-nothing. Shape validation happens before any mutation; a rejected
// payload leaves the prior content untouched.
func (l *Ledger) ReplaceAll(ctx context.Context, records []Record) error {
	if err := validateRecords(records); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	replacement := make([]Record, len(records))
	copy(replacement, records)
	l.records = replacement
	return l.persist(ctx)
}

// Import decodes a JSON snapshot and replaces the ledger content with it.
func (l *Ledger) Import(ctx context.Context, data []byte) (int, error) {
	records, err := DecodeSnapshot(data)
	if err != nil {
		return 0, err
	}
	if err := l.ReplaceAll(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Snapshot returns a copy of the current record sequence in wire shape.
func (l *Ledger) Snapshot() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Search returns the records whose employee name or department contains the
// query, case-insensitively. An empty query returns everything.
func (l *Ledger) Search(query string) []Record {
	records := l.Snapshot()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}
	filtered := records[:0]
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Employee), query) ||
			strings.Contains(strings.ToLower(r.Department), query) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Find returns the record with the given ID.
func (l *Ledger) Find(id string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range l.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

func (l *Ledger) persist(ctx context.Context) error {
	if err := l.store.SavePayroll(ctx, l.records); err != nil {
		return fmt.Errorf("%w: save: %v", ErrStorage, err)
	}
	return nil
}
