package payroll

import (
	"context"
	"errors"
	"testing"
)

type memStore struct {
	records []Record
	saves   int
	failing bool
}

func (m *memStore) LoadPayroll(context.Context) ([]Record, error) {
	if m.failing {
		return nil, errors.New("disk on fire")
	}
	return m.records, nil
}

func (m *memStore) SavePayroll(_ context.Context, records []Record) error {
	if m.failing {
		return errors.New("disk on fire")
	}
	m.records = make([]Record, len(records))
	copy(m.records, records)
	m.saves++
	return nil
}

func testRecords() []Record {
	return []Record{
		Compute("1", "María García López", "Ventas", 85000, 5000, 0),
		Compute("2", "Carlos Rodríguez Pérez", "IT", 120000, 8000, 2000),
		Compute("3", "Ana Martínez Santos", "Finanzas", 75000, 0, 0),
	}
}

func newTestLedger(t *testing.T, store *memStore, seed []Record) *Ledger {
	t.Helper()
	ledger, err := NewLedger(context.Background(), store, seed)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	return ledger
}

func TestLedgerSeedsWhenStoreIsEmpty(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())

	if got := len(ledger.Snapshot()); got != 3 {
		t.Fatalf("expected 3 seeded records, got %d", got)
	}
	if store.saves != 1 {
		t.Fatalf("expected the seed to be persisted once, got %d saves", store.saves)
	}
}

func TestLedgerDoesNotSeedOverExistingState(t *testing.T) {
	store := &memStore{records: testRecords()[:1]}
	ledger := newTestLedger(t, store, testRecords())

	if got := len(ledger.Snapshot()); got != 1 {
		t.Fatalf("expected the persisted single record, got %d", got)
	}
}

func TestLedgerDoesNotSeedOverSavedEmptyState(t *testing.T) {
	// an explicitly saved empty ledger is empty, not absent
	store := &memStore{records: []Record{}}
	ledger := newTestLedger(t, store, testRecords())

	if got := len(ledger.Snapshot()); got != 0 {
		t.Fatalf("expected an empty ledger, got %d records", got)
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())

	updated := Compute("99", "Carlos Rodríguez Pérez", "IT", 130000, 0, 0)
	if err := ledger.Upsert(context.Background(), updated); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	records := ledger.Snapshot()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[1].GrossSalary != 130000 || records[1].ID != "99" {
		t.Fatalf("expected record replaced in place, got %+v", records[1])
	}
	if records[0].Employee != "María García López" || records[2].Employee != "Ana Martínez Santos" {
		t.Fatalf("neighboring records disturbed: %+v", records)
	}
}

func TestUpsertAppendsNewEmployee(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())

	added := Compute("4", "Pedro Sánchez Díaz", "RRHH", 65000, 0, 1500)
	if err := ledger.Upsert(context.Background(), added); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	records := ledger.Snapshot()
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[3].Employee != "Pedro Sánchez Díaz" {
		t.Fatalf("expected new record appended last, got %+v", records[3])
	}
	if store.saves != 2 {
		t.Fatalf("expected seed + upsert saves, got %d", store.saves)
	}
}

func TestUpsertKeepsMemoryOnStorageFailure(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())
	store.failing = true

	added := Compute("4", "Laura Fernández Cruz", "Marketing", 55000, 2500, 0)
	err := ledger.Upsert(context.Background(), added)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}

	// in-memory state is still authoritative for the session
	if got := len(ledger.Snapshot()); got != 4 {
		t.Fatalf("expected the record kept in memory, got %d records", got)
	}
}

func TestReplaceAllSwapsContent(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())

	replacement := []Record{Compute("7", "Laura Fernández Cruz", "Marketing", 55000, 2500, 0)}
	if err := ledger.ReplaceAll(context.Background(), replacement); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	records := ledger.Snapshot()
	if len(records) != 1 || records[0].Employee != "Laura Fernández Cruz" {
		t.Fatalf("expected replacement content, got %+v", records)
	}
}

func TestReplaceAllRejectsMalformedRecords(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())
	before := ledger.Snapshot()

	bad := []Record{{ID: "x", Employee: "", GrossSalary: 100}}
	err := ledger.ReplaceAll(context.Background(), bad)
	if !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("expected ErrBadSnapshot, got %v", err)
	}

	after := ledger.Snapshot()
	if len(after) != len(before) {
		t.Fatalf("ledger mutated by a rejected import: %d -> %d records", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("record %d changed by a rejected import", i)
		}
	}
}

func TestReplaceAllRejectsDuplicateEmployees(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())

	dup := []Record{
		Compute("1", "María García López", "Ventas", 85000, 0, 0),
		Compute("2", "María García López", "Ventas", 90000, 0, 0),
	}
	if err := ledger.ReplaceAll(context.Background(), dup); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("expected ErrBadSnapshot for duplicate employees, got %v", err)
	}
}

func TestSnapshotImportRoundTrip(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())
	original := ledger.Snapshot()

	data, err := EncodeSnapshot(original)
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}

	other := newTestLedger(t, &memStore{}, nil)
	count, err := other.Import(context.Background(), data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if count != len(original) {
		t.Fatalf("expected %d imported records, got %d", len(original), count)
	}

	restored := other.Snapshot()
	for i := range original {
		if original[i] != restored[i] {
			t.Fatalf("record %d did not round-trip: %+v vs %+v", i, original[i], restored[i])
		}
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())

	for _, payload := range []string{`{"id":"1"}`, `"hello"`, `42`, `not json`} {
		if _, err := ledger.Import(context.Background(), []byte(payload)); !errors.Is(err, ErrBadSnapshot) {
			t.Fatalf("payload %q: expected ErrBadSnapshot, got %v", payload, err)
		}
	}
	if got := len(ledger.Snapshot()); got != 3 {
		t.Fatalf("rejected imports must not mutate the ledger, got %d records", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())

	snapshot := ledger.Snapshot()
	snapshot[0].GrossSalary = -1

	if ledger.Snapshot()[0].GrossSalary == -1 {
		t.Fatal("mutating a snapshot leaked into the ledger")
	}
}

func TestSearchFiltersByNameAndDepartment(t *testing.T) {
	store := &memStore{}
	ledger := newTestLedger(t, store, testRecords())

	if got := len(ledger.Search("maría")); got != 1 {
		t.Fatalf("expected 1 match by name, got %d", got)
	}
	if got := len(ledger.Search("it")); got != 1 {
		t.Fatalf("expected 1 match by department, got %d", got)
	}
	if got := len(ledger.Search("")); got != 3 {
		t.Fatalf("expected all records for an empty query, got %d", got)
	}
	if got := len(ledger.Search("zzz")); got != 0 {
		t.Fatalf("expected no matches, got %d", got)
	}
}
