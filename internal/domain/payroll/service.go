package payroll

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"nomina/internal/domain/roster"
)

// RosterAPI is the slice of the employee roster the calculator needs: name
// resolution to pick up the department at calculation time.
type RosterAPI interface {
	FindByName(name string) (roster.Employee, error)
}

// CalcInput is one calculate-or-process request.
type CalcInput struct {
	Employee        string
	GrossSalary     float64
	Bonuses         float64
	OtherDeductions float64
}

// Service joins the roster lookup, the pure calculator and the ledger.
type Service struct {
	ledger *Ledger
	roster RosterAPI
}

func NewService(ledger *Ledger, roster RosterAPI) *Service {
	return &Service{ledger: ledger, roster: roster}
}

func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// Calculate previews a payroll record without touching the ledger.
func (s *Service) Calculate(in CalcInput) (Record, error) {
	employee, err := s.roster.FindByName(in.Employee)
	if err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			return Record{}, ErrEmployeeNotFound
		}
		return Record{}, err
	}
	return Compute(uuid.NewString(), employee.Name, employee.Department,
		in.GrossSalary, in.Bonuses, in.OtherDeductions), nil
}

// Process calculates a record and upserts it into the ledger, keyed by
// employee name. The record is returned even when persistence fails, since
// the in-memory ledger keeps the change.
func (s *Service) Process(ctx context.Context, in CalcInput) (Record, error) {
	record, err := s.Calculate(in)
	if err != nil {
		return Record{}, err
	}
	if err := s.ledger.Upsert(ctx, record); err != nil {
		return record, err
	}
	return record, nil
}
