// Package file persists each collection as a JSON document under a data
// directory, the server-side analog of the dashboard's original per-browser
// storage. Writes go through a temp file and rename so a crash never leaves
// a half-written snapshot behind.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/payroll"
	"nomina/internal/domain/roster"
	"nomina/internal/domain/vacation"
)

const (
	payrollFile   = "payroll.json"
	employeesFile = "employees.json"
	vacationsFile = "vacations.json"
	usersFile     = "users.json"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadPayroll(_ context.Context) ([]payroll.Record, error) {
	var records []payroll.Record
	if err := s.read(payrollFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) SavePayroll(_ context.Context, records []payroll.Record) error {
	return s.write(payrollFile, records)
}

func (s *Store) LoadEmployees(_ context.Context) ([]roster.Employee, error) {
	var employees []roster.Employee
	if err := s.read(employeesFile, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *Store) SaveEmployees(_ context.Context, employees []roster.Employee) error {
	return s.write(employeesFile, employees)
}

func (s *Store) LoadVacations(_ context.Context) ([]vacation.Request, error) {
	var requests []vacation.Request
	if err := s.read(vacationsFile, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Store) SaveVacations(_ context.Context, requests []vacation.Request) error {
	return s.write(vacationsFile, requests)
}

func (s *Store) LoadUsers(_ context.Context) ([]auth.User, error) {
	var users []auth.User
	if err := s.read(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) SaveUsers(_ context.Context, users []auth.User) error {
	return s.write(usersFile, users)
}

// read leaves v untouched (nil slice, meaning "absent") when the file does
// not exist yet.
func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
