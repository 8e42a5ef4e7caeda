// Package postgres persists each collection as ordered rows, replacing a
// collection wholesale inside one transaction on every save. The snapshot
// semantics match the file driver: a save is the full authoritative set.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/payroll"
	"nomina/internal/domain/roster"
	"nomina/internal/domain/vacation"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) LoadPayroll(ctx context.Context) ([]payroll.Record, error) {
	rows, err := s.pool.Query(ctx, `
    SELECT id, employee, department, gross_salary, afp, sfs, isr, other_deductions, bonuses, net_salary
    FROM payroll_records
    ORDER BY position
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		var r payroll.Record
		if err := rows.Scan(&r.ID, &r.Employee, &r.Department, &r.GrossSalary, &r.AFP, &r.SFS, &r.ISR, &r.OtherDeductions, &r.Bonuses, &r.NetSalary); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return emptyIfSaved(ctx, s, "payroll_records", records)
}

func (s *Store) SavePayroll(ctx context.Context, records []payroll.Record) error {
	return s.replace(ctx, "payroll_records", func(tx pgx.Tx) error {
		for i, r := range records {
			if _, err := tx.Exec(ctx, `
        INSERT INTO payroll_records (position, id, employee, department, gross_salary, afp, sfs, isr, other_deductions, bonuses, net_salary)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
      `, i, r.ID, r.Employee, r.Department, r.GrossSalary, r.AFP, r.SFS, r.ISR, r.OtherDeductions, r.Bonuses, r.NetSalary); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) LoadEmployees(ctx context.Context) ([]roster.Employee, error) {
	rows, err := s.pool.Query(ctx, `
    SELECT id, name, email, phone, department, job_title, status, start_date
    FROM employees
    ORDER BY position
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []roster.Employee
	for rows.Next() {
		var e roster.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Department, &e.Position, &e.Status, &e.StartDate); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return emptyIfSaved(ctx, s, "employees", employees)
}

func (s *Store) SaveEmployees(ctx context.Context, employees []roster.Employee) error {
	return s.replace(ctx, "employees", func(tx pgx.Tx) error {
		for i, e := range employees {
			if _, err := tx.Exec(ctx, `
        INSERT INTO employees (position, id, name, email, phone, department, job_title, status, start_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
      `, i, e.ID, e.Name, e.Email, e.Phone, e.Department, e.Position, e.Status, e.StartDate); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) LoadVacations(ctx context.Context) ([]vacation.Request, error) {
	rows, err := s.pool.Query(ctx, `
    SELECT id, employee, department, start_date, end_date, days_requested, days_available, reason, status, request_date
    FROM vacation_requests
    ORDER BY position
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []vacation.Request
	for rows.Next() {
		var v vacation.Request
		if err := rows.Scan(&v.ID, &v.Employee, &v.Department, &v.StartDate, &v.EndDate, &v.DaysRequested, &v.DaysAvailable, &v.Reason, &v.Status, &v.RequestDate); err != nil {
			return nil, err
		}
		requests = append(requests, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return emptyIfSaved(ctx, s, "vacation_requests", requests)
}

func (s *Store) SaveVacations(ctx context.Context, requests []vacation.Request) error {
	return s.replace(ctx, "vacation_requests", func(tx pgx.Tx) error {
		for i, v := range requests {
			if _, err := tx.Exec(ctx, `
        INSERT INTO vacation_requests (position, id, employee, department, start_date, end_date, days_requested, days_available, reason, status, request_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
      `, i, v.ID, v.Employee, v.Department, v.StartDate, v.EndDate, v.DaysRequested, v.DaysAvailable, v.Reason, v.Status, v.RequestDate); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) LoadUsers(ctx context.Context) ([]auth.User, error) {
	rows, err := s.pool.Query(ctx, `
    SELECT id, email, name, role, password_hash
    FROM users
    ORDER BY position
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []auth.User
	for rows.Next() {
		var u auth.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return emptyIfSaved(ctx, s, "users", users)
}

func (s *Store) SaveUsers(ctx context.Context, users []auth.User) error {
	return s.replace(ctx, "users", func(tx pgx.Tx) error {
		for i, u := range users {
			if _, err := tx.Exec(ctx, `
        INSERT INTO users (position, id, email, name, role, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6)
      `, i, u.ID, u.Email, u.Name, u.Role, u.PasswordHash); err != nil {
				return err
			}
		}
		return nil
	})
}

// replace swaps a collection wholesale and marks it as written, so a saved
// empty set stays distinguishable from a collection that was never saved.
func (s *Store) replace(ctx context.Context, table string, insert func(tx pgx.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := insert(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO collection_state (name) VALUES ($1)
    ON CONFLICT (name) DO UPDATE SET saved_at = now()
  `, table); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) saved(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM collection_state WHERE name = $1)", name).Scan(&exists)
	return exists, err
}

// emptyIfSaved turns a zero-row read into an empty non-nil slice when the
// collection has been written before. A nil return means never saved, which
// is what triggers seeding upstream.
func emptyIfSaved[T any](ctx context.Context, s *Store, name string, items []T) ([]T, error) {
	if items != nil {
		return items, nil
	}
	written, err := s.saved(ctx, name)
	if err != nil {
		return nil, err
	}
	if written {
		items = []T{}
	}
	return items, nil
}
