package roster

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store persists the employee collection. Load returns a nil slice when
// nothing has ever been saved.
type Store interface {
	LoadEmployees(ctx context.Context) ([]Employee, error)
	SaveEmployees(ctx context.Context, employees []Employee) error
}

// Roster is the ordered employee collection backing the payroll lookup.
// Names double as the payroll ledger's record key, so they are unique.
type Roster struct {
	mu        sync.Mutex
	store     Store
	employees []Employee
}

func New(ctx context.Context, store Store, seed []Employee) (*Roster, error) {
	employees, err := store.LoadEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrStorage, err)
	}
	if employees == nil && len(seed) > 0 {
		employees = make([]Employee, len(seed))
		copy(employees, seed)
		if err := store.SaveEmployees(ctx, employees); err != nil {
			return nil, fmt.Errorf("%w: seed: %v", ErrStorage, err)
		}
	}
	return &Roster{store: store, employees: employees}, nil
}

// List returns employees whose name, department or position contains the
// query, case-insensitively. Empty query returns everything.
func (r *Roster) List(query string) []Employee {
	r.mu.Lock()
	defer r.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if query == "" ||
			strings.Contains(strings.ToLower(e.Name), query) ||
			strings.Contains(strings.ToLower(e.Department), query) ||
			strings.Contains(strings.ToLower(e.Position), query) {
			out = append(out, e)
		}
	}
	return out
}

func (r *Roster) FindByName(name string) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.employees {
		if e.Name == name {
			return e, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (r *Roster) FindByID(id string) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return Employee{}, ErrNotFound
}

// Create appends a new employee with a fresh ID.
func (r *Roster) Create(ctx context.Context, employee Employee) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.employees {
		if existing.Name == employee.Name {
			return Employee{}, ErrDuplicateName
		}
	}
	employee.ID = uuid.NewString()
	r.employees = append(r.employees, employee)
	if err := r.persist(ctx); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

// Update replaces the employee with the same ID, keeping its position.
func (r *Roster) Update(ctx context.Context, employee Employee) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.employees {
		if existing.Name == employee.Name && existing.ID != employee.ID {
			return Employee{}, ErrDuplicateName
		}
	}
	for i := range r.employees {
		if r.employees[i].ID == employee.ID {
			r.employees[i] = employee
			if err := r.persist(ctx); err != nil {
				return Employee{}, err
			}
			return employee, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (r *Roster) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.employees {
		if r.employees[i].ID == id {
			r.employees = append(r.employees[:i], r.employees[i+1:]...)
			return r.persist(ctx)
		}
	}
	return ErrNotFound
}

// CountByStatus reports headcount per employee status.
func (r *Roster) CountByStatus() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int)
	for _, e := range r.employees {
		counts[e.Status]++
	}
	return counts
}

func (r *Roster) persist(ctx context.Context) error {
	if err := r.store.SaveEmployees(ctx, r.employees); err != nil {
		return fmt.Errorf("%w: save: %v", ErrStorage, err)
	}
	return nil
}
