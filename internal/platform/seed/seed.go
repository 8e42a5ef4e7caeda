// Package seed carries the default data sets a fresh installation starts
// from, matching the dashboard's original demo content.
package seed

import (
	"github.com/google/uuid"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/payroll"
	"nomina/internal/domain/roster"
	"nomina/internal/domain/vacation"
)

func Employees() []roster.Employee {
	return []roster.Employee{
		{ID: "1", Name: "María García López", Email: "maria.garcia@empresa.com", Phone: "809-555-0101", Department: "Ventas", Position: "Gerente de Ventas", Status: roster.StatusActive, StartDate: "2020-03-15"},
		{ID: "2", Name: "Carlos Rodríguez Pérez", Email: "carlos.rodriguez@empresa.com", Phone: "809-555-0102", Department: "IT", Position: "Desarrollador Senior", Status: roster.StatusActive, StartDate: "2019-08-20"},
		{ID: "3", Name: "Ana Martínez Santos", Email: "ana.martinez@empresa.com", Phone: "809-555-0103", Department: "Finanzas", Position: "Contadora", Status: roster.StatusActive, StartDate: "2021-01-10"},
		{ID: "4", Name: "Pedro Sánchez Díaz", Email: "pedro.sanchez@empresa.com", Phone: "809-555-0104", Department: "Recursos Humanos", Position: "Analista de RRHH", Status: roster.StatusInactive, StartDate: "2018-06-05"},
		{ID: "5", Name: "Laura Fernández Cruz", Email: "laura.fernandez@empresa.com", Phone: "809-555-0105", Department: "Marketing", Position: "Especialista en Marketing", Status: roster.StatusActive, StartDate: "2022-02-14"},
	}
}

func PayrollRecords() []payroll.Record {
	return []payroll.Record{
		{ID: "1", Employee: "María García López", Department: "Ventas", GrossSalary: 85000, AFP: 2437.5, SFS: 2584, ISR: 4250, OtherDeductions: 0, Bonuses: 5000, NetSalary: 80728.5},
		{ID: "2", Employee: "Carlos Rodríguez Pérez", Department: "IT", GrossSalary: 120000, AFP: 3442.8, SFS: 3648, ISR: 12500, OtherDeductions: 2000, Bonuses: 8000, NetSalary: 106409.2},
		{ID: "3", Employee: "Ana Martínez Santos", Department: "Finanzas", GrossSalary: 75000, AFP: 2152.5, SFS: 2280, ISR: 2875, OtherDeductions: 0, Bonuses: 0, NetSalary: 67692.5},
		{ID: "4", Employee: "Pedro Sánchez Díaz", Department: "RRHH", GrossSalary: 65000, AFP: 1866.5, SFS: 1976, ISR: 1625, OtherDeductions: 1500, Bonuses: 0, NetSalary: 58032.5},
		{ID: "5", Employee: "Laura Fernández Cruz", Department: "Marketing", GrossSalary: 55000, AFP: 1579, SFS: 1672, ISR: 625, OtherDeductions: 0, Bonuses: 2500, NetSalary: 53624},
	}
}

func VacationRequests() []vacation.Request {
	return []vacation.Request{
		{ID: "1", Employee: "María García López", Department: "Ventas", StartDate: "2024-01-15", EndDate: "2024-01-22", DaysRequested: 5, DaysAvailable: 14, Reason: "Vacaciones familiares", Status: vacation.StatusPending, RequestDate: "2024-01-05"},
		{ID: "2", Employee: "Carlos Rodríguez Pérez", Department: "IT", StartDate: "2024-01-20", EndDate: "2024-01-25", DaysRequested: 4, DaysAvailable: 18, Status: vacation.StatusPending, RequestDate: "2024-01-06"},
		{ID: "3", Employee: "Ana Martínez Santos", Department: "Finanzas", StartDate: "2024-02-01", EndDate: "2024-02-10", DaysRequested: 7, DaysAvailable: 21, Reason: "Viaje personal", Status: vacation.StatusApproved, RequestDate: "2024-01-02"},
		{ID: "4", Employee: "Pedro Sánchez Díaz", Department: "RRHH", StartDate: "2024-01-08", EndDate: "2024-01-10", DaysRequested: 2, DaysAvailable: 10, Status: vacation.StatusRejected, RequestDate: "2024-01-03"},
		{ID: "5", Employee: "Laura Fernández Cruz", Department: "Marketing", StartDate: "2024-02-15", EndDate: "2024-02-22", DaysRequested: 5, DaysAvailable: 12, Reason: "Descanso", Status: vacation.StatusPending, RequestDate: "2024-01-07"},
	}
}

// Users returns the default login accounts with freshly hashed passwords.
func Users() ([]auth.User, error) {
	defaults := []struct {
		email    string
		password string
		name     string
		role     string
	}{
		{"admin@empresa.com", "admin123", "Administrador", auth.RoleAdmin},
		{"rrhh@empresa.com", "rrhh123", "Recursos Humanos", auth.RoleHR},
		{"empleado@empresa.com", "emp123", "Empleado Demo", auth.RoleEmployee},
	}

	users := make([]auth.User, 0, len(defaults))
	for _, d := range defaults {
		hash, err := auth.HashPassword(d.password)
		if err != nil {
			return nil, err
		}
		users = append(users, auth.User{
			ID:           uuid.NewString(),
			Email:        d.email,
			Name:         d.name,
			Role:         d.role,
			PasswordHash: hash,
		})
	}
	return users, nil
}
