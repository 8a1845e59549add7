package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	l.cod::text, l.nombre, l.area, l.turno, l.estado, l.dni, l.email, l.fecha_ingreso,
	NOT COALESCE(l.inactivo, FALSE) AND ea.legajo IS NOT NULL`

// GetByLegajo implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByLegajo(ctx context.Context, legajo string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM huella.legajo l
		LEFT JOIN (SELECT DISTINCT legajo FROM huella.v_empleados_activos) ea ON ea.legajo::text = l.cod::text
		WHERE l.cod::text = $1
		LIMIT 1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, legajo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee %s: %w", legajo, err)
	}
	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM huella.legajo l
		INNER JOIN (SELECT DISTINCT legajo FROM huella.v_empleados_activos) ea ON ea.legajo::text = l.cod::text
		WHERE COALESCE(l.inactivo, FALSE) = FALSE
		ORDER BY l.cod::text
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.Legajo, &emp.Name, &emp.Area, &emp.Shift, &emp.Status,
		&emp.DNI, &emp.Email, &emp.HireDate, &emp.Active,
	)
	return emp, err
}
