package directory

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"workforce/internal/apperror"
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, name, COALESCE(age, 0), COALESCE(gender, ''), department, role_title,
    COALESCE(skills, ''), join_date, COALESCE(resign_date, ''), status,
    salary, COALESCE(location, ''), created_at, updated_at`

func scanEmployee(row interface{ Scan(...any) error }) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Age, &emp.Gender, &emp.Department, &emp.RoleTitle,
		&emp.Skills, &emp.JoinDate, &emp.ResignDate, &emp.Status,
		&emp.Salary, &emp.Location, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT"+employeeColumns+" FROM employees WHERE id = ?", id)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, apperror.New(apperror.CodeNotFound, "employee not found")
	}
	if err != nil {
		return Employee{}, apperror.Wrap(apperror.CodeInternal, "failed to load employee", err)
	}
	return emp, nil
}

type ListFilter struct {
	Status     string
	Department string
	Search     string
}

func (s *Store) ListEmployees(ctx context.Context, filter ListFilter) ([]Employee, error) {
	query := "SELECT" + employeeColumns + " FROM employees"
	var clauses []string
	var args []any
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Department != "" {
		clauses = append(clauses, "department = ?")
		args = append(args, filter.Department)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		clauses = append(clauses, "(lower(name) LIKE ? OR lower(department) LIKE ? OR lower(role_title) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list employees", err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to list employees", err)
		}
		out = append(out, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list employees", err)
	}
	return out, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (int64, error) {
	if emp.Status == "" {
		emp.Status = StatusActive
	}
	result, err := s.DB.ExecContext(ctx, `
    INSERT INTO employees (name, age, gender, department, role_title, skills,
      join_date, resign_date, status, salary, location)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
  `,
		emp.Name, nullIfZero(emp.Age), nullIfEmpty(emp.Gender), emp.Department, emp.RoleTitle,
		nullIfEmpty(emp.Skills), emp.JoinDate, nullIfEmpty(emp.ResignDate), emp.Status,
		emp.Salary, nullIfEmpty(emp.Location),
	)
	if err != nil {
		return 0, mapSQLError(err, "failed to create employee")
	}
	return result.LastInsertId()
}

// CreateEmployeeWithID inserts a row under a caller-chosen identifier.
// The bulk import path uses it so imported rows keep their file IDs;
// a duplicate identifier is a conflict.
func (s *Store) CreateEmployeeWithID(ctx context.Context, emp Employee) error {
	if emp.Status == "" {
		emp.Status = StatusActive
	}
	_, err := s.DB.ExecContext(ctx, `
    INSERT INTO employees (id, name, age, gender, department, role_title, skills,
      join_date, resign_date, status, salary, location)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
  `,
		emp.ID, emp.Name, nullIfZero(emp.Age), nullIfEmpty(emp.Gender), emp.Department,
		emp.RoleTitle, nullIfEmpty(emp.Skills), emp.JoinDate, nullIfEmpty(emp.ResignDate),
		emp.Status, emp.Salary, nullIfEmpty(emp.Location),
	)
	if err != nil {
		return mapSQLError(err, "failed to create employee")
	}
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id int64, emp Employee) error {
	result, err := s.DB.ExecContext(ctx, `
    UPDATE employees
    SET name = ?, age = ?, gender = ?, department = ?, role_title = ?,
        skills = ?, join_date = ?, resign_date = ?, status = ?, salary = ?,
        location = ?, updated_at = datetime('now')
    WHERE id = ?
  `,
		emp.Name, nullIfZero(emp.Age), nullIfEmpty(emp.Gender), emp.Department, emp.RoleTitle,
		nullIfEmpty(emp.Skills), emp.JoinDate, nullIfEmpty(emp.ResignDate), emp.Status,
		emp.Salary, nullIfEmpty(emp.Location), id,
	)
	if err != nil {
		return mapSQLError(err, "failed to update employee")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to update employee", err)
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, "employee not found")
	}
	return nil
}

// DeleteEmployee removes a record. Foreign keys on tasks, mood logs,
// feedback and attendance are RESTRICT, so deleting an employee with
// dependent rows is blocked rather than cascaded or orphaned.
func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		if isConstraintError(err) {
			return apperror.New(apperror.CodeConflict, "employee has dependent records; resolve tasks, mood logs, feedback and attendance first")
		}
		return apperror.Wrap(apperror.CodeInternal, "failed to delete employee", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to delete employee", err)
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, "employee not found")
	}
	return nil
}

func (s *Store) EmployeeExists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM employees WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullIfZero(value int) any {
	if value == 0 {
		return nil
	}
	return value
}

func isConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "constraint")
}

func mapSQLError(err error, fallback string) error {
	if isConstraintError(err) {
		if strings.Contains(err.Error(), "UNIQUE") {
			return apperror.New(apperror.CodeConflict, "employee identifier already exists")
		}
		return apperror.New(apperror.CodeConflict, "employee record violates a constraint")
	}
	return apperror.Wrap(apperror.CodeInternal, fallback, err)
}
