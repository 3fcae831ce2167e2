package directory

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"workforce/internal/apperror"
	"workforce/internal/platform/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, filepath.Join(t.TempDir(), "workforce.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(ctx, conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func sampleEmployee() Employee {
	return Employee{
		Name:       "Alice Perera",
		Age:        31,
		Gender:     "Female",
		Department: "Engineering",
		RoleTitle:  "Backend Engineer",
		Skills:     "Go, SQL",
		JoinDate:   "2023-04-01",
		Status:     StatusActive,
		Salary:     95000,
		Location:   "Colombo",
	}
}

func TestCreateAndGetEmployee(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	want := sampleEmployee()
	id, err := store.CreateEmployee(ctx, want)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	got, err := store.GetEmployee(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != want.Name || got.Age != want.Age || got.Gender != want.Gender ||
		got.Department != want.Department || got.RoleTitle != want.RoleTitle ||
		got.Skills != want.Skills || got.JoinDate != want.JoinDate ||
		got.Status != want.Status || got.Salary != want.Salary || got.Location != want.Location {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.CreatedAt == "" || got.UpdatedAt == "" {
		t.Fatal("expected timestamps to be set")
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	store := NewStore(openTestDB(t))

	_, err := store.GetEmployee(context.Background(), 999)
	if !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCreateEmployeeWithIDDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	first := sampleEmployee()
	first.ID = 42
	if err := store.CreateEmployeeWithID(ctx, first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	second := sampleEmployee()
	second.ID = 42
	second.Name = "Impostor"
	err := store.CreateEmployeeWithID(ctx, second)
	if !apperror.Is(err, apperror.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	got, err := store.GetEmployee(ctx, 42)
	if err != nil {
		t.Fatalf("get after conflict: %v", err)
	}
	if got.Name != first.Name {
		t.Fatalf("conflicting insert changed the existing row: %q", got.Name)
	}
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	id, err := store.CreateEmployee(ctx, sampleEmployee())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated := sampleEmployee()
	updated.Department = "Platform"
	updated.Status = StatusResigned
	updated.ResignDate = "2026-06-30"
	if err := store.UpdateEmployee(ctx, id, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetEmployee(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Department != "Platform" || got.Status != StatusResigned || got.ResignDate != "2026-06-30" {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := store.UpdateEmployee(ctx, 999, updated); !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("expected not_found for missing id, got %v", err)
	}
}

func TestDeleteEmployeeBlockedByDependents(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	store := NewStore(conn)

	id, err := store.CreateEmployee(ctx, sampleEmployee())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = conn.ExecContext(ctx, `
    INSERT INTO tasks (task_name, employee_id, due_date) VALUES ('Ship release', ?, '2026-09-01')
  `, id)
	if err != nil {
		t.Fatalf("insert task: %v", err)
	}

	if err := store.DeleteEmployee(ctx, id); !apperror.Is(err, apperror.CodeConflict) {
		t.Fatalf("expected conflict while tasks reference the employee, got %v", err)
	}

	if _, err := store.GetEmployee(ctx, id); err != nil {
		t.Fatalf("employee should survive a blocked delete: %v", err)
	}

	if _, err := conn.ExecContext(ctx, "DELETE FROM tasks WHERE employee_id = ?", id); err != nil {
		t.Fatalf("clear tasks: %v", err)
	}
	if err := store.DeleteEmployee(ctx, id); err != nil {
		t.Fatalf("delete after clearing dependents: %v", err)
	}
	if _, err := store.GetEmployee(ctx, id); !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
}

func TestDeleteEmployeeNotFound(t *testing.T) {
	store := NewStore(openTestDB(t))

	if err := store.DeleteEmployee(context.Background(), 12345); !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestListEmployeesFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))

	alice := sampleEmployee()
	bob := sampleEmployee()
	bob.Name = "Bob Silva"
	bob.Department = "Sales"
	bob.RoleTitle = "Account Manager"
	carol := sampleEmployee()
	carol.Name = "Carol Fernando"
	carol.Status = StatusResigned
	carol.ResignDate = "2026-01-31"

	for _, emp := range []Employee{alice, bob, carol} {
		if _, err := store.CreateEmployee(ctx, emp); err != nil {
			t.Fatalf("create %s: %v", emp.Name, err)
		}
	}

	all, err := store.ListEmployees(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(all))
	}

	active, err := store.ListEmployees(ctx, ListFilter{Status: StatusActive})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active employees, got %d", len(active))
	}

	sales, err := store.ListEmployees(ctx, ListFilter{Department: "Sales"})
	if err != nil {
		t.Fatalf("list sales: %v", err)
	}
	if len(sales) != 1 || sales[0].Name != "Bob Silva" {
		t.Fatalf("department filter failed: %+v", sales)
	}

	found, err := store.ListEmployees(ctx, ListFilter{Search: "fernando"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Carol Fernando" {
		t.Fatalf("search is case-insensitive over name, got %+v", found)
	}
}
