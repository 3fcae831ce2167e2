package tasks

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

const taskColumns = `
    id, task_name, employee_id, COALESCE(assigned_by, 0), due_date,
    priority, status, remarks, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (Task, error) {
	var t Task
	err := row.Scan(
		&t.ID, &t.TaskName, &t.EmployeeID, &t.AssignedBy, &t.DueDate,
		&t.Priority, &t.Status, &t.Remarks, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (s *Store) GetTask(ctx context.Context, id int64) (Task, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT"+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, apperror.New(apperror.CodeNotFound, "task not found")
	}
	if err != nil {
		return Task{}, apperror.Wrap(apperror.CodeInternal, "failed to load task", err)
	}
	return task, nil
}

type ListFilter struct {
	EmployeeID int64
	Status     string
}

func (s *Store) ListTasks(ctx context.Context, filter ListFilter) ([]Task, error) {
	query := "SELECT" + taskColumns + " FROM tasks"
	var clauses []string
	var args []any
	if filter.EmployeeID > 0 {
		clauses = append(clauses, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY due_date, id"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list tasks", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to list tasks", err)
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list tasks", err)
	}
	return out, nil
}

func (s *Store) CreateTask(ctx context.Context, task Task) (int64, error) {
	if task.Status == "" {
		task.Status = StatusPending
	}
	if task.Priority == "" {
		task.Priority = "Medium"
	}
	var assignedBy any
	if task.AssignedBy > 0 {
		assignedBy = task.AssignedBy
	}
	result, err := s.DB.ExecContext(ctx, `
    INSERT INTO tasks (task_name, employee_id, assigned_by, due_date, priority, status, remarks)
    VALUES (?, ?, ?, ?, ?, ?, ?)
  `, task.TaskName, task.EmployeeID, assignedBy, task.DueDate, task.Priority, task.Status, task.Remarks)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return 0, apperror.New(apperror.CodeNotFound, "assigned employee not found")
		}
		return 0, apperror.Wrap(apperror.CodeInternal, "failed to create task", err)
	}
	return result.LastInsertId()
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := s.DB.ExecContext(ctx, `
    UPDATE tasks SET status = ?, updated_at = datetime('now') WHERE id = ?
  `, status, id)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to update task", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to update task", err)
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, "task not found")
	}
	return nil
}

func (s *Store) UpdateRemarks(ctx context.Context, id int64, remarks string) error {
	result, err := s.DB.ExecContext(ctx, `
    UPDATE tasks SET remarks = ?, updated_at = datetime('now') WHERE id = ?
  `, remarks, id)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to update task", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to update task", err)
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, "task not found")
	}
	return nil
}

func (s *Store) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT status, COUNT(1) FROM tasks GROUP BY status")
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to summarize tasks", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to summarize tasks", err)
		}
		out[status] = count
	}
	return out, rows.Err()
}

func (s *Store) CountByPriority(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT priority, COUNT(1) FROM tasks GROUP BY priority")
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to summarize tasks", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var priority string
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to summarize tasks", err)
		}
		out[priority] = count
	}
	return out, rows.Err()
}
