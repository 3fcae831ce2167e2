package notifications

import (
	"context"
	"database/sql"
	"strings"

	"workforce/internal/apperror"
)

type Notification struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	Message    string `json:"message"`
	IsRead     bool   `json:"isRead"`
	CreatedAt  string `json:"createdAt"`
}

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Push(ctx context.Context, employeeID int64, message string) error {
	_, err := s.DB.ExecContext(ctx, `
    INSERT INTO notifications (employee_id, message) VALUES (?, ?)
  `, employeeID, message)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return apperror.Wrap(apperror.CodeInternal, "failed to push notification", err)
	}
	return nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID int64) ([]Notification, error) {
	rows, err := s.DB.QueryContext(ctx, `
    SELECT id, employee_id, message, is_read, created_at
    FROM notifications
    WHERE employee_id = ?
    ORDER BY created_at DESC, id DESC
  `, employeeID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list notifications", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var isRead int
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Message, &isRead, &n.CreatedAt); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to list notifications", err)
		}
		n.IsRead = isRead != 0
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, id, employeeID int64) error {
	result, err := s.DB.ExecContext(ctx, `
    UPDATE notifications SET is_read = 1 WHERE id = ? AND employee_id = ?
  `, id, employeeID)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to mark notification read", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to mark notification read", err)
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, "notification not found")
	}
	return nil
}
