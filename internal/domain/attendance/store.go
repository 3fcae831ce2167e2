package attendance

import (
	"context"
	"database/sql"
	"strings"

	"workforce/internal/apperror"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusRemote  = "Remote"
)

type Record struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	Day        string `json:"day"`
	CheckIn    string `json:"checkIn,omitempty"`
	CheckOut   string `json:"checkOut,omitempty"`
	Status     string `json:"status"`
}

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// CheckIn records the day's attendance for an employee. A repeated
// check-in on the same day updates the existing row rather than
// inserting a duplicate.
func (s *Store) CheckIn(ctx context.Context, employeeID int64, day, checkIn, status string) error {
	if status == "" {
		status = StatusPresent
	}
	_, err := s.DB.ExecContext(ctx, `
    INSERT INTO attendance (employee_id, day, check_in, status)
    VALUES (?, ?, ?, ?)
    ON CONFLICT (employee_id, day)
    DO UPDATE SET check_in = excluded.check_in, status = excluded.status
  `, employeeID, day, checkIn, status)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return apperror.Wrap(apperror.CodeInternal, "failed to record check-in", err)
	}
	return nil
}

func (s *Store) CheckOut(ctx context.Context, employeeID int64, day, checkOut string) error {
	result, err := s.DB.ExecContext(ctx, `
    UPDATE attendance SET check_out = ? WHERE employee_id = ? AND day = ?
  `, checkOut, employeeID, day)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to record check-out", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to record check-out", err)
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, "no check-in recorded for this date")
	}
	return nil
}

func (s *Store) ListRecords(ctx context.Context, employeeID int64) ([]Record, error) {
	query := `
    SELECT id, employee_id, day, COALESCE(check_in, ''), COALESCE(check_out, ''), status
    FROM attendance`
	var args []any
	if employeeID > 0 {
		query += " WHERE employee_id = ?"
		args = append(args, employeeID)
	}
	query += " ORDER BY day DESC, id DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list attendance", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Day, &rec.CheckIn, &rec.CheckOut, &rec.Status); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to list attendance", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
