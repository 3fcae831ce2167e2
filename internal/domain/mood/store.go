package mood

import (
	"context"
	"database/sql"
	"strings"

	"workforce/internal/apperror"
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// CreateEntry appends one mood log row. The log is append-only: the
// UNIQUE(employee_id, log_date) index rejects a second entry for the
// same employee and day, which the store reports as a conflict.
func (s *Store) CreateEntry(ctx context.Context, entry Entry) (int64, error) {
	var score any
	if entry.Score > 0 {
		score = entry.Score
	}
	result, err := s.DB.ExecContext(ctx, `
    INSERT INTO mood_logs (employee_id, mood, score, remarks, log_date)
    VALUES (?, ?, ?, ?, ?)
  `, entry.EmployeeID, entry.Mood, score, entry.Remarks, entry.LogDate)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, apperror.New(apperror.CodeConflict, "mood already logged for this date")
		}
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return 0, apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return 0, apperror.Wrap(apperror.CodeInternal, "failed to log mood", err)
	}
	return result.LastInsertId()
}

type ListFilter struct {
	EmployeeID int64
	From       string
	To         string
}

func (s *Store) ListEntries(ctx context.Context, filter ListFilter) ([]Entry, error) {
	query := `
    SELECT id, employee_id, mood, COALESCE(score, 0), remarks, log_date, created_at
    FROM mood_logs`
	var clauses []string
	var args []any
	if filter.EmployeeID > 0 {
		clauses = append(clauses, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if filter.From != "" {
		clauses = append(clauses, "log_date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		clauses = append(clauses, "log_date <= ?")
		args = append(args, filter.To)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY log_date DESC, id DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list mood logs", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.Mood, &entry.Score, &entry.Remarks, &entry.LogDate, &entry.CreatedAt); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to list mood logs", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list mood logs", err)
	}
	return out, nil
}

// CountByMood groups entries by mood label, optionally bounded to a
// date range.
func (s *Store) CountByMood(ctx context.Context, from, to string) (map[string]int, error) {
	query := "SELECT mood, COUNT(1) FROM mood_logs"
	var clauses []string
	var args []any
	if from != "" {
		clauses = append(clauses, "log_date >= ?")
		args = append(args, from)
	}
	if to != "" {
		clauses = append(clauses, "log_date <= ?")
		args = append(args, to)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " GROUP BY mood"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to summarize mood logs", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to summarize mood logs", err)
		}
		out[label] = count
	}
	return out, rows.Err()
}
