package feedback

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

// CreateEntry appends one feedback row. Rating bounds are validated at
// the page boundary before any write; the CHECK constraint is a last
// line of defense only.
func (s *Store) CreateEntry(ctx context.Context, entry Entry) (int64, error) {
	result, err := s.DB.ExecContext(ctx, `
    INSERT INTO feedback (sender_id, receiver_id, message, rating, log_date)
    VALUES (?, ?, ?, ?, ?)
  `, entry.SenderID, entry.ReceiverID, entry.Message, entry.Rating, entry.LogDate)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return 0, apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return 0, apperror.Wrap(apperror.CodeInternal, "failed to submit feedback", err)
	}
	return result.LastInsertId()
}

type ListFilter struct {
	ReceiverID int64
	SenderID   int64
}

func (s *Store) ListEntries(ctx context.Context, filter ListFilter) ([]Entry, error) {
	query := `
    SELECT id, sender_id, receiver_id, message, rating, log_date, created_at
    FROM feedback`
	var clauses []string
	var args []any
	if filter.ReceiverID > 0 {
		clauses = append(clauses, "receiver_id = ?")
		args = append(args, filter.ReceiverID)
	}
	if filter.SenderID > 0 {
		clauses = append(clauses, "sender_id = ?")
		args = append(args, filter.SenderID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list feedback", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.SenderID, &entry.ReceiverID, &entry.Message, &entry.Rating, &entry.LogDate, &entry.CreatedAt); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to list feedback", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to list feedback", err)
	}
	return out, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM feedback WHERE id = ?", id)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to delete feedback", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to delete feedback", err)
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, "feedback not found")
	}
	return nil
}

// SummaryByReceiver computes average rating and entry count per
// receiving employee.
func (s *Store) SummaryByReceiver(ctx context.Context) ([]ReceiverSummary, error) {
	rows, err := s.DB.QueryContext(ctx, `
    SELECT receiver_id, AVG(rating), COUNT(1)
    FROM feedback
    GROUP BY receiver_id
    ORDER BY receiver_id
  `)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to summarize feedback", err)
	}
	defer rows.Close()

	var out []ReceiverSummary
	for rows.Next() {
		var summary ReceiverSummary
		if err := rows.Scan(&summary.ReceiverID, &summary.AvgRating, &summary.Count); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to summarize feedback", err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}
