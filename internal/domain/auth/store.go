package auth

import (
	"context"
	"database/sql"
	"errors"
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	RoleName     string
	EmployeeID   int64
}

var ErrUserNotFound = errors.New("user not found")

func (s *Store) FindUserByUsername(ctx context.Context, username string) (User, error) {
	var out User
	var employeeID sql.NullInt64
	err := s.DB.QueryRowContext(ctx, `
    SELECT id, username, password_hash, role, employee_id
    FROM users
    WHERE username = ?
  `, username).Scan(&out.ID, &out.Username, &out.PasswordHash, &out.RoleName, &employeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	out.EmployeeID = employeeID.Int64
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string, role Role, employeeID int64) (int64, error) {
	var empID any
	if employeeID > 0 {
		empID = employeeID
	}
	result, err := s.DB.ExecContext(ctx, `
    INSERT INTO users (username, password_hash, role, employee_id)
    VALUES (?, ?, ?, ?)
  `, username, passwordHash, string(role), empID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := s.DB.ExecContext(ctx, "UPDATE users SET last_login = datetime('now') WHERE id = ?", userID)
	return err
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM users").Scan(&count)
	return count, err
}
