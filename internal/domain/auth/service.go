package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"workforce/internal/apperror"
)

type Service struct {
	Store     *Store
	JWTSecret string
	TokenTTL  time.Duration
}

func NewService(store *Store, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{Store: store, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

type LoginResult struct {
	Token string
	User  UserContext
}

// Login validates credentials against the users table and produces a
// role-tagged session token. Invalid username and invalid password are
// deliberately indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, apperror.New(apperror.CodeValidation, "username and password are required")
	}

	user, err := s.Store.FindUserByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return LoginResult{}, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginResult{}, apperror.Wrap(apperror.CodeInternal, "login failed", err)
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	}

	role, ok := ParseRole(user.RoleName)
	if !ok {
		return LoginResult{}, apperror.New(apperror.CodeInternal, "login failed")
	}

	token, err := GenerateToken(s.JWTSecret, Claims{
		UserID:     user.ID,
		Username:   user.Username,
		EmployeeID: user.EmployeeID,
		RoleName:   user.RoleName,
	}, s.TokenTTL)
	if err != nil {
		return LoginResult{}, apperror.Wrap(apperror.CodeInternal, "login failed", err)
	}

	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("last login update failed: %v", err)
	}

	return LoginResult{
		Token: token,
		User: UserContext{
			UserID:     user.ID,
			Username:   user.Username,
			EmployeeID: user.EmployeeID,
			Role:       role,
		},
	}, nil
}
