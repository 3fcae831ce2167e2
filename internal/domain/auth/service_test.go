package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"workforce/internal/apperror"
	"workforce/internal/domain/auth"
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

func createUser(t *testing.T, store *auth.Store, username, password string, role auth.Role) int64 {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	id, err := store.CreateUser(context.Background(), username, hash, role, 0)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	store := auth.NewStore(openTestDB(t))
	userID := createUser(t, store, "dana", "pa55word", auth.RoleManager)
	service := auth.NewService(store, "test-secret", time.Hour)

	result, err := service.Login(ctx, "dana", "pa55word")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if result.User.UserID != userID || result.User.Username != "dana" || result.User.Role != auth.RoleManager {
		t.Fatalf("user context wrong: %+v", result.User)
	}

	claims, err := auth.ParseToken("test-secret", result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.RoleName != string(auth.RoleManager) {
		t.Fatalf("token carries wrong role: %q", claims.RoleName)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := auth.NewStore(openTestDB(t))
	createUser(t, store, "dana", "pa55word", auth.RoleManager)
	service := auth.NewService(store, "test-secret", time.Hour)

	_, err := service.Login(context.Background(), "dana", "nope")
	if !apperror.Is(err, apperror.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	store := auth.NewStore(openTestDB(t))
	createUser(t, store, "dana", "pa55word", auth.RoleManager)
	service := auth.NewService(store, "test-secret", time.Hour)

	_, err := service.Login(context.Background(), "ghost", "pa55word")
	if !apperror.Is(err, apperror.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err.Error() != "invalid credentials" {
		t.Fatalf("unknown user and wrong password must be indistinguishable, got %q", err.Error())
	}
}

func TestLoginEmptyCredentials(t *testing.T) {
	service := auth.NewService(auth.NewStore(openTestDB(t)), "test-secret", time.Hour)

	_, err := service.Login(context.Background(), "", "")
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFindUserByUsername(t *testing.T) {
	ctx := context.Background()
	store := auth.NewStore(openTestDB(t))
	createUser(t, store, "dana", "pa55word", auth.RoleAdmin)

	user, err := store.FindUserByUsername(ctx, "dana")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if user.RoleName != string(auth.RoleAdmin) {
		t.Fatalf("role wrong: %q", user.RoleName)
	}

	_, err = store.FindUserByUsername(ctx, "ghost")
	if !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCountUsers(t *testing.T) {
	ctx := context.Background()
	store := auth.NewStore(openTestDB(t))

	count, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("fresh database should have no users, got %d", count)
	}

	createUser(t, store, "dana", "pa55word", auth.RoleAdmin)
	count, err = store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}
