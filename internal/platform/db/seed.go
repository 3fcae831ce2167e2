package db

import (
	"context"
	"database/sql"
	"strings"

	"workforce/internal/domain/auth"
	"workforce/internal/platform/config"
)

// Seed creates the default Admin login when the users table is empty,
// so a fresh database is reachable through the UI.
func Seed(ctx context.Context, conn *sql.DB, cfg config.Config) error {
	store := auth.NewStore(conn)

	count, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := strings.TrimSpace(cfg.SeedAdminUsername)
	password := cfg.SeedAdminPassword
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = store.CreateUser(ctx, username, hash, auth.RoleAdmin, 0)
	return err
}
