package notifications

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

func insertEmployee(t *testing.T, conn *sql.DB, name string) int64 {
	t.Helper()
	result, err := conn.ExecContext(context.Background(), `
    INSERT INTO employees (name, department, role_title, join_date) VALUES (?, 'Engineering', 'Engineer', '2023-01-01')
  `, name)
	if err != nil {
		t.Fatalf("insert employee: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}

func TestPushListMarkRead(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	store := NewStore(conn)
	alice := insertEmployee(t, conn, "Alice")
	bob := insertEmployee(t, conn, "Bob")

	if err := store.Push(ctx, alice, "New task assigned"); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := store.Push(ctx, bob, "You received new feedback"); err != nil {
		t.Fatalf("push: %v", err)
	}

	list, err := store.ListForEmployee(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected only alice's notification, got %d", len(list))
	}
	if list[0].IsRead {
		t.Fatal("new notification should be unread")
	}

	if err := store.MarkRead(ctx, list[0].ID, alice); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	list, err = store.ListForEmployee(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !list[0].IsRead {
		t.Fatal("notification should be read after MarkRead")
	}
}

func TestMarkReadWrongEmployee(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	store := NewStore(conn)
	alice := insertEmployee(t, conn, "Alice")
	bob := insertEmployee(t, conn, "Bob")

	if err := store.Push(ctx, alice, "Private note"); err != nil {
		t.Fatalf("push: %v", err)
	}
	list, err := store.ListForEmployee(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if err := store.MarkRead(ctx, list[0].ID, bob); !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("expected not_found when marking another employee's notification, got %v", err)
	}
}

func TestPushUnknownEmployee(t *testing.T) {
	store := NewStore(openTestDB(t))

	if err := store.Push(context.Background(), 999, "ghost"); !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
