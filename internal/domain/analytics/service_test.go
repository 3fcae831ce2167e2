package analytics

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"testing"

	"workforce/internal/domain/directory"
	"workforce/internal/domain/feedback"
	"workforce/internal/domain/mood"
	"workforce/internal/domain/tasks"
	"workforce/internal/platform/db"
)

func newTestService(t *testing.T) (*Service, *sql.DB) {
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

	employees := directory.NewStore(conn)
	service := NewService(employees, tasks.NewStore(conn), mood.NewStore(conn), feedback.NewStore(conn))
	return service, conn
}

func seedEmployee(t *testing.T, store *directory.Store, emp directory.Employee) int64 {
	t.Helper()
	id, err := store.CreateEmployee(context.Background(), emp)
	if err != nil {
		t.Fatalf("seed employee %s: %v", emp.Name, err)
	}
	return id
}

func TestBuildDashboard(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	alice := seedEmployee(t, service.Employees, directory.Employee{
		Name: "Alice", Gender: "Female", Department: "Engineering", RoleTitle: "Engineer",
		JoinDate: "2023-01-01", Status: directory.StatusActive, Salary: 100000,
	})
	bob := seedEmployee(t, service.Employees, directory.Employee{
		Name: "Bob", Gender: "Male", Department: "Engineering", RoleTitle: "Engineer",
		JoinDate: "2023-02-01", Status: directory.StatusActive, Salary: 80000,
	})
	seedEmployee(t, service.Employees, directory.Employee{
		Name: "Carol", Gender: "Female", Department: "Sales", RoleTitle: "Rep",
		JoinDate: "2022-01-01", Status: directory.StatusResigned, ResignDate: "2026-01-31", Salary: 60000,
	})

	if _, err := service.Tasks.CreateTask(ctx, tasks.Task{TaskName: "A", EmployeeID: alice, DueDate: "2026-09-01", Priority: "High"}); err != nil {
		t.Fatalf("task: %v", err)
	}
	doneID, err := service.Tasks.CreateTask(ctx, tasks.Task{TaskName: "B", EmployeeID: bob, DueDate: "2026-09-02", Priority: "Low"})
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	if err := service.Tasks.UpdateStatus(ctx, doneID, tasks.StatusDone); err != nil {
		t.Fatalf("status: %v", err)
	}

	if _, err := service.Mood.CreateEntry(ctx, mood.Entry{EmployeeID: alice, Mood: mood.MoodHappy, LogDate: "2026-08-20"}); err != nil {
		t.Fatalf("mood: %v", err)
	}
	if _, err := service.Mood.CreateEntry(ctx, mood.Entry{EmployeeID: bob, Mood: mood.MoodStressed, LogDate: "2026-08-20"}); err != nil {
		t.Fatalf("mood: %v", err)
	}

	if _, err := service.Feedback.CreateEntry(ctx, feedback.Entry{SenderID: bob, ReceiverID: alice, Message: "Nice", Rating: 5, LogDate: "2026-08-20"}); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if _, err := service.Feedback.CreateEntry(ctx, feedback.Entry{SenderID: alice, ReceiverID: alice, Message: "Self", Rating: 4, LogDate: "2026-08-21"}); err != nil {
		t.Fatalf("feedback: %v", err)
	}

	dash, err := service.BuildDashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if dash.Employees.Total != 3 || dash.Employees.Active != 2 || dash.Employees.Resigned != 1 {
		t.Fatalf("headcount summary wrong: %+v", dash.Employees)
	}

	if len(dash.Departments) != 1 {
		t.Fatalf("only departments with active staff should appear: %+v", dash.Departments)
	}
	eng := dash.Departments[0]
	if eng.Department != "Engineering" || eng.Headcount != 2 || math.Abs(eng.AvgSalary-90000) > 0.001 {
		t.Fatalf("engineering stats wrong: %+v", eng)
	}

	if dash.GenderRatio["Female"] != 1 || dash.GenderRatio["Male"] != 1 {
		t.Fatalf("gender ratio counts active employees only: %v", dash.GenderRatio)
	}

	if dash.TasksByStatus[tasks.StatusPending] != 1 || dash.TasksByStatus[tasks.StatusDone] != 1 {
		t.Fatalf("task status counts wrong: %v", dash.TasksByStatus)
	}
	if dash.TasksByPriority["High"] != 1 || dash.TasksByPriority["Low"] != 1 {
		t.Fatalf("task priority counts wrong: %v", dash.TasksByPriority)
	}

	if dash.MoodDistribution[mood.MoodHappy] != 1 || dash.MoodDistribution[mood.MoodStressed] != 1 {
		t.Fatalf("mood distribution wrong: %v", dash.MoodDistribution)
	}

	if len(dash.FeedbackSummary) != 1 {
		t.Fatalf("expected one feedback receiver, got %+v", dash.FeedbackSummary)
	}
	stat := dash.FeedbackSummary[0]
	if stat.EmployeeID != alice || stat.Employee != "Alice" || stat.Count != 2 || math.Abs(stat.AvgRating-4.5) > 0.001 {
		t.Fatalf("feedback stat wrong: %+v", stat)
	}
}

func TestMoodTrendGroupsByMonth(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	alice := seedEmployee(t, service.Employees, directory.Employee{
		Name: "Alice", Department: "Engineering", RoleTitle: "Engineer",
		JoinDate: "2023-01-01", Status: directory.StatusActive,
	})
	bob := seedEmployee(t, service.Employees, directory.Employee{
		Name: "Bob", Department: "Engineering", RoleTitle: "Engineer",
		JoinDate: "2023-01-01", Status: directory.StatusActive,
	})

	fixtures := []mood.Entry{
		{EmployeeID: alice, Mood: mood.MoodHappy, LogDate: "2026-07-05"},
		{EmployeeID: bob, Mood: mood.MoodHappy, LogDate: "2026-07-20"},
		{EmployeeID: alice, Mood: mood.MoodStressed, LogDate: "2026-08-03"},
	}
	for _, entry := range fixtures {
		if _, err := service.Mood.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("mood: %v", err)
		}
	}

	trend, err := service.MoodTrend(ctx, "", "")
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(trend) != 2 {
		t.Fatalf("expected 2 trend points, got %+v", trend)
	}
	if trend[0].Period != "2026-07" || trend[0].Mood != mood.MoodHappy || trend[0].Count != 2 {
		t.Fatalf("july point wrong: %+v", trend[0])
	}
	if trend[1].Period != "2026-08" || trend[1].Mood != mood.MoodStressed || trend[1].Count != 1 {
		t.Fatalf("august point wrong: %+v", trend[1])
	}

	bounded, err := service.MoodTrend(ctx, "2026-08-01", "")
	if err != nil {
		t.Fatalf("bounded trend: %v", err)
	}
	if len(bounded) != 1 || bounded[0].Period != "2026-08" {
		t.Fatalf("range filter failed: %+v", bounded)
	}
}

func TestDepartmentStatsEmpty(t *testing.T) {
	stats := departmentStats(nil)
	if len(stats) != 0 {
		t.Fatalf("expected no stats, got %+v", stats)
	}
}
