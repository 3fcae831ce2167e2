package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/attendance"
	"workforce/internal/domain/auth"
	"workforce/internal/domain/directory"
	"workforce/internal/domain/feedback"
	"workforce/internal/domain/mood"
	"workforce/internal/domain/notifications"
	"workforce/internal/domain/reports"
	"workforce/internal/domain/tasks"
	"workforce/internal/platform/config"
	"workforce/internal/platform/db"
	analyticshandler "workforce/internal/transport/http/handlers/analytics"
	attendancehandler "workforce/internal/transport/http/handlers/attendance"
	authhandler "workforce/internal/transport/http/handlers/auth"
	employeeshandler "workforce/internal/transport/http/handlers/employees"
	feedbackhandler "workforce/internal/transport/http/handlers/feedback"
	moodhandler "workforce/internal/transport/http/handlers/mood"
	notificationshandler "workforce/internal/transport/http/handlers/notifications"
	reportshandler "workforce/internal/transport/http/handlers/reports"
	taskshandler "workforce/internal/transport/http/handlers/tasks"
	"workforce/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	defer conn.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, conn); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, conn, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	router := NewRouter(conn, cfg)

	log.Printf("workforce server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// NewRouter wires every feature page onto the routing shell. Split from
// Run so journey tests can mount the full application over a test
// database.
func NewRouter(conn *sql.DB, cfg config.Config) http.Handler {
	authStore := auth.NewStore(conn)
	authService := auth.NewService(authStore, cfg.JWTSecret, cfg.TokenTTL)

	employeeStore := directory.NewStore(conn)
	taskStore := tasks.NewStore(conn)
	moodStore := mood.NewStore(conn)
	feedbackStore := feedback.NewStore(conn)
	attendanceStore := attendance.NewStore(conn)
	notificationStore := notifications.NewStore(conn)

	analyticsService := analytics.NewService(employeeStore, taskStore, moodStore, feedbackStore)
	reportService := reports.NewService(employeeStore, analyticsService, cfg.ReportDir)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.SecurityHeaders)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := conn.PingContext(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		employeeshandler.NewHandler(employeeStore).RegisterRoutes(r)
		taskshandler.NewHandler(taskStore, notificationStore).RegisterRoutes(r)
		moodhandler.NewHandler(moodStore).RegisterRoutes(r)
		feedbackhandler.NewHandler(feedbackStore, notificationStore).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationStore).RegisterRoutes(r)
		analyticshandler.NewHandler(analyticsService).RegisterRoutes(r)
		reportshandler.NewHandler(reportService).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return router
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
