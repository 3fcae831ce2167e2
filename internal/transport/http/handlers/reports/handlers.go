package reportshandler

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/auth"
	"workforce/internal/domain/reports"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequireAction(auth.ActionReportsGenerate)).Get("/roster", h.handleRoster)
		r.With(middleware.RequireAction(auth.ActionReportsGenerate)).Get("/employees/{employeeID}", h.handleEmployeeProfile)
	})
}

func (h *Handler) handleRoster(w http.ResponseWriter, r *http.Request) {
	path, err := h.Service.GenerateRosterPDF(r.Context())
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	serveReport(w, r, path)
}

func (h *Handler) handleEmployeeProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.URLID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	path, err := h.Service.GenerateEmployeeProfilePDF(r.Context(), id)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	serveReport(w, r, path)
}

func serveReport(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}
