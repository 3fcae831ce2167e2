package analyticshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/auth"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
)

type Handler struct {
	Service *analytics.Service
}

func NewHandler(service *analytics.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAction(auth.ActionAnalyticsRead)).Get("/analytics/dashboard", h.handleDashboard)
	r.With(middleware.RequireAction(auth.ActionAnalyticsRead)).Get("/analytics/mood-trend", h.handleMoodTrend)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Service.BuildDashboard(r.Context())
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, dash, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMoodTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.Service.MoodTrend(r.Context(), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, trend, middleware.GetRequestID(r.Context()))
}
