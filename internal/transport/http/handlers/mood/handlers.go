package moodhandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/auth"
	"workforce/internal/domain/mood"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Store *mood.Store
}

func NewHandler(store *mood.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/mood", func(r chi.Router) {
		r.With(middleware.RequireAction(auth.ActionMoodLog)).Post("/", h.handleLog)
		r.Get("/", h.handleList)
	})
}

type logRequest struct {
	Mood    string `json:"mood"`
	Score   int    `json:"score"`
	Remarks string `json:"remarks"`
	LogDate string `json:"logDate"`
}

// handleLog records one mood entry for the session's own employee. The
// entry carries either a free-text mood label or a 5-25 survey score
// from which the label is derived.
func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID <= 0 {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee record linked to this login", middleware.GetRequestID(r.Context()))
		return
	}

	var payload logRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.Score != 0 {
		v.IntRange("score", payload.Score, mood.MinScore, mood.MaxScore, "score must be between 5 and 25")
	} else {
		v.Required("mood", payload.Mood, "mood is required when no survey score is given")
	}
	logDate := strings.TrimSpace(payload.LogDate)
	if logDate == "" {
		logDate = shared.Today()
	} else {
		v.Date("logDate", logDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	label := payload.Mood
	if payload.Score != 0 {
		label = mood.LabelForScore(payload.Score)
	}

	id, err := h.Store.CreateEntry(r.Context(), mood.Entry{
		EmployeeID: user.EmployeeID,
		Mood:       label,
		Score:      payload.Score,
		Remarks:    payload.Remarks,
		LogDate:    logDate,
	})
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]any{"id": id, "mood": label, "logDate": logDate}, middleware.GetRequestID(r.Context()))
}

// handleList returns the caller's own log; Admin and Manager may read
// everyone's, optionally filtered by employee and date range.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	filter := mood.ListFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	if auth.Allows(user.Role, auth.ActionMoodReadAll) {
		if raw := r.URL.Query().Get("employeeId"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				filter.EmployeeID = id
			}
		}
	} else {
		if user.EmployeeID <= 0 {
			api.Fail(w, http.StatusForbidden, "forbidden", "no employee record linked to this login", middleware.GetRequestID(r.Context()))
			return
		}
		filter.EmployeeID = user.EmployeeID
	}

	entries, err := h.Store.ListEntries(r.Context(), filter)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}
