package attendancehandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/attendance"
	"workforce/internal/domain/auth"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Store *attendance.Store
}

func NewHandler(store *attendance.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequireAction(auth.ActionAttendanceLog)).Post("/check-in", h.handleCheckIn)
		r.With(middleware.RequireAction(auth.ActionAttendanceLog)).Post("/check-out", h.handleCheckOut)
		r.Get("/", h.handleList)
	})
}

type checkRequest struct {
	Day    string `json:"day"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID <= 0 {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee record linked to this login", middleware.GetRequestID(r.Context()))
		return
	}

	var payload checkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	day := payload.Day
	if day == "" {
		day = shared.Today()
	}
	at := payload.Time
	if at == "" {
		at = time.Now().Format("15:04")
	}

	if err := h.Store.CheckIn(r.Context(), user.EmployeeID, day, at, payload.Status); err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"day": day, "checkIn": at}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID <= 0 {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee record linked to this login", middleware.GetRequestID(r.Context()))
		return
	}

	var payload checkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	day := payload.Day
	if day == "" {
		day = shared.Today()
	}
	at := payload.Time
	if at == "" {
		at = time.Now().Format("15:04")
	}

	if err := h.Store.CheckOut(r.Context(), user.EmployeeID, day, at); err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"day": day, "checkOut": at}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := user.EmployeeID
	if auth.Allows(user.Role, auth.ActionAttendanceRead) {
		employeeID = 0
		if raw := r.URL.Query().Get("employeeId"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				employeeID = id
			}
		}
	} else if employeeID <= 0 {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee record linked to this login", middleware.GetRequestID(r.Context()))
		return
	}

	records, err := h.Store.ListRecords(r.Context(), employeeID)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, records, middleware.GetRequestID(r.Context()))
}
