package feedbackhandler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/auth"
	"workforce/internal/domain/feedback"
	"workforce/internal/domain/notifications"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Store         *feedback.Store
	Notifications *notifications.Store
}

func NewHandler(store *feedback.Store, notificationStore *notifications.Store) *Handler {
	return &Handler{Store: store, Notifications: notificationStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/feedback", func(r chi.Router) {
		r.With(middleware.RequireAction(auth.ActionFeedbackWrite)).Post("/", h.handleSubmit)
		r.Get("/", h.handleList)
		r.With(middleware.RequireAction(auth.ActionFeedbackReadAll)).Get("/summary", h.handleSummary)
		r.With(middleware.RequireAction(auth.ActionFeedbackDelete)).Delete("/{feedbackID}", h.handleDelete)
	})
}

type submitRequest struct {
	ReceiverID int64  `json:"receiverId"`
	Message    string `json:"message"`
	Rating     int    `json:"rating"`
}

// handleSubmit appends one peer feedback entry. The rating bound is
// checked before any write happens.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID <= 0 {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee record linked to this login", middleware.GetRequestID(r.Context()))
		return
	}

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("message", payload.Message, "feedback message is required")
	if !feedback.ValidRating(payload.Rating) {
		v.Add("rating", "rating must be between 1 and 5")
	}
	if payload.ReceiverID <= 0 {
		v.Add("receiverId", "receiving employee is required")
	}
	if payload.ReceiverID == user.EmployeeID {
		v.Add("receiverId", "feedback must be about a peer, not yourself")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateEntry(r.Context(), feedback.Entry{
		SenderID:   user.EmployeeID,
		ReceiverID: payload.ReceiverID,
		Message:    payload.Message,
		Rating:     payload.Rating,
		LogDate:    shared.Today(),
	})
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Notifications.Push(r.Context(), payload.ReceiverID, fmt.Sprintf("You received new feedback (rating %d/5)", payload.Rating)); err != nil {
		log.Printf("feedback notification failed: %v", err)
	}

	api.Created(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

// handleList: Admin and Manager read everything; everyone else sees
// only feedback about themselves.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	filter := feedback.ListFilter{}
	if !auth.Allows(user.Role, auth.ActionFeedbackReadAll) {
		if user.EmployeeID <= 0 {
			api.Fail(w, http.StatusForbidden, "forbidden", "no employee record linked to this login", middleware.GetRequestID(r.Context()))
			return
		}
		filter.ReceiverID = user.EmployeeID
	}

	entries, err := h.Store.ListEntries(r.Context(), filter)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.URLID(r, "feedbackID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "feedback id must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.DeleteEntry(r.Context(), id); err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Store.SummaryByReceiver(r.Context())
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
