package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/auth"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/logout", h.HandleLogout)
	r.Get("/me", h.HandleMe)
	r.With(middleware.RequireAction(auth.ActionUsersManage)).Post("/users", h.HandleCreateUser)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": result.Token,
		"user": map[string]any{
			"id":         result.User.UserID,
			"username":   result.User.Username,
			"employeeId": result.User.EmployeeID,
			"role":       string(result.User.Role),
		},
	}, middleware.GetRequestID(r.Context()))
}

// HandleLogout exists for UI symmetry; tokens are stateless and simply
// discarded client side.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "logged out"}, middleware.GetRequestID(r.Context()))
}

type createUserRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	EmployeeID int64  `json:"employeeId"`
}

// HandleCreateUser lets an Admin provision a login, optionally linked
// to an employee record so self-scoped pages know who "self" is.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "username is required")
	v.Required("password", payload.Password, "password is required")
	role, ok := auth.ParseRole(payload.Role)
	if !ok {
		v.Add("role", "role must be Admin, Manager or Employee")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "an internal error occurred", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.Store.CreateUser(r.Context(), payload.Username, hash, role, payload.EmployeeID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			api.Fail(w, http.StatusConflict, "conflict", "username already exists", middleware.GetRequestID(r.Context()))
			return
		}
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"id":         user.UserID,
		"username":   user.Username,
		"employeeId": user.EmployeeID,
		"role":       string(user.Role),
	}, middleware.GetRequestID(r.Context()))
}
