package taskshandler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/auth"
	"workforce/internal/domain/notifications"
	"workforce/internal/domain/tasks"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Store         *tasks.Store
	Notifications *notifications.Store
}

func NewHandler(store *tasks.Store, notificationStore *notifications.Store) *Handler {
	return &Handler{Store: store, Notifications: notificationStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.With(middleware.RequireAction(auth.ActionTasksRead)).Get("/", h.handleList)
		r.With(middleware.RequireAction(auth.ActionTasksAssign)).Post("/", h.handleAssign)
		r.Route("/{taskID}", func(r chi.Router) {
			r.With(middleware.RequireAction(auth.ActionTasksRead)).Get("/", h.handleGet)
			r.With(middleware.RequireAction(auth.ActionTasksUpdate)).Put("/status", h.handleUpdateStatus)
			r.With(middleware.RequireAction(auth.ActionTasksAssign)).Put("/remarks", h.handleUpdateRemarks)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	filter := tasks.ListFilter{Status: r.URL.Query().Get("status")}
	if user.Role == auth.RoleEmployee {
		filter.EmployeeID = user.EmployeeID
	}

	list, err := h.Store.ListTasks(r.Context(), filter)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	id, ok := shared.URLID(r, "taskID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "task id must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	task, err := h.Store.GetTask(r.Context(), id)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	if user.Role == auth.RoleEmployee && task.EmployeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

type assignRequest struct {
	TaskName   string `json:"taskName"`
	EmployeeID int64  `json:"employeeId"`
	DueDate    string `json:"dueDate"`
	Priority   string `json:"priority"`
	Remarks    string `json:"remarks"`
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload assignRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("taskName", payload.TaskName, "task name is required")
	v.Required("dueDate", payload.DueDate, "due date is required")
	if payload.DueDate != "" {
		v.Date("dueDate", payload.DueDate)
	}
	if payload.Priority != "" && !tasks.ValidPriority(payload.Priority) {
		v.Add("priority", "priority must be Low, Medium or High")
	}
	if payload.EmployeeID <= 0 {
		v.Add("employeeId", "assigned employee is required")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateTask(r.Context(), tasks.Task{
		TaskName:   payload.TaskName,
		EmployeeID: payload.EmployeeID,
		AssignedBy: user.EmployeeID,
		DueDate:    payload.DueDate,
		Priority:   payload.Priority,
		Remarks:    payload.Remarks,
	})
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Notifications.Push(r.Context(), payload.EmployeeID, fmt.Sprintf("New task assigned: %s (due %s)", payload.TaskName, payload.DueDate)); err != nil {
		log.Printf("task notification failed: %v", err)
	}

	api.Created(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

type statusRequest struct {
	Status string `json:"status"`
}

// handleUpdateStatus lets the assigned employee move their own task
// through its lifecycle; Admin and Manager may update any task.
func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	id, ok := shared.URLID(r, "taskID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "task id must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if !tasks.ValidStatus(payload.Status) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "status must be pending, in-progress or done", middleware.GetRequestID(r.Context()))
		return
	}

	task, err := h.Store.GetTask(r.Context(), id)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	if user.Role == auth.RoleEmployee && task.EmployeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpdateStatus(r.Context(), id, payload.Status); err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"status": payload.Status}, middleware.GetRequestID(r.Context()))
}

type remarksRequest struct {
	Remarks string `json:"remarks"`
}

func (h *Handler) handleUpdateRemarks(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.URLID(r, "taskID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "task id must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	var payload remarksRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpdateRemarks(r.Context(), id, payload.Remarks); err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}
