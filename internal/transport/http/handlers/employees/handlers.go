package employeeshandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/auth"
	"workforce/internal/domain/directory"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Store    *directory.Store
	Importer *directory.Importer
}

func NewHandler(store *directory.Store) *Handler {
	return &Handler{Store: store, Importer: directory.NewImporter(store)}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireAction(auth.ActionEmployeesRead)).Get("/", h.handleList)
		r.With(middleware.RequireAction(auth.ActionEmployeesWrite)).Post("/", h.handleCreate)
		r.With(middleware.RequireAction(auth.ActionEmployeesImport)).Post("/import", h.handleImport)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(middleware.RequireAction(auth.ActionEmployeesRead)).Get("/", h.handleGet)
			r.With(middleware.RequireAction(auth.ActionEmployeesWrite)).Put("/", h.handleUpdate)
			r.With(middleware.RequireAction(auth.ActionEmployeesDelete)).Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	filter := directory.ListFilter{
		Status:     r.URL.Query().Get("status"),
		Department: r.URL.Query().Get("department"),
		Search:     r.URL.Query().Get("q"),
	}

	employees, err := h.Store.ListEmployees(r.Context(), filter)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	// Employees only see their own record; Admin and Manager see all.
	if user.Role == auth.RoleEmployee {
		var own []directory.Employee
		for _, emp := range employees {
			if emp.ID == user.EmployeeID {
				own = append(own, emp)
			}
		}
		employees = own
	}

	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	id, ok := shared.URLID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	if user.Role == auth.RoleEmployee && id != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func validateEmployee(v *shared.Validator, emp directory.Employee) {
	v.Required("name", emp.Name, "name is required")
	v.Required("department", emp.Department, "department is required")
	v.Required("roleTitle", emp.RoleTitle, "role title is required")
	v.Required("joinDate", emp.JoinDate, "join date is required")
	if emp.JoinDate != "" {
		v.Date("joinDate", emp.JoinDate)
	}
	if emp.ResignDate != "" {
		v.Date("resignDate", emp.ResignDate)
	}
	v.Enum("status", emp.Status, []string{directory.StatusActive, directory.StatusResigned}, "status must be Active or Resigned")
	if emp.Salary < 0 {
		v.Add("salary", "salary must not be negative")
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload directory.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	validateEmployee(v, payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateEmployee(r.Context(), payload)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.URLID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	var payload directory.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	validateEmployee(v, payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Store.UpdateEmployee(r.Context(), id, payload); err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.URLID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

// handleImport accepts a CSV body by default; an XLSX workbook when the
// Content-Type says so. Per-row failures are reported, not fatal.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")

	var report directory.ImportReport
	var err error
	if strings.Contains(contentType, "spreadsheet") || strings.Contains(contentType, "officedocument") {
		report, err = h.Importer.ImportXLSX(r.Context(), r.Body)
	} else {
		report, err = h.Importer.ImportCSV(r.Context(), r.Body)
	}
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, report, middleware.GetRequestID(r.Context()))
}
