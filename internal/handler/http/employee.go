package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Subordinates(w http.ResponseWriter, r *http.Request)
	SubordinateCounts(w http.ResponseWriter, r *http.Request)
	Managers(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
	}
}

// Upsert implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var upsertReq employee.UpsertEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&upsertReq); err != nil {
		slog.Error("Upsert employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := upsertReq.Validate(); err != nil {
		slog.Error("Upsert employee validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	profile, created, err := h.employeeService.Upsert(r.Context(), userID, upsertReq)
	if err != nil {
		slog.Error("Upsert employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if created {
		response.Created(w, "Employee profile created", profile)
		return
	}
	response.SuccessWithMessage(w, "Employee profile updated", profile)
}

// Me implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	profile, err := h.employeeService.GetProfile(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// Subordinates implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Subordinates(w http.ResponseWriter, r *http.Request) {
	userID, role, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	subordinates, err := h.employeeService.Subordinates(r.Context(), userID, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, subordinates)
}

// SubordinateCounts implements EmployeeHandler.
func (h *EmployeeHandlerImpl) SubordinateCounts(w http.ResponseWriter, r *http.Request) {
	userID, role, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	counts, err := h.employeeService.SubordinateCounts(r.Context(), userID, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, counts)
}

// Managers implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Managers(w http.ResponseWriter, r *http.Request) {
	userID, role, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	managers, err := h.employeeService.Managers(r.Context(), userID, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, managers)
}
