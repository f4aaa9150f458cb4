package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oppstream/oppstream-backend-go/internal/domain/log"
	"github.com/oppstream/oppstream-backend-go/internal/handler/http/response"
)

type LogHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	VisibleToMe(w http.ResponseWriter, r *http.Request)
	CreatedByMe(w http.ResponseWriter, r *http.Request)
	PendingForMe(w http.ResponseWriter, r *http.Request)
	DecidedByMe(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Resubmit(w http.ResponseWriter, r *http.Request)
	ApprovalCounters(w http.ResponseWriter, r *http.Request)
}

type LogHandlerImpl struct {
	logService log.LogService
}

func NewLogHandler(logService log.LogService) LogHandler {
	return &LogHandlerImpl{
		logService: logService,
	}
}

// Create implements LogHandler.
func (h *LogHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq log.CreateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create log decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		slog.Error("Create log validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	created, err := h.logService.Create(r.Context(), userID, createReq)
	if err != nil {
		slog.Error("Create log service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Log created", "log_id", created.ID)
	response.Created(w, "Log created successfully", created)
}

// GetByID implements LogHandler.
func (h *LogHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	logID := chi.URLParam(r, "logID")
	result, err := h.logService.GetByID(r.Context(), userID, logID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// VisibleToMe implements LogHandler.
func (h *LogHandlerImpl) VisibleToMe(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	logs, err := h.logService.VisibleToMe(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// CreatedByMe implements LogHandler.
func (h *LogHandlerImpl) CreatedByMe(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	logs, err := h.logService.CreatedByMe(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// PendingForMe implements LogHandler.
func (h *LogHandlerImpl) PendingForMe(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	logs, err := h.logService.PendingForMe(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// DecidedByMe implements LogHandler.
func (h *LogHandlerImpl) DecidedByMe(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	logs, err := h.logService.DecidedByMe(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// Decide implements LogHandler.
func (h *LogHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var decisionReq log.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil {
		slog.Error("Decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := decisionReq.Validate(); err != nil {
		slog.Error("Decide validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	logID := chi.URLParam(r, "logID")
	updated, err := h.logService.Decide(r.Context(), userID, logID, decisionReq)
	if err != nil {
		slog.Error("Decide service error", "error", err, "log_id", logID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Approval decision recorded", "log_id", logID, "status", decisionReq.Status)
	response.SuccessWithMessage(w, "Decision recorded", updated)
}

// Resubmit implements LogHandler.
func (h *LogHandlerImpl) Resubmit(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var resubmitReq log.ResubmitLogRequest
	if err := json.NewDecoder(r.Body).Decode(&resubmitReq); err != nil {
		slog.Error("Resubmit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := resubmitReq.Validate(); err != nil {
		slog.Error("Resubmit validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	logID := chi.URLParam(r, "logID")
	updated, err := h.logService.Resubmit(r.Context(), userID, logID, resubmitReq)
	if err != nil {
		slog.Error("Resubmit service error", "error", err, "log_id", logID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Log resubmitted", "log_id", logID)
	response.SuccessWithMessage(w, "Log resubmitted successfully", updated)
}

// ApprovalCounters implements LogHandler.
func (h *LogHandlerImpl) ApprovalCounters(w http.ResponseWriter, r *http.Request) {
	userID, _, err := currentUser(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	counters, err := h.logService.ApprovalCounters(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, counters)
}
