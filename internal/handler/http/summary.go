package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/oppstream/oppstream-backend-go/internal/domain/summary"
	"github.com/oppstream/oppstream-backend-go/internal/handler/http/response"
)

type SummaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
}

type SummaryHandlerImpl struct {
	summaryService summary.SummaryService
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &SummaryHandlerImpl{
		summaryService: summaryService,
	}
}

// Generate implements SummaryHandler.
func (h *SummaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var generateReq summary.GenerateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		slog.Error("Generate summary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := generateReq.Validate(); err != nil {
		slog.Error("Generate summary validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := h.summaryService.Generate(r.Context(), generateReq)
	if err != nil {
		slog.Error("Generate summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
