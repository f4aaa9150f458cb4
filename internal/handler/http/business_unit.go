package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/oppstream/oppstream-backend-go/internal/domain/businessunit"
	"github.com/oppstream/oppstream-backend-go/internal/handler/http/response"
)

type BusinessUnitHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type BusinessUnitHandlerImpl struct {
	businessUnitService businessunit.BusinessUnitService
}

func NewBusinessUnitHandler(businessUnitService businessunit.BusinessUnitService) BusinessUnitHandler {
	return &BusinessUnitHandlerImpl{
		businessUnitService: businessUnitService,
	}
}

// Create implements BusinessUnitHandler.
func (h *BusinessUnitHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq businessunit.CreateBusinessUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create business unit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		slog.Error("Create business unit validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	created, err := h.businessUnitService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create business unit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Business unit created successfully", created)
}

// List implements BusinessUnitHandler.
func (h *BusinessUnitHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	units, err := h.businessUnitService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, units)
}
