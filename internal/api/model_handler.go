package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"uf-ai/backend/internal/interfaces"
)

// ModelHandler handles HTTP requests for the model catalog.
type ModelHandler struct {
	service interfaces.ModelService
}

func NewModelHandler(svc interfaces.ModelService) *ModelHandler {
	return &ModelHandler{service: svc}
}

// HandleListModels godoc
// @Summary      List models
// @Description  Gets every selectable model and the backend serving it (gemini, ollama or simulated).
// @Tags         Models
// @Produce      json
// @Success      200  {array}  service.ModelInfo
// @Router       /v1/models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.List(r.Context()))
}

// HandleShowModel godoc
// @Summary      Show model info
// @Tags         Models
// @Produce      json
// @Param        modelID  path      string  true  "Model ID"
// @Success      200      {object}  service.ModelInfo
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/models/{modelID} [get]
func (h *ModelHandler) HandleShowModel(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Show(r.Context(), chi.URLParam(r, "modelID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, info)
}
