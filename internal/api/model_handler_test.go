package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uf-ai/backend/internal/api"
	app_errors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/interfaces/mocks"
	"uf-ai/backend/internal/llm"
	"uf-ai/backend/internal/model"
	"uf-ai/backend/internal/service"
)

func setupModelHandler(t *testing.T) (*api.ModelHandler, *mocks.MockModelService) {
	mockModelSvc := mocks.NewMockModelService(t)
	handler := api.NewModelHandler(mockModelSvc)
	return handler, mockModelSvc
}

func TestModelHandler_HandleListModels(t *testing.T) {
	handler, mockSvc := setupModelHandler(t)
	expected := []service.ModelInfo{
		{AIModel: model.AIModel{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Provider: "Google"}, Backend: llm.KindSimulated},
		{AIModel: model.AIModel{ID: "meta-llama-3", Name: "Llama 3", Provider: "Meta"}, Backend: llm.KindOllama},
	}
	mockSvc.On("List", mock.Anything).Return(expected).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
	rr := httptest.NewRecorder()
	handler.HandleListModels(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []service.ModelInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, expected, resp)
	assert.Contains(t, rr.Body.String(), `"id":"meta-llama-3"`)
}

func TestModelHandler_HandleShowModel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupModelHandler(t)
		expected := &service.ModelInfo{AIModel: model.AIModel{ID: "gemini-2.5-flash"}, Backend: llm.KindGemini, SupportsImages: true}
		mockSvc.On("Show", mock.Anything, "gemini-2.5-flash").Return(expected, nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/v1/models/gemini-2.5-flash", nil), map[string]string{"modelID": "gemini-2.5-flash"})
		rr := httptest.NewRecorder()
		handler.HandleShowModel(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp service.ModelInfo
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, *expected, resp)
	})

	t.Run("Failure - Service returns not found", func(t *testing.T) {
		handler, mockSvc := setupModelHandler(t)
		mockSvc.On("Show", mock.Anything, "gpt-9").Return(nil, app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/v1/models/gpt-9", nil), map[string]string{"modelID": "gpt-9"})
		rr := httptest.NewRecorder()
		handler.HandleShowModel(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChatHandler_HandleSelectModel(t *testing.T) {
	handler, mockChatSvc, _ := setupChatHandler(t)
	mockChatSvc.On("SelectModel", mock.Anything, "gpt-9").Return(app_errors.ErrNotFound).Once()

	req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/v1/models/gpt-9/select", nil), map[string]string{"modelID": "gpt-9"})
	rr := httptest.NewRecorder()
	handler.HandleSelectModel(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
