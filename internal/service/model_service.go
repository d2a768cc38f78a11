package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"uf-ai/backend/internal/catalog"
	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/llm"
	"uf-ai/backend/internal/model"
)

// ModelInfo is a catalog model together with the backend currently serving it.
type ModelInfo struct {
	model.AIModel
	Backend        llm.Kind `json:"backend"`
	SupportsImages bool     `json:"supportsImages"`
	SupportsSearch bool     `json:"supportsSearch"`
}

// ModelService handles the business logic for the model catalog.
type ModelService struct {
	providers *llm.Registry
}

// NewModelService creates a new ModelService.
func NewModelService(providers *llm.Registry) *ModelService {
	return &ModelService{providers: providers}
}

// List returns every selectable model and how it is served.
func (s *ModelService) List(_ context.Context) []ModelInfo {
	return lo.Map(catalog.Models(), func(m model.AIModel, _ int) ModelInfo { return s.describe(m) })
}

// Show retrieves a single model.
func (s *ModelService) Show(_ context.Context, id string) (*ModelInfo, error) {
	m, ok := catalog.FindModel(id)
	if !ok {
		return nil, fmt.Errorf("model %q: %w", id, apperrors.ErrNotFound)
	}
	info := s.describe(m)
	return &info, nil
}

func (s *ModelService) describe(m model.AIModel) ModelInfo {
	c := s.providers.Resolve(m.ID)
	return ModelInfo{
		AIModel:        m,
		Backend:        c.Kind,
		SupportsImages: c.SupportsImages,
		SupportsSearch: c.SupportsSearch,
	}
}
