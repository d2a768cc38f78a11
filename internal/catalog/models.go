// Package catalog holds the fixed model list and the predefined avatars.
package catalog

import (
	"github.com/samber/lo"

	"uf-ai/backend/internal/model"
)

// DefaultModelID is selected for new users.
const DefaultModelID = "gemini-2.5-flash"

var models = []model.AIModel{
	{ID: "gemini-2.5-flash", Name: "Gemini", Provider: "Google"},
	{ID: "gpt-4o", Name: "ChatGPT", Provider: "OpenAI"},
	{ID: "gpt-plus-pro", Name: "ChatGPT Plus Pro", Provider: "OpenAI"},
	{ID: "deepseek-coder", Name: "DeepSeek", Provider: "DeepSeek"},
	{ID: "grok-1", Name: "Grok", Provider: "xAI"},
	{ID: "grok-3", Name: "Grok 3", Provider: "xAI"},
	{ID: "meta-llama-3", Name: "Meta AI", Provider: "Meta"},
}

// Models returns the selectable models in display order.
func Models() []model.AIModel {
	return append([]model.AIModel(nil), models...)
}

// FindModel looks up a model by id.
func FindModel(id string) (model.AIModel, bool) {
	return lo.Find(models, func(m model.AIModel) bool { return m.ID == id })
}

// ModelOrDefault returns the model with the given id, or the default model.
func ModelOrDefault(id string) model.AIModel {
	if m, ok := FindModel(id); ok {
		return m
	}
	m, _ := FindModel(DefaultModelID)
	return m
}
