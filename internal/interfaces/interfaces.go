package interfaces

import (
	"context"

	"uf-ai/backend/internal/model"
	"uf-ai/backend/internal/service"
)

// This file defines the interfaces for our core services.
// The API layer depends on these instead of concrete implementations so
// handlers can be tested with mocks.

// ChatService defines the contract for the chat engine.
type ChatService interface {
	SignIn(ctx context.Context, name string) (*model.User, error)
	SignOut(ctx context.Context) error
	CurrentUser() (*model.User, error)
	UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.User, error)
	ClearMemory(ctx context.Context) (*model.User, error)
	SelectModel(ctx context.Context, modelID string) error

	ListAvatars() []model.Avatar
	CreateCustomAvatar(ctx context.Context, name string) (*model.Avatar, error)
	UpdateCustomAvatar(ctx context.Context, id string, upd service.AvatarUpdate) (*model.Avatar, error)

	Sessions() ([]model.ChatSession, error)
	ActiveSession() (*model.ChatSession, error)
	NewSession(ctx context.Context, avatarID string) (*model.ChatSession, error)
	SelectSession(id string)
	RenameSession(ctx context.Context, id, title string) error
	DeleteSession(ctx context.Context, id string, confirm service.ConfirmFunc) error
	DeleteAllSessions(ctx context.Context, confirm service.ConfirmFunc) error

	Messages() ([]model.ChatMessage, error)
	ToggleFeedback(ctx context.Context, messageID string, f model.Feedback) (*model.ChatMessage, error)
	SendMessage(ctx context.Context, req service.SendMessageRequest) (*service.TurnResult, error)
	Regenerate(ctx context.Context, onEvent func(model.StreamEvent)) (*service.TurnResult, error)
	GenerateImage(ctx context.Context, req service.GenerateImageRequest) (*service.TurnResult, error)

	ExportData() ([]byte, error)
	ImportData(ctx context.Context, data []byte) error
}

// ModelService defines the contract for the model catalog.
type ModelService interface {
	List(ctx context.Context) []service.ModelInfo
	Show(ctx context.Context, id string) (*service.ModelInfo, error)
}

// EventSource delivers live chat state changes.
type EventSource interface {
	Subscribe(buffer int) (<-chan model.StreamEvent, func())
}
