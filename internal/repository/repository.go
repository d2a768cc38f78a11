package repository

import (
	"context"

	"uf-ai/backend/internal/model"
)

// Repository persists a signed-in user's profile, sessions and custom avatars.
// Sessions are stored whole, messages included, and listed most recently created first.
type Repository interface {
	SaveProfile(ctx context.Context, user *model.User) error
	GetProfile(ctx context.Context, uid string) (*model.User, error)

	SaveSession(ctx context.Context, uid string, session *model.ChatSession) error
	ListSessions(ctx context.Context, uid string) ([]model.ChatSession, error)
	DeleteSession(ctx context.Context, uid, sessionID string) error
	DeleteSessions(ctx context.Context, uid string) error

	SaveAvatar(ctx context.Context, uid string, avatar *model.Avatar) error
	ListAvatars(ctx context.Context, uid string) ([]model.Avatar, error)
	DeleteAvatars(ctx context.Context, uid string) error
}
