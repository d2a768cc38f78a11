package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"

	"uf-ai/backend/internal/catalog"
	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/model"
	"uf-ai/backend/internal/repository"
)

// SignIn signs in name, replacing any current user. A stored profile, its
// sessions and custom avatars are restored when a repository is configured.
// The message counter always starts from zero on sign-in.
func (s *ChatService) SignIn(ctx context.Context, name string) (*model.User, error) {
	user, err := s.profiles.SignIn(ctx, name)
	if err != nil {
		return nil, err
	}

	var sessions []model.ChatSession
	var avatars []model.Avatar
	if s.repo != nil {
		stored, err := s.repo.GetProfile(ctx, user.UID)
		switch {
		case err == nil:
			stored.MessageCount = 0
			user = stored
		case errors.Is(err, repository.ErrNotFound):
		default:
			slog.Warn("Failed to load stored profile", "uid", user.UID, "error", err)
		}
		if sessions, err = s.repo.ListSessions(ctx, user.UID); err != nil {
			slog.Warn("Failed to load stored sessions", "uid", user.UID, "error", err)
		}
		if avatars, err = s.repo.ListAvatars(ctx, user.UID); err != nil {
			slog.Warn("Failed to load stored avatars", "uid", user.UID, "error", err)
		}
	}

	s.mu.Lock()
	s.user = user
	s.customAvatars = avatars
	s.currentModel = catalog.ModelOrDefault(user.SelectedModelID)
	clear(s.loading)
	s.sessions.Replace(sessions)
	var created string
	if latest, ok := s.sessions.MostRecent(); ok {
		s.activateLocked(latest)
	} else {
		created = s.createSessionLocked(nil).ID
	}
	out := *user
	s.mu.Unlock()

	slog.Info("Session state loaded", "uid", out.UID, "sessions", len(sessions), "avatars", len(avatars))
	s.publish(model.StreamEvent{Type: model.EventSessionsReset}, nil)
	s.publish(model.StreamEvent{Type: model.EventProfileChanged}, nil)
	s.persistProfile(ctx)
	if created != "" {
		s.persistSession(ctx, out.UID, created)
	}
	return &out, nil
}

// SignOut discards the user and every in-memory session. Persisted data stays.
func (s *ChatService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	current := s.user
	s.user = nil
	s.customAvatars = nil
	s.activeID = ""
	s.sessions.Clear()
	s.working.Replace(nil)
	clear(s.loading)
	s.mu.Unlock()

	if err := s.profiles.SignOut(ctx, current); err != nil {
		return err
	}
	s.publish(model.StreamEvent{Type: model.EventSessionsReset}, nil)
	s.publish(model.StreamEvent{Type: model.EventProfileChanged}, nil)
	return nil
}

// CurrentUser returns a copy of the signed-in profile.
func (s *ChatService) CurrentUser() (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	u := *s.user
	return &u, nil
}

// UpdateProfile merges upd into the signed-in profile. Selecting a model also
// switches the model of the active session.
func (s *ChatService) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.User, error) {
	s.mu.Lock()
	current := s.user
	s.mu.Unlock()
	if current == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	next, err := s.profiles.UpdateProfile(ctx, current, upd)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.user == nil || s.user.UID != current.UID {
		s.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	// Merge onto the latest user so a concurrent counter increment survives.
	merged := s.user.Apply(upd)
	s.user = &merged
	var activeID string
	if upd.SelectedModelID != nil {
		m := catalog.ModelOrDefault(*upd.SelectedModelID)
		s.currentModel = m
		if s.sessions.SetModel(s.activeID, m) {
			activeID = s.activeID
		}
	}
	out := merged
	s.mu.Unlock()

	slog.Debug("Profile updated", "uid", next.UID)
	s.publish(model.StreamEvent{Type: model.EventProfileChanged}, nil)
	s.persistProfile(ctx)
	if activeID != "" {
		s.persistSession(ctx, out.UID, activeID)
	}
	return &out, nil
}

// ClearMemory empties the knowledge base.
func (s *ChatService) ClearMemory(ctx context.Context) (*model.User, error) {
	return s.UpdateProfile(ctx, model.ProfileUpdate{KnowledgeBase: lo.ToPtr("")})
}
