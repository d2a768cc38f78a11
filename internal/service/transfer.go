package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"uf-ai/backend/internal/catalog"
	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/model"
)

// ExportBundle is the downloadable snapshot of a user's data.
type ExportBundle struct {
	Profile       *model.User         `json:"profile"`
	Chats         []model.ChatSession `json:"chats"`
	CustomAvatars []model.Avatar      `json:"customAvatars"`
	ExportDate    time.Time           `json:"exportDate"`
}

// ExportData serializes the profile, all sessions and custom avatars.
func (s *ChatService) ExportData() ([]byte, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	u := *s.user
	bundle := ExportBundle{
		Profile:       &u,
		Chats:         s.sessions.List(),
		CustomAvatars: append([]model.Avatar{}, s.customAvatars...),
		ExportDate:    time.Now().UTC(),
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// ImportData replaces the profile, sessions and custom avatars with the
// contents of an export. Nothing changes if the bundle is invalid.
func (s *ChatService) ImportData(ctx context.Context, data []byte) error {
	var bundle ExportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("%w: malformed export: %v", apperrors.ErrValidation, err)
	}
	if err := validateBundle(&bundle); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return apperrors.ErrUnauthenticated
	}
	user := *bundle.Profile
	s.user = &user
	s.customAvatars = lo.Map(bundle.CustomAvatars, func(a model.Avatar, _ int) model.Avatar {
		a.Custom = true
		return a
	})
	s.currentModel = catalog.ModelOrDefault(user.SelectedModelID)
	clear(s.loading)
	s.sessions.Replace(bundle.Chats)
	if latest, ok := s.sessions.MostRecent(); ok {
		s.activateLocked(latest)
	} else {
		s.createSessionLocked(nil)
	}
	ids := lo.Map(s.sessions.List(), func(c model.ChatSession, _ int) string { return c.ID })
	avatarIDs := lo.Map(s.customAvatars, func(a model.Avatar, _ int) string { return a.ID })
	s.mu.Unlock()

	slog.Info("Imported data", "uid", user.UID, "sessions", len(ids), "avatars", len(avatarIDs))
	s.publish(model.StreamEvent{Type: model.EventSessionsReset}, nil)
	s.publish(model.StreamEvent{Type: model.EventProfileChanged}, nil)

	s.persistProfile(ctx)
	s.unpersistAllSessions(ctx, user.UID)
	for _, id := range ids {
		s.persistSession(ctx, user.UID, id)
	}
	s.unpersistAllAvatars(ctx, user.UID)
	for _, id := range avatarIDs {
		s.persistAvatar(ctx, user.UID, id)
	}
	return nil
}

func validateBundle(b *ExportBundle) error {
	var result *multierror.Error
	if b.Profile == nil {
		result = multierror.Append(result, fmt.Errorf("profile is missing"))
	} else if b.Profile.UID == "" || b.Profile.Name == "" {
		result = multierror.Append(result, fmt.Errorf("profile needs a uid and a name"))
	}

	seen := make(map[string]bool, len(b.Chats))
	for i, c := range b.Chats {
		if c.ID == "" {
			result = multierror.Append(result, fmt.Errorf("chat %d has no id", i))
			continue
		}
		if seen[c.ID] {
			result = multierror.Append(result, fmt.Errorf("chat %q appears twice", c.ID))
		}
		seen[c.ID] = true
		for j, m := range c.Messages {
			if m.ID == "" {
				result = multierror.Append(result, fmt.Errorf("chat %q: message %d has no id", c.ID, j))
			}
			if m.Sender != model.SenderUser && m.Sender != model.SenderAI {
				result = multierror.Append(result, fmt.Errorf("chat %q: message %d has unknown sender %q", c.ID, j, m.Sender))
			}
		}
	}

	for i, a := range b.CustomAvatars {
		switch {
		case a.ID == "" || a.Name == "":
			result = multierror.Append(result, fmt.Errorf("avatar %d needs an id and a name", i))
		case catalog.IsPredefined(a.ID):
			result = multierror.Append(result, fmt.Errorf("avatar %q collides with a predefined avatar", a.ID))
		}
	}
	return result.ErrorOrNil()
}
