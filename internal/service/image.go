package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/samber/lo"

	"uf-ai/backend/internal/catalog"
	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/media"
	"uf-ai/backend/internal/model"
)

const imageErrorText = "Sorry, I couldn't generate that image. Please try again."

// GenerateImageRequest asks for a picture in the active session.
type GenerateImageRequest struct {
	Prompt  string
	OnEvent func(model.StreamEvent)
}

// GenerateImage refines the prompt against recent turns, generates an image and
// commits the user message plus the result directly. It never touches the quota.
func (s *ChatService) GenerateImage(ctx context.Context, req GenerateImageRequest) (*TurnResult, error) {
	raw := strings.TrimSpace(req.Prompt)
	if raw == "" {
		return nil, fmt.Errorf("%w: prompt is empty", apperrors.ErrValidation)
	}
	t, _, err := s.beginTurn(ctx, false, req.OnEvent)
	if err != nil {
		return nil, err
	}
	defer s.endTurn(t)
	ctx = context.WithoutCancel(ctx)

	user := model.NewUserMessage(raw, "")
	s.mu.Lock()
	sess, _ := s.sessions.Get(t.sessionID)
	if s.activeID == t.sessionID {
		s.working.Append(user)
	}
	s.mu.Unlock()
	recent := lastTurns(sess.Messages, s.opts.ImageContextTurns)

	cleaned := CleanImagePrompt(raw)
	if cleaned == "" {
		cleaned = raw
	}
	s.publish(model.StreamEvent{Type: model.EventMessageUpdated, SessionID: t.sessionID, Message: &user}, t.onEvent)
	s.setLoading(t.sessionID, model.LoadingImagining, t.onEvent)

	res := s.assistant.GenerateImageFromContext(ctx, cleaned, recent)
	final := res.FinalPrompt
	if strings.TrimSpace(final) == "" {
		final = cleaned
	}

	ai := model.NewAIMessage(t.model)
	if res.Err != nil || res.ImageURL == "" {
		slog.Warn("Image generation failed", "session_id", t.sessionID, "error", res.Err)
		ai.IsError = true
		ai.Text = imageErrorText
	} else {
		ai.ImageURL = res.ImageURL
		ai.Text = `Here is the image you requested: "` + final + `"`
	}
	return s.finalize(ctx, t, user, ai, false), nil
}

// lastTurns returns the last n user/AI pairs worth of committed messages.
func lastTurns(msgs []model.ChatMessage, n int) []model.ChatMessage {
	msgs = lo.Filter(msgs, func(m model.ChatMessage, _ int) bool { return !m.IsError })
	if n <= 0 || len(msgs) == 0 {
		return nil
	}
	if k := n * 2; len(msgs) > k {
		msgs = msgs[len(msgs)-k:]
	}
	return model.CloneMessages(msgs)
}

// ListAvatars returns the predefined avatars followed by the user's custom ones.
func (s *ChatService) ListAvatars() []model.Avatar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(catalog.Avatars(), s.customAvatars...)
}

// CreateCustomAvatar researches a persona for name, renders a portrait and
// opens a chat with the new avatar. A failed research step fails the call; a
// failed portrait falls back to an initials placeholder.
func (s *ChatService) CreateCustomAvatar(ctx context.Context, name string) (*model.Avatar, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: avatar name cannot be empty", apperrors.ErrValidation)
	}
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	uid := s.user.UID
	s.mu.Unlock()

	researching := model.LoadingResearching
	s.publish(model.StreamEvent{Type: model.EventLoading, Loading: &researching}, nil)
	defer s.publish(model.StreamEvent{Type: model.EventLoading}, nil)

	persona, err := s.assistant.ResearchPersona(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not create avatar %q: %w", name, err)
	}

	portrait, err := s.assistant.GeneratePortrait(ctx, name)
	if err != nil || portrait == "" {
		slog.Warn("Portrait generation failed, using initials", "name", name, "error", err)
		portrait = media.InitialsPortrait(name)
	}

	avatar := model.Avatar{
		ID:           model.NewAvatarID(),
		Name:         name,
		ImageURL:     portrait,
		SystemPrompt: persona.SystemPrompt,
		Greeting:     persona.Greeting,
		Custom:       true,
	}

	s.mu.Lock()
	if s.user == nil || s.user.UID != uid {
		s.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	s.customAvatars = append(s.customAvatars, avatar)
	sess := s.createSessionLocked(&avatar)
	s.mu.Unlock()

	slog.Info("Created custom avatar", "avatar_id", avatar.ID, "name", name)
	s.persistAvatar(ctx, uid, avatar.ID)
	s.persistSession(ctx, uid, sess.ID)
	return &avatar, nil
}

// AvatarUpdate edits a custom avatar. Nil fields are left untouched.
type AvatarUpdate struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	SystemPrompt *string `json:"systemPrompt,omitempty"`
	Greeting     *string `json:"greeting,omitempty"`
}

// UpdateCustomAvatar edits a custom avatar. Predefined avatars are immutable.
func (s *ChatService) UpdateCustomAvatar(ctx context.Context, id string, upd AvatarUpdate) (*model.Avatar, error) {
	if catalog.IsPredefined(id) {
		return nil, fmt.Errorf("avatar %q is predefined: %w", id, apperrors.ErrPermission)
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: avatar name cannot be empty", apperrors.ErrValidation)
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	i := slices.IndexFunc(s.customAvatars, func(a model.Avatar) bool { return a.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("avatar %q: %w", id, apperrors.ErrNotFound)
	}
	a := &s.customAvatars[i]
	if upd.Name != nil {
		a.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.ImageURL != nil {
		a.ImageURL = *upd.ImageURL
	}
	if upd.SystemPrompt != nil {
		a.SystemPrompt = *upd.SystemPrompt
	}
	if upd.Greeting != nil {
		a.Greeting = *upd.Greeting
	}
	updated := *a
	uid := s.user.UID
	s.mu.Unlock()

	s.persistAvatar(ctx, uid, id)
	return &updated, nil
}
