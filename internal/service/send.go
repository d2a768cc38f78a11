package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/llm"
	"uf-ai/backend/internal/media"
	"uf-ai/backend/internal/model"
)

const (
	imageOnlyTitle  = "Image Analysis"
	streamErrorText = "Sorry, I ran into a problem while generating a response. Please try again."
)

// TurnStatus is the outcome of a submitted turn.
type TurnStatus string

const (
	TurnCompleted TurnStatus = "completed"
	TurnBlocked   TurnStatus = "blocked"
	TurnFailed    TurnStatus = "error"
)

// SendMessageRequest is a user submission. OnEvent, when set, observes every
// state change of this turn in order, before broker subscribers do.
type SendMessageRequest struct {
	Text       string
	Attachment *media.Attachment
	OnEvent    func(model.StreamEvent)
}

// TurnResult reports what a submission did. A blocked turn carries the draft
// back so the caller can restore it.
type TurnResult struct {
	Status    TurnStatus          `json:"status"`
	SessionID string              `json:"sessionId,omitempty"`
	Draft     string              `json:"draft,omitempty"`
	Messages  []model.ChatMessage `json:"messages,omitempty"`
}

// turn is what a submission captures at dispatch. Every later write targets
// sessionID, whatever session is active by then.
type turn struct {
	sessionID string
	uid       string
	model     model.AIModel
	onEvent   func(model.StreamEvent)
}

// SendMessage runs one text turn: quota check, dispatch, streaming into the
// placeholder, commit and enrichment scheduling.
func (s *ChatService) SendMessage(ctx context.Context, req SendMessageRequest) (*TurnResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && req.Attachment == nil {
		return nil, fmt.Errorf("%w: message is empty", apperrors.ErrValidation)
	}
	if req.Attachment == nil && IsImageRequest(text) {
		return s.GenerateImage(ctx, GenerateImageRequest{Prompt: text, OnEvent: req.OnEvent})
	}

	t, blocked, err := s.beginTurn(ctx, true, req.OnEvent)
	if err != nil {
		return nil, err
	}
	if blocked {
		slog.Info("Message blocked by free plan quota", "session_id", t.sessionID, "limit", s.opts.FreeMessageLimit)
		return &TurnResult{Status: TurnBlocked, SessionID: t.sessionID, Draft: req.Text}, nil
	}
	defer s.endTurn(t)

	// A dispatched turn runs to completion and is persisted even if the caller goes away.
	return s.runTextTurn(context.WithoutCancel(ctx), t, text, req.Attachment)
}

// Regenerate resends the last user message of the active session, image
// included. It is an ordinary turn and consumes quota like one.
func (s *ChatService) Regenerate(ctx context.Context, onEvent func(model.StreamEvent)) (*TurnResult, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	sess, _ := s.sessions.Get(s.activeID)
	s.mu.Unlock()

	last, _, ok := lo.FindLastIndexOf(sess.Messages, func(m model.ChatMessage) bool { return m.Sender == model.SenderUser })
	if !ok {
		return nil, fmt.Errorf("no user message to regenerate: %w", apperrors.ErrNotFound)
	}
	req := SendMessageRequest{Text: last.Text, OnEvent: onEvent}
	if img, ok := media.ParseDataURI(last.ImageURL); ok {
		req.Attachment = &media.Attachment{Data: img.Data}
	}
	return s.SendMessage(ctx, req)
}

// beginTurn validates the guards and marks the target session busy. A blocked
// turn leaves no trace.
func (s *ChatService) beginTurn(ctx context.Context, checkQuota bool, onEvent func(model.StreamEvent)) (*turn, bool, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, false, apperrors.ErrUnauthenticated
	}
	var created string
	if !s.sessions.Has(s.activeID) {
		created = s.createSessionLocked(nil).ID
	}
	sess, _ := s.sessions.Get(s.activeID)
	t := &turn{sessionID: sess.ID, uid: s.user.UID, model: sess.Model, onEvent: onEvent}

	if s.inFlight[t.sessionID] {
		s.mu.Unlock()
		return nil, false, fmt.Errorf("session %q: %w", t.sessionID, apperrors.ErrBusy)
	}
	if checkQuota && s.user.Plan == model.PlanFree && s.user.MessageCount >= s.opts.FreeMessageLimit {
		s.mu.Unlock()
		if created != "" {
			s.persistSession(ctx, t.uid, created)
		}
		return t, true, nil
	}
	s.inFlight[t.sessionID] = true
	s.mu.Unlock()

	if created != "" {
		s.persistSession(ctx, t.uid, created)
	}
	return t, false, nil
}

// endTurn is the cleanup every dispatched turn runs, whatever happened.
func (s *ChatService) endTurn(t *turn) {
	s.mu.Lock()
	delete(s.inFlight, t.sessionID)
	delete(s.loading, t.sessionID)
	s.mu.Unlock()
	s.publish(model.StreamEvent{Type: model.EventLoading, SessionID: t.sessionID}, t.onEvent)
}

func (s *ChatService) runTextTurn(ctx context.Context, t *turn, text string, att *media.Attachment) (*TurnResult, error) {
	capability := s.providers.Resolve(t.model.ID)
	var imageURL string
	var inline *media.InlineImage
	if att != nil {
		s.setLoading(t.sessionID, model.LoadingAnalyzing, t.onEvent)
		uri, err := media.EncodeAttachment(*att)
		if err == nil && !capability.SupportsImages {
			err = errImagesUnsupported
		}
		if err != nil {
			slog.Warn("Failed to process attachment", "session_id", t.sessionID, "filename", att.Filename, "error", err)
			ai := model.NewAIMessage(t.model)
			ai.IsError = true
			ai.Text = attachmentErrorText(err)
			return s.finalize(ctx, t, model.NewUserMessage(text, ""), ai, false), nil
		}
		imageURL = uri
		inline, _ = media.ParseDataURI(uri)
	}

	user := model.NewUserMessage(text, imageURL)
	ai := model.NewAIMessage(t.model)

	s.mu.Lock()
	if s.user == nil || s.user.UID != t.uid {
		s.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	if s.activeID == t.sessionID {
		s.working.Append(user, ai)
	}
	if s.user.Plan == model.PlanFree {
		next := *s.user
		next.MessageCount++
		s.user = &next
	}
	sess, _ := s.sessions.Get(t.sessionID)
	sc := llm.StreamContext{
		AvatarID:      sess.AvatarID,
		CustomPersona: s.customPersonaLocked(sess.AvatarID),
		PriorTurns:    sess.Messages,
		User:          *s.user,
		AttachedImage: inline,
	}
	s.mu.Unlock()

	s.persistProfile(ctx)
	s.publish(model.StreamEvent{Type: model.EventMessageUpdated, SessionID: t.sessionID, Message: &user}, t.onEvent)
	s.publish(model.StreamEvent{Type: model.EventMessageUpdated, SessionID: t.sessionID, Message: lo.ToPtr(ai.Clone())}, t.onEvent)
	s.setLoading(t.sessionID, model.LoadingGenerating, t.onEvent)

	req := llm.BuildStreamRequest(text, t.model, sc)
	req.WebAccess = req.WebAccess && capability.SupportsSearch
	slog.Debug("Opening response stream", "session_id", t.sessionID, "model", t.model.ID, "provider", capability.Kind)

	for chunk, err := range capability.Responder.StreamRespond(ctx, req) {
		if err != nil {
			slog.Error("Response stream failed", "session_id", t.sessionID, "model", t.model.ID, "error", err)
			ai.IsError = true
			ai.Text = streamErrorText
			s.applyToPlaceholder(t, ai.ID, func(m *model.ChatMessage) {
				m.IsError = true
				m.Text = streamErrorText
			}, ai)
			break
		}
		ai.AppendChunk(chunk.Text, chunk.Sources)
		s.applyToPlaceholder(t, ai.ID, func(m *model.ChatMessage) { m.AppendChunk(chunk.Text, chunk.Sources) }, ai)
	}

	return s.finalize(ctx, t, user, ai, true), nil
}

// applyToPlaceholder updates the open message in the working list by id and
// publishes its accumulated state.
func (s *ChatService) applyToPlaceholder(t *turn, id string, fn func(*model.ChatMessage), current model.ChatMessage) {
	s.mu.Lock()
	if s.activeID == t.sessionID {
		s.working.Update(id, fn)
	}
	s.mu.Unlock()
	msg := current.Clone()
	s.publish(model.StreamEvent{Type: model.EventMessageUpdated, SessionID: t.sessionID, Message: &msg}, t.onEvent)
}

// finalize commits the turn into its captured session and schedules enrichment.
func (s *ChatService) finalize(ctx context.Context, t *turn, user, ai model.ChatMessage, enrich bool) *TurnResult {
	status := TurnCompleted
	if ai.IsError {
		status = TurnFailed
	}
	result := &TurnResult{Status: status, SessionID: t.sessionID, Messages: model.CloneMessages([]model.ChatMessage{user, ai})}

	s.mu.Lock()
	if !s.sessions.Commit(t.sessionID, user, ai) {
		s.mu.Unlock()
		slog.Info("Session no longer exists, dropping finished turn", "session_id", t.sessionID)
		return result
	}
	if s.activeID == t.sessionID {
		s.reconcileWorkingLocked(user, ai)
	}
	sess, _ := s.sessions.Get(t.sessionID)
	var provisional string
	if enrich && !ai.IsError && sess.AvatarID == "" && sess.CompletedExchanges() == 1 {
		provisional = provisionalTitle(user, s.opts.TitleMaxRunes)
		s.sessions.SetTitle(t.sessionID, provisional)
	}
	updateMemory := enrich && !ai.IsError && s.user != nil && s.user.UID == t.uid && s.user.UseChatMemory
	s.mu.Unlock()

	committed := ai.Clone()
	s.publish(model.StreamEvent{Type: model.EventTurnCommitted, SessionID: t.sessionID, Message: &committed}, t.onEvent)
	if provisional != "" {
		s.publish(model.StreamEvent{Type: model.EventTitleChanged, SessionID: t.sessionID, Title: provisional}, t.onEvent)
	}
	s.persistSession(ctx, t.uid, t.sessionID)

	if provisional != "" {
		s.scheduleTitle(t.uid, t.sessionID, provisional, sess.Messages)
	}
	if updateMemory {
		s.scheduleKnowledgeUpdate(t.uid, t.sessionID)
	}
	return result
}

// reconcileWorkingLocked makes the working list agree with committed messages.
func (s *ChatService) reconcileWorkingLocked(msgs ...model.ChatMessage) {
	for _, m := range msgs {
		m := m.Clone()
		if _, ok := s.working.Update(m.ID, func(w *model.ChatMessage) { *w = m }); !ok {
			s.working.Append(m)
		}
	}
}

func provisionalTitle(user model.ChatMessage, maxRunes int) string {
	text := strings.TrimSpace(user.Text)
	if text == "" {
		return imageOnlyTitle
	}
	return llm.Truncate(text, maxRunes)
}

var errImagesUnsupported = errors.New("model does not accept images")

func attachmentErrorText(err error) string {
	switch {
	case errors.Is(err, errImagesUnsupported):
		return "Sorry, the selected model can't read images. Switch to a model that supports images and try again."
	case errors.Is(err, media.ErrUnsupportedFormat):
		return "Sorry, that file type isn't supported. Please attach a PNG, JPEG, WebP or GIF image."
	case errors.Is(err, media.ErrTooLarge):
		return "Sorry, that image is too large to process."
	default:
		return "Sorry, I couldn't process the attached file."
	}
}
