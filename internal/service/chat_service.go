package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"uf-ai/backend/internal/catalog"
	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/events"
	"uf-ai/backend/internal/llm"
	"uf-ai/backend/internal/model"
	"uf-ai/backend/internal/profile"
	"uf-ai/backend/internal/repository"
	"uf-ai/backend/internal/session"
)

// Options are the tunables of the chat engine.
type Options struct {
	FreeMessageLimit      int
	BackgroundTaskTimeout time.Duration
	ImageContextTurns     int
	TitleMaxRunes         int
}

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

// ChatService is the application state container: signed-in user, session
// registry, working message list of the active session and the in-flight turns.
// All state is guarded by mu; provider calls run outside of it.
type ChatService struct {
	opts      Options
	repo      repository.Repository
	providers *llm.Registry
	assistant llm.Assistant
	profiles  *profile.Service
	broker    *events.Broker

	mu            sync.Mutex
	user          *model.User
	sessions      *session.Registry
	working       *session.MessageStore
	activeID      string
	currentModel  model.AIModel
	customAvatars []model.Avatar
	inFlight      map[string]bool
	loading       map[string]model.LoadingState

	// persistMu orders repository writes. It is always taken before mu.
	persistMu sync.Mutex
	wg        sync.WaitGroup
}

// NewChatService wires the engine. repo and broker may be nil.
func NewChatService(
	repo repository.Repository,
	providers *llm.Registry,
	assistant llm.Assistant,
	profiles *profile.Service,
	broker *events.Broker,
	opts Options,
) *ChatService {
	if opts.TitleMaxRunes <= 0 {
		opts.TitleMaxRunes = 30
	}
	if opts.BackgroundTaskTimeout <= 0 {
		opts.BackgroundTaskTimeout = time.Minute
	}
	return &ChatService{
		opts:         opts,
		repo:         repo,
		providers:    providers,
		assistant:    assistant,
		profiles:     profiles,
		broker:       broker,
		sessions:     session.NewRegistry(),
		working:      session.NewMessageStore(),
		currentModel: catalog.ModelOrDefault(catalog.DefaultModelID),
		inFlight:     make(map[string]bool),
		loading:      make(map[string]model.LoadingState),
	}
}

// Sessions lists all sessions, most recently created first.
func (s *ChatService) Sessions() ([]model.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.sessions.List(), nil
}

// ActiveSession returns the active session with its committed transcript.
func (s *ChatService) ActiveSession() (*model.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	sess, ok := s.sessions.Get(s.activeID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &sess, nil
}

// Messages returns the working list of the active session, including any
// message that is still streaming.
func (s *ChatService) Messages() ([]model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.working.Snapshot(), nil
}

// Loading reports the loading state of a session, if any.
func (s *ChatService) Loading(sessionID string) (model.LoadingState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.loading[sessionID]
	return st, ok
}

// CurrentModel is the model new turns in the active session use.
func (s *ChatService) CurrentModel() model.AIModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentModel
}

// SelectSession makes a session active. An unknown id is a silent no-op.
func (s *ChatService) SelectSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		slog.Debug("Ignoring selection of unknown session", "session_id", id)
		return
	}
	s.activateLocked(sess)
}

// NewSession creates a session, optionally bound to an avatar, and makes it active.
func (s *ChatService) NewSession(ctx context.Context, avatarID string) (*model.ChatSession, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	var avatar *model.Avatar
	if avatarID != "" {
		a, ok := s.findAvatarLocked(avatarID)
		if !ok {
			s.mu.Unlock()
			return nil, fmt.Errorf("avatar %q: %w", avatarID, apperrors.ErrNotFound)
		}
		avatar = &a
	}
	sess := s.createSessionLocked(avatar)
	uid := s.user.UID
	s.mu.Unlock()

	s.persistSession(ctx, uid, sess.ID)
	return &sess, nil
}

// DeleteSession removes a session after confirmation. Deleting the active
// session selects the most recently created remaining one, or a new blank one.
func (s *ChatService) DeleteSession(ctx context.Context, id string, confirm ConfirmFunc) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return apperrors.ErrUnauthenticated
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("session %q: %w", id, apperrors.ErrNotFound)
	}
	s.mu.Unlock()

	if confirm == nil || !confirm(fmt.Sprintf("Delete %q? This cannot be undone.", sess.Title)) {
		return apperrors.ErrConfirmationRequired
	}

	s.mu.Lock()
	if !s.sessions.Remove(id) {
		s.mu.Unlock()
		return fmt.Errorf("session %q: %w", id, apperrors.ErrNotFound)
	}
	delete(s.loading, id)
	var created *model.ChatSession
	if s.activeID == id {
		created = s.activateFallbackLocked()
	}
	uid := s.user.UID
	s.mu.Unlock()

	slog.Info("Deleted session", "session_id", id)
	s.publish(model.StreamEvent{Type: model.EventSessionsReset}, nil)
	s.unpersistSession(ctx, uid, id)
	if created != nil {
		s.persistSession(ctx, uid, created.ID)
	}
	return nil
}

// DeleteAllSessions removes every session after confirmation and starts a blank one.
func (s *ChatService) DeleteAllSessions(ctx context.Context, confirm ConfirmFunc) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return apperrors.ErrUnauthenticated
	}
	n := s.sessions.Len()
	s.mu.Unlock()

	if confirm == nil || !confirm(fmt.Sprintf("Delete all %d chats? This cannot be undone.", n)) {
		return apperrors.ErrConfirmationRequired
	}

	s.mu.Lock()
	s.sessions.Clear()
	clear(s.loading)
	created := s.createSessionLocked(nil)
	uid := s.user.UID
	s.mu.Unlock()

	slog.Info("Deleted all sessions", "count", n)
	s.publish(model.StreamEvent{Type: model.EventSessionsReset}, nil)
	s.unpersistAllSessions(ctx, uid)
	s.persistSession(ctx, uid, created.ID)
	return nil
}

// RenameSession sets a title by hand.
func (s *ChatService) RenameSession(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
	}
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return apperrors.ErrUnauthenticated
	}
	if !s.sessions.SetTitle(id, title) {
		s.mu.Unlock()
		return fmt.Errorf("session %q: %w", id, apperrors.ErrNotFound)
	}
	uid := s.user.UID
	s.mu.Unlock()

	s.publish(model.StreamEvent{Type: model.EventTitleChanged, SessionID: id, Title: title}, nil)
	s.persistSession(ctx, uid, id)
	return nil
}

// SelectModel switches the model of the active session and remembers it on the profile.
func (s *ChatService) SelectModel(ctx context.Context, modelID string) error {
	m, ok := catalog.FindModel(modelID)
	if !ok {
		return fmt.Errorf("model %q: %w", modelID, apperrors.ErrNotFound)
	}
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return apperrors.ErrUnauthenticated
	}
	s.currentModel = m
	s.sessions.SetModel(s.activeID, m)
	next := s.user.Apply(model.ProfileUpdate{SelectedModelID: &m.ID})
	s.user = &next
	uid, activeID := next.UID, s.activeID
	s.mu.Unlock()

	s.persistProfile(ctx)
	s.persistSession(ctx, uid, activeID)
	return nil
}

// ToggleFeedback toggles a reaction on a committed message of the active
// session and mirrors it into the working list. A message that is still
// streaming cannot be rated yet.
func (s *ChatService) ToggleFeedback(ctx context.Context, messageID string, f model.Feedback) (*model.ChatMessage, error) {
	if f != model.FeedbackLike && f != model.FeedbackDislike {
		return nil, fmt.Errorf("%w: unknown feedback %q", apperrors.ErrValidation, f)
	}
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	var updated model.ChatMessage
	committed := s.sessions.UpdateMessage(s.activeID, messageID, func(m *model.ChatMessage) {
		m.ApplyFeedback(f)
		updated = m.Clone()
	})
	if !committed {
		_, streaming := s.working.Get(messageID)
		s.mu.Unlock()
		if streaming {
			return nil, fmt.Errorf("message %q: %w", messageID, apperrors.ErrBusy)
		}
		return nil, fmt.Errorf("message %q: %w", messageID, apperrors.ErrNotFound)
	}
	s.working.Update(messageID, func(m *model.ChatMessage) { m.Liked = updated.Clone().Liked })
	uid, activeID := s.user.UID, s.activeID
	s.mu.Unlock()

	s.publish(model.StreamEvent{Type: model.EventMessageUpdated, SessionID: activeID, Message: &updated}, nil)
	s.persistSession(ctx, uid, activeID)
	return &updated, nil
}

// Wait blocks until every background task has finished.
func (s *ChatService) Wait() {
	s.wg.Wait()
}

// --- state helpers, callers hold mu ---

func (s *ChatService) activateLocked(sess model.ChatSession) {
	s.activeID = sess.ID
	s.working.Replace(sess.Messages)
	s.currentModel = sess.Model
	delete(s.loading, sess.ID)
}

func (s *ChatService) createSessionLocked(avatar *model.Avatar) model.ChatSession {
	sess := model.ChatSession{
		ID:        model.NewSessionID(),
		Title:     session.DefaultTitle,
		Model:     s.currentModel,
		Timestamp: time.Now(),
		Messages:  []model.ChatMessage{},
	}
	if avatar != nil {
		sess.AvatarID = avatar.ID
		sess.Title = "Chat with " + avatar.Name
		sess.IntroMessage = introFor(*avatar)
	}
	s.sessions.Prepend(sess)
	s.activateLocked(sess)
	return sess
}

// activateFallbackLocked selects the newest remaining session, creating a blank
// one if none remain. It returns the created session, if any.
func (s *ChatService) activateFallbackLocked() *model.ChatSession {
	if next, ok := s.sessions.MostRecent(); ok {
		s.activateLocked(next)
		return nil
	}
	created := s.createSessionLocked(nil)
	return &created
}

func (s *ChatService) findAvatarLocked(id string) (model.Avatar, bool) {
	if a, ok := lo.Find(s.customAvatars, func(a model.Avatar) bool { return a.ID == id }); ok {
		return a, true
	}
	return catalog.FindAvatar(id)
}

func (s *ChatService) customPersonaLocked(avatarID string) string {
	if avatarID == "" {
		return ""
	}
	a, _ := lo.Find(s.customAvatars, func(a model.Avatar) bool { return a.ID == avatarID })
	return a.SystemPrompt
}

func introFor(a model.Avatar) string {
	if a.Greeting != "" {
		return a.Greeting
	}
	if intro := catalog.Intro(a.ID); intro != "" {
		return intro
	}
	return catalog.DefaultIntro
}

func (s *ChatService) setLoading(sessionID string, st model.LoadingState, onEvent func(model.StreamEvent)) {
	s.mu.Lock()
	s.loading[sessionID] = st
	s.mu.Unlock()
	s.publish(model.StreamEvent{Type: model.EventLoading, SessionID: sessionID, Loading: &st}, onEvent)
}

// publish notifies the per-call observer first, then every broker subscriber.
func (s *ChatService) publish(evt model.StreamEvent, onEvent func(model.StreamEvent)) {
	if onEvent != nil {
		onEvent(evt)
	}
	if s.broker != nil {
		s.broker.Publish(evt)
	}
}
