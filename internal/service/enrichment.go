package service

import (
	"context"
	"log/slog"
	"strings"

	"uf-ai/backend/internal/model"
)

// Background enrichment runs after a turn has been committed. Failures are
// logged and never surface to the user.

// scheduleTitle asks the assistant for a better title. The result is applied
// only if the session still carries the provisional title set at commit.
func (s *ChatService) scheduleTitle(uid, sessionID, provisional string, transcript []model.ChatMessage) {
	transcript = model.CloneMessages(transcript)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.BackgroundTaskTimeout)
		defer cancel()

		title, err := s.assistant.GenerateTitle(ctx, transcript)
		if err != nil {
			slog.Warn("Failed to generate session title", "session_id", sessionID, "error", err)
			return
		}
		title = strings.TrimSpace(title)
		if title == "" || title == provisional {
			return
		}

		s.mu.Lock()
		if s.user == nil || s.user.UID != uid {
			s.mu.Unlock()
			return
		}
		sess, ok := s.sessions.Get(sessionID)
		if !ok || sess.Title != provisional {
			s.mu.Unlock()
			slog.Debug("Session title changed meanwhile, keeping it", "session_id", sessionID)
			return
		}
		s.sessions.SetTitle(sessionID, title)
		s.mu.Unlock()

		slog.Info("Generated session title", "session_id", sessionID, "title", title)
		s.publish(model.StreamEvent{Type: model.EventTitleChanged, SessionID: sessionID, Title: title}, nil)
		s.persistSession(ctx, uid, sessionID)
	}()
}

// scheduleKnowledgeUpdate folds the session transcript into the user's
// knowledge base. Concurrent updates resolve last write wins.
func (s *ChatService) scheduleKnowledgeUpdate(uid, sessionID string) {
	s.mu.Lock()
	if s.user == nil || s.user.UID != uid {
		s.mu.Unlock()
		return
	}
	kb := s.user.KnowledgeBase
	sess, ok := s.sessions.Get(sessionID)
	s.mu.Unlock()
	if !ok {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.BackgroundTaskTimeout)
		defer cancel()

		updated, err := s.assistant.UpdateKnowledgeBase(ctx, kb, sess.Messages)
		if err != nil {
			slog.Warn("Failed to update knowledge base", "session_id", sessionID, "error", err)
			return
		}
		if updated == kb {
			return
		}

		s.mu.Lock()
		if s.user == nil || s.user.UID != uid || !s.user.UseChatMemory {
			s.mu.Unlock()
			return
		}
		next := s.user.Apply(model.ProfileUpdate{KnowledgeBase: &updated})
		s.user = &next
		s.mu.Unlock()

		slog.Info("Updated knowledge base", "uid", uid, "session_id", sessionID)
		s.publish(model.StreamEvent{Type: model.EventProfileChanged}, nil)
		s.persistProfile(ctx)
	}()
}
