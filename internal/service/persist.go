package service

import (
	"context"
	"log/slog"
)

// Repository writes are best-effort: they run after the in-memory state has
// changed, read the latest snapshot, and only log failures.

func (s *ChatService) persistSession(ctx context.Context, uid, sessionID string) {
	if s.repo == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if s.user == nil || s.user.UID != uid {
		s.mu.Unlock()
		return
	}
	sess, ok := s.sessions.Get(sessionID)
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := s.repo.SaveSession(ctx, uid, &sess); err != nil {
		slog.Warn("Failed to persist session", "session_id", sessionID, "error", err)
	}
}

func (s *ChatService) persistProfile(ctx context.Context) {
	if s.repo == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	user := *s.user
	s.mu.Unlock()

	if err := s.repo.SaveProfile(ctx, &user); err != nil {
		slog.Warn("Failed to persist profile", "uid", user.UID, "error", err)
	}
}

func (s *ChatService) persistAvatar(ctx context.Context, uid, avatarID string) {
	if s.repo == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if s.user == nil || s.user.UID != uid {
		s.mu.Unlock()
		return
	}
	avatar, ok := s.findAvatarLocked(avatarID)
	s.mu.Unlock()
	if !ok || !avatar.Custom {
		return
	}
	if err := s.repo.SaveAvatar(ctx, uid, &avatar); err != nil {
		slog.Warn("Failed to persist avatar", "avatar_id", avatarID, "error", err)
	}
}

func (s *ChatService) unpersistSession(ctx context.Context, uid, sessionID string) {
	if s.repo == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if err := s.repo.DeleteSession(ctx, uid, sessionID); err != nil {
		slog.Warn("Failed to delete persisted session", "session_id", sessionID, "error", err)
	}
}

func (s *ChatService) unpersistAllSessions(ctx context.Context, uid string) {
	if s.repo == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if err := s.repo.DeleteSessions(ctx, uid); err != nil {
		slog.Warn("Failed to delete persisted sessions", "uid", uid, "error", err)
	}
}

func (s *ChatService) unpersistAllAvatars(ctx context.Context, uid string) {
	if s.repo == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if err := s.repo.DeleteAvatars(ctx, uid); err != nil {
		slog.Warn("Failed to delete persisted avatars", "uid", uid, "error", err)
	}
}
