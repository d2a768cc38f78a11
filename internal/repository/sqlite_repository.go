package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"uf-ai/backend/internal/model"
)

const (
	upsertProfileQuery = `INSERT INTO profiles (uid, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	selectProfileQuery = "SELECT data FROM profiles WHERE uid = ?"

	upsertSessionQuery = `INSERT INTO sessions (id, user_id, title, model, avatar_id, intro_message, messages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, model = excluded.model,
			avatar_id = excluded.avatar_id, intro_message = excluded.intro_message,
			messages = excluded.messages, updated_at = excluded.updated_at`
	selectSessionsQuery = `SELECT id, title, model, avatar_id, intro_message, messages, created_at
		FROM sessions WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	deleteSessionQuery  = "DELETE FROM sessions WHERE user_id = ? AND id = ?"
	deleteSessionsQuery = "DELETE FROM sessions WHERE user_id = ?"

	upsertAvatarQuery = `INSERT INTO avatars (id, user_id, name, image_url, system_prompt, greeting, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, image_url = excluded.image_url,
			system_prompt = excluded.system_prompt, greeting = excluded.greeting`
	selectAvatarsQuery = `SELECT id, name, image_url, system_prompt, greeting
		FROM avatars WHERE user_id = ? ORDER BY created_at ASC, id ASC`
	deleteAvatarsQuery = "DELETE FROM avatars WHERE user_id = ?"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveProfile(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("could not encode profile: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, upsertProfileQuery, user.UID, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("could not save profile: %w", err)
	}
	return nil
}

func (r *sqliteRepository) GetProfile(ctx context.Context, uid string) (*model.User, error) {
	var data string
	err := r.db.QueryRowContext(ctx, selectProfileQuery, uid).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not load profile: %w", err)
	}
	var user model.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("could not decode profile: %w", err)
	}
	return &user, nil
}

func (r *sqliteRepository) SaveSession(ctx context.Context, uid string, s *model.ChatSession) error {
	mdl, err := json.Marshal(s.Model)
	if err != nil {
		return fmt.Errorf("could not encode session model: %w", err)
	}
	msgs, err := json.Marshal(s.Clone().Messages)
	if err != nil {
		return fmt.Errorf("could not encode messages: %w", err)
	}
	_, err = r.db.ExecContext(ctx, upsertSessionQuery,
		s.ID, uid, s.Title, string(mdl), s.AvatarID, s.IntroMessage, string(msgs),
		s.Timestamp.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("could not save session: %w", err)
	}
	return nil
}

func (r *sqliteRepository) ListSessions(ctx context.Context, uid string) ([]model.ChatSession, error) {
	rows, err := r.db.QueryContext(ctx, selectSessionsQuery, uid)
	if err != nil {
		return nil, fmt.Errorf("could not query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []model.ChatSession{}
	for rows.Next() {
		var (
			s         model.ChatSession
			mdl, msgs string
			avatarID  sql.NullString
			introMsg  sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Title, &mdl, &avatarID, &introMsg, &msgs, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("could not scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(mdl), &s.Model); err != nil {
			return nil, fmt.Errorf("could not decode model of session %s: %w", s.ID, err)
		}
		if err := json.Unmarshal([]byte(msgs), &s.Messages); err != nil {
			return nil, fmt.Errorf("could not decode messages of session %s: %w", s.ID, err)
		}
		s.AvatarID = avatarID.String
		s.IntroMessage = introMsg.String
		sessions = append(sessions, s.Clone())
	}
	return sessions, rows.Err()
}

func (r *sqliteRepository) DeleteSession(ctx context.Context, uid, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionQuery, uid, sessionID); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}
	return nil
}

func (r *sqliteRepository) DeleteSessions(ctx context.Context, uid string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionsQuery, uid); err != nil {
		return fmt.Errorf("could not delete sessions: %w", err)
	}
	return nil
}

func (r *sqliteRepository) SaveAvatar(ctx context.Context, uid string, a *model.Avatar) error {
	_, err := r.db.ExecContext(ctx, upsertAvatarQuery,
		a.ID, uid, a.Name, a.ImageURL, a.SystemPrompt, a.Greeting, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("could not save avatar: %w", err)
	}
	return nil
}

func (r *sqliteRepository) ListAvatars(ctx context.Context, uid string) ([]model.Avatar, error) {
	rows, err := r.db.QueryContext(ctx, selectAvatarsQuery, uid)
	if err != nil {
		return nil, fmt.Errorf("could not query avatars: %w", err)
	}
	defer rows.Close()

	avatars := []model.Avatar{}
	for rows.Next() {
		a := model.Avatar{Custom: true}
		if err := rows.Scan(&a.ID, &a.Name, &a.ImageURL, &a.SystemPrompt, &a.Greeting); err != nil {
			return nil, fmt.Errorf("could not scan avatar: %w", err)
		}
		avatars = append(avatars, a)
	}
	return avatars, rows.Err()
}

func (r *sqliteRepository) DeleteAvatars(ctx context.Context, uid string) error {
	if _, err := r.db.ExecContext(ctx, deleteAvatarsQuery, uid); err != nil {
		return fmt.Errorf("could not delete avatars: %w", err)
	}
	return nil
}
