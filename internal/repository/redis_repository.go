package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"uf-ai/backend/internal/model"
)

type redisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) Repository {
	return &redisRepository{rdb: rdb}
}

// Key Generation Helpers
func profileKey(uid string) string      { return fmt.Sprintf("profile:%s", uid) }
func sessionKey(id string) string       { return fmt.Sprintf("session:%s", id) }
func avatarKey(id string) string        { return fmt.Sprintf("avatar:%s", id) }
func userSessionsKey(uid string) string { return fmt.Sprintf("user:%s:sessions", uid) }
func userAvatarsKey(uid string) string  { return fmt.Sprintf("user:%s:avatars", uid) }

// sessionScore orders the per-user sorted set newest first.
func sessionScore(s *model.ChatSession) float64 {
	return float64(-s.Timestamp.UnixNano())
}

// --- Profile Operations ---
func (r *redisRepository) SaveProfile(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("could not encode profile: %w", err)
	}
	return r.rdb.Set(ctx, profileKey(user.UID), data, 0).Err()
}

func (r *redisRepository) GetProfile(ctx context.Context, uid string) (*model.User, error) {
	data, err := r.rdb.Get(ctx, profileKey(uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("could not decode profile: %w", err)
	}
	return &user, nil
}

// --- Session Operations ---
func (r *redisRepository) SaveSession(ctx context.Context, uid string, s *model.ChatSession) error {
	cp := s.Clone()
	data, err := json.Marshal(&cp)
	if err != nil {
		return fmt.Errorf("could not encode session: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, sessionKey(s.ID), "user_id", uid, "data", data, "updated_at", time.Now().UTC().Format(time.RFC3339Nano))
	pipe.ZAdd(ctx, userSessionsKey(uid), redis.Z{Score: sessionScore(s), Member: s.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) ListSessions(ctx context.Context, uid string) ([]model.ChatSession, error) {
	ids, err := r.rdb.ZRange(ctx, userSessionsKey(uid), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.ChatSession{}, nil
		}
		return nil, err
	}
	sessions := make([]model.ChatSession, 0, len(ids))
	for _, id := range ids {
		data, err := r.rdb.HGet(ctx, sessionKey(id), "data").Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("could not load session %s: %w", id, err)
		}
		var s model.ChatSession
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("could not decode session %s: %w", id, err)
		}
		sessions = append(sessions, s.Clone())
	}
	return sessions, nil
}

func (r *redisRepository) DeleteSession(ctx context.Context, uid, sessionID string) error {
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.ZRem(ctx, userSessionsKey(uid), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute session deletion pipeline: %w", err)
	}
	return nil
}

func (r *redisRepository) DeleteSessions(ctx context.Context, uid string) error {
	ids, err := r.rdb.ZRange(ctx, userSessionsKey(uid), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("could not get session IDs for deletion: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userSessionsKey(uid))
	return r.rdb.Del(ctx, keys...).Err()
}

// --- Avatar Operations ---
func (r *redisRepository) SaveAvatar(ctx context.Context, uid string, a *model.Avatar) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("could not encode avatar: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, avatarKey(a.ID), data, 0)
	// NX keeps the original creation order when an avatar is edited.
	pipe.ZAddNX(ctx, userAvatarsKey(uid), redis.Z{Score: float64(time.Now().UnixNano()), Member: a.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) ListAvatars(ctx context.Context, uid string) ([]model.Avatar, error) {
	ids, err := r.rdb.ZRange(ctx, userAvatarsKey(uid), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	avatars := make([]model.Avatar, 0, len(ids))
	for _, id := range ids {
		data, err := r.rdb.Get(ctx, avatarKey(id)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("could not load avatar %s: %w", id, err)
		}
		var a model.Avatar
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("could not decode avatar %s: %w", id, err)
		}
		a.Custom = true
		avatars = append(avatars, a)
	}
	return avatars, nil
}

func (r *redisRepository) DeleteAvatars(ctx context.Context, uid string) error {
	ids, err := r.rdb.ZRange(ctx, userAvatarsKey(uid), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("could not get avatar IDs for deletion: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, avatarKey(id))
	}
	keys = append(keys, userAvatarsKey(uid))
	return r.rdb.Del(ctx, keys...).Err()
}
