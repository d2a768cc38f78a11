package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uf-ai/backend/internal/model"
)

// newTestRedis connects to REDIS_TEST_ADDR and skips when no server is configured.
func newTestRedis(t *testing.T) (Repository, string) {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR is not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		t.Skipf("redis at %s is not reachable: %v", addr, err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	uid := "test-" + uuid.NewString()
	repo := NewRedisRepository(rdb)
	t.Cleanup(func() {
		_ = repo.DeleteSessions(context.Background(), uid)
		_ = repo.DeleteAvatars(context.Background(), uid)
	})
	return repo, uid
}

func TestRedisRepository_Sessions(t *testing.T) {
	repo, uid := newTestRedis(t)
	ctx := context.Background()
	now := time.Now()
	oldID, newID := "chat-"+uuid.NewString(), "chat-"+uuid.NewString()

	require.NoError(t, repo.SaveSession(ctx, uid, &model.ChatSession{ID: oldID, Timestamp: now.Add(-time.Minute)}))
	require.NoError(t, repo.SaveSession(ctx, uid, &model.ChatSession{ID: newID, Timestamp: now}))
	require.NoError(t, repo.SaveSession(ctx, uid, &model.ChatSession{ID: oldID, Title: "Renamed", Timestamp: now.Add(-time.Minute)}))

	sessions, err := repo.ListSessions(ctx, uid)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newID, sessions[0].ID)
	assert.Equal(t, "Renamed", sessions[1].Title)

	require.NoError(t, repo.DeleteSession(ctx, uid, newID))
	sessions, err = repo.ListSessions(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	require.NoError(t, repo.DeleteSessions(ctx, uid))
	sessions, err = repo.ListSessions(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisRepository_ProfileAndAvatars(t *testing.T) {
	repo, uid := newTestRedis(t)
	ctx := context.Background()

	_, err := repo.GetProfile(ctx, uid)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.SaveProfile(ctx, &model.User{UID: uid, Name: "Ada", Plan: model.PlanPro}))
	u, err := repo.GetProfile(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, model.PlanPro, u.Plan)

	firstID, secondID := "custom-"+uuid.NewString(), "custom-"+uuid.NewString()
	require.NoError(t, repo.SaveAvatar(ctx, uid, &model.Avatar{ID: firstID, Name: "Ada"}))
	require.NoError(t, repo.SaveAvatar(ctx, uid, &model.Avatar{ID: secondID, Name: "Alan"}))
	require.NoError(t, repo.SaveAvatar(ctx, uid, &model.Avatar{ID: firstID, Name: "Ada L."}))

	avatars, err := repo.ListAvatars(ctx, uid)
	require.NoError(t, err)
	require.Len(t, avatars, 2)
	assert.Equal(t, "Ada L.", avatars[0].Name)
	assert.True(t, avatars[0].Custom)
	assert.Equal(t, secondID, avatars[1].ID)

	require.NoError(t, repo.DeleteAvatars(ctx, uid))
	avatars, err = repo.ListAvatars(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, avatars)
}
