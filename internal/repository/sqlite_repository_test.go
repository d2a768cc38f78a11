package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uf-ai/backend/internal/model"
)

func setupSQLite(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mockDB
}

func TestSQLiteRepository_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mockDB := setupSQLite(t)
		rows := sqlmock.NewRows([]string{"data"}).AddRow(`{"uid":"mock-uid-ada","name":"Ada","plan":"Pro"}`)
		mockDB.ExpectQuery(regexp.QuoteMeta(selectProfileQuery)).WithArgs("mock-uid-ada").WillReturnRows(rows)

		user, err := repo.GetProfile(ctx, "mock-uid-ada")

		require.NoError(t, err)
		assert.Equal(t, "Ada", user.Name)
		assert.Equal(t, model.PlanPro, user.Plan)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mockDB := setupSQLite(t)
		mockDB.ExpectQuery(regexp.QuoteMeta(selectProfileQuery)).WithArgs("nobody").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetProfile(ctx, "nobody")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSQLiteRepository_SaveSession(t *testing.T) {
	repo, mockDB := setupSQLite(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := &model.ChatSession{
		ID:        "chat-1",
		Title:     "New Chat",
		Model:     model.AIModel{ID: "gpt-4o", Name: "GPT-4o"},
		Timestamp: created,
	}

	mockDB.ExpectExec(regexp.QuoteMeta(upsertSessionQuery)).
		WithArgs("chat-1", "uid-1", "New Chat", sqlmock.AnyArg(), "", "", "[]", created, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveSession(context.Background(), "uid-1", s)

	require.NoError(t, err)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestSQLiteRepository_ListSessions(t *testing.T) {
	repo, mockDB := setupSQLite(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "title", "model", "avatar_id", "intro_message", "messages", "created_at"}).
		AddRow("chat-2", "Trip", `{"id":"gpt-4o","name":"GPT-4o"}`, nil, nil, `[{"id":"m1","sender":"user","text":"hi","liked":null,"timestamp":"2024-05-01T10:00:00Z"}]`, created).
		AddRow("chat-1", "Einstein", `{"id":"gemini-2.5-flash"}`, "einstein", "Curious?", `[]`, created.Add(-time.Hour))
	mockDB.ExpectQuery(regexp.QuoteMeta(selectSessionsQuery)).WithArgs("uid-1").WillReturnRows(rows)

	sessions, err := repo.ListSessions(context.Background(), "uid-1")

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "chat-2", sessions[0].ID)
	require.Len(t, sessions[0].Messages, 1)
	assert.Equal(t, "hi", sessions[0].Messages[0].Text)
	assert.Equal(t, "einstein", sessions[1].AvatarID)
	assert.NotNil(t, sessions[1].Messages)
}

func TestSQLiteRepository_DeleteAndAvatars(t *testing.T) {
	repo, mockDB := setupSQLite(t)
	ctx := context.Background()

	mockDB.ExpectExec(regexp.QuoteMeta(deleteSessionQuery)).WithArgs("uid-1", "chat-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectExec(regexp.QuoteMeta(deleteSessionsQuery)).WithArgs("uid-1").WillReturnResult(sqlmock.NewResult(0, 3))
	mockDB.ExpectExec(regexp.QuoteMeta(upsertAvatarQuery)).
		WithArgs("custom-1", "uid-1", "Ada", "data:x", "You are Ada.", "Hello", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectQuery(regexp.QuoteMeta(selectAvatarsQuery)).WithArgs("uid-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_url", "system_prompt", "greeting"}).
			AddRow("custom-1", "Ada", "data:x", "You are Ada.", "Hello"))
	mockDB.ExpectExec(regexp.QuoteMeta(deleteAvatarsQuery)).WithArgs("uid-1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteSession(ctx, "uid-1", "chat-1"))
	require.NoError(t, repo.DeleteSessions(ctx, "uid-1"))
	require.NoError(t, repo.SaveAvatar(ctx, "uid-1", &model.Avatar{ID: "custom-1", Name: "Ada", ImageURL: "data:x", SystemPrompt: "You are Ada.", Greeting: "Hello"}))

	avatars, err := repo.ListAvatars(ctx, "uid-1")
	require.NoError(t, err)
	require.Len(t, avatars, 1)
	assert.True(t, avatars[0].Custom)
	require.NoError(t, repo.DeleteAvatars(ctx, "uid-1"))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
