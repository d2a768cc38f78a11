package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/llm"
	"uf-ai/backend/internal/model"
	"uf-ai/backend/internal/repository"
	"uf-ai/backend/internal/service"
)

func decodeBundle(t *testing.T, data []byte) service.ExportBundle {
	t.Helper()
	var b service.ExportBundle
	require.NoError(t, json.Unmarshal(data, &b))
	return b
}

func TestChatService_ExportImportRoundTrip(t *testing.T) {
	// Arrange
	ctx := context.Background()
	source := setupChatService(t, nil, nil).quiet()
	source.assistant.On("ResearchPersona", mock.Anything, "Grace Hopper").
		Return(&llm.PersonaData{SystemPrompt: "You are Grace Hopper.", Greeting: "Hello, sailor."}, nil).Once()
	source.assistant.On("GeneratePortrait", mock.Anything, "Grace Hopper").Return("https://img.example/grace.png", nil).Once()
	signIn(t, source.svc)

	_, err := source.svc.SendMessage(ctx, service.SendMessageRequest{Text: "Tell me a joke"})
	require.NoError(t, err)
	_, err = source.svc.CreateCustomAvatar(ctx, "Grace Hopper")
	require.NoError(t, err)
	_, err = source.svc.SendMessage(ctx, service.SendMessageRequest{Text: "What is a bug?"})
	require.NoError(t, err)
	source.svc.Wait()

	exported, err := source.svc.ExportData()
	require.NoError(t, err)

	repo := repository.NewMemoryRepository()
	target := setupChatService(t, repo, nil)
	_, err = target.svc.SignIn(ctx, "Someone Else")
	require.NoError(t, err)

	// Act
	require.NoError(t, target.svc.ImportData(ctx, exported))
	reexported, err := target.svc.ExportData()
	require.NoError(t, err)

	// Assert
	want, got := decodeBundle(t, exported), decodeBundle(t, reexported)
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(service.ExportBundle{}, "ExportDate")); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, got.Chats, 2)
	assert.Equal(t, "Chat with Grace Hopper", got.Chats[0].Title)

	active, _ := target.svc.ActiveSession()
	assert.Equal(t, got.Chats[0].ID, active.ID)

	stored, err := repo.ListSessions(ctx, want.Profile.UID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	avatars, err := repo.ListAvatars(ctx, want.Profile.UID)
	require.NoError(t, err)
	assert.Len(t, avatars, 1)
}

func TestChatService_ImportData_ReplacesStoredAvatars(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	env := setupChatService(t, repo, nil).quiet()
	env.assistant.On("ResearchPersona", mock.Anything, "Grace Hopper").
		Return(&llm.PersonaData{SystemPrompt: "You are Grace Hopper."}, nil).Once()
	env.assistant.On("GeneratePortrait", mock.Anything, "Grace Hopper").Return("https://img.example/grace.png", nil).Once()
	signIn(t, env.svc)
	exported, err := env.svc.ExportData()
	require.NoError(t, err)
	_, err = env.svc.CreateCustomAvatar(ctx, "Grace Hopper")
	require.NoError(t, err)

	// Act
	require.NoError(t, env.svc.ImportData(ctx, exported))
	require.NoError(t, env.svc.SignOut(ctx))
	signIn(t, env.svc)

	// Assert
	custom := lo.Filter(env.svc.ListAvatars(), func(a model.Avatar, _ int) bool { return a.Custom })
	assert.Empty(t, custom)
	stored, err := repo.ListAvatars(ctx, "mock-uid-ada-lovelace")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestChatService_ImportData_Validation(t *testing.T) {
	ctx := context.Background()
	env := setupChatService(t, nil, nil)
	u := signIn(t, env.svc)

	testCases := []struct {
		name     string
		payload  string
		contains []string
	}{
		{name: "Malformed JSON", payload: `{"profile":`, contains: []string{"malformed"}},
		{
			name:     "Every problem is reported",
			payload:  `{"profile":null,"chats":[{"id":""},{"id":"c1","messages":[{"id":"m1","sender":"bot"}]}],"customAvatars":[{"id":"einstein","name":"Al"}]}`,
			contains: []string{"profile is missing", "chat 0 has no id", `unknown sender "bot"`, "predefined avatar"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := env.svc.ImportData(ctx, []byte(tc.payload))

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			for _, c := range tc.contains {
				assert.ErrorContains(t, err, c)
			}
			current, _ := env.svc.CurrentUser()
			assert.Equal(t, u.UID, current.UID)
		})
	}
}
