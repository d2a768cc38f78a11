package profile

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/model"
)

func TestService_SignIn(t *testing.T) {
	s := NewService()

	t.Run("Success", func(t *testing.T) {
		u, err := s.SignIn(context.Background(), "  Ada  Lovelace ")

		require.NoError(t, err)
		assert.Equal(t, "mock-uid-ada-lovelace", u.UID)
		assert.Equal(t, "ada.lovelace@ufai.local", u.Email)
		assert.Equal(t, "Ada  Lovelace", u.Name)
		assert.Equal(t, model.PlanFree, u.Plan)
		assert.Equal(t, 0, u.MessageCount)
		assert.True(t, u.UseChatMemory)
		assert.Contains(t, u.AvatarURL, "name=Ada++Lovelace")
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := s.SignIn(context.Background(), "   ")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	s := NewService()
	ctx := context.Background()
	current := &model.User{UID: "u", Plan: model.PlanFree, MessageCount: 6, ChatStyle: model.StyleFriendly}

	t.Run("MergesFields", func(t *testing.T) {
		next, err := s.UpdateProfile(ctx, current, model.ProfileUpdate{
			ChatStyle: lo.ToPtr(model.StyleCreative),
			Plan:      lo.ToPtr(model.PlanPro),
		})

		require.NoError(t, err)
		assert.Equal(t, model.StyleCreative, next.ChatStyle)
		assert.Equal(t, model.PlanPro, next.Plan)
		assert.Equal(t, 0, next.MessageCount)
		assert.Equal(t, 6, current.MessageCount, "input must not be mutated")
	})

	t.Run("InvalidStyle", func(t *testing.T) {
		_, err := s.UpdateProfile(ctx, current, model.ProfileUpdate{ChatStyle: lo.ToPtr(model.ChatStyle("Grumpy"))})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("UnknownModel", func(t *testing.T) {
		_, err := s.UpdateProfile(ctx, current, model.ProfileUpdate{SelectedModelID: lo.ToPtr("nope")})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("SignedOut", func(t *testing.T) {
		_, err := s.UpdateProfile(ctx, nil, model.ProfileUpdate{})
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}
