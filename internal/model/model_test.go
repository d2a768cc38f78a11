package model

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMessage_ApplyFeedback(t *testing.T) {
	t.Run("like twice returns to neutral", func(t *testing.T) {
		var m ChatMessage
		m.ApplyFeedback(FeedbackLike)
		require.NotNil(t, m.Liked)
		assert.True(t, *m.Liked)

		m.ApplyFeedback(FeedbackLike)
		assert.Nil(t, m.Liked)
	})

	t.Run("like then dislike leaves disliked", func(t *testing.T) {
		var m ChatMessage
		m.ApplyFeedback(FeedbackLike)
		m.ApplyFeedback(FeedbackDislike)
		require.NotNil(t, m.Liked)
		assert.False(t, *m.Liked)
	})

	t.Run("dislike twice from liked restores neutral", func(t *testing.T) {
		m := ChatMessage{Liked: lo.ToPtr(true)}
		m.ApplyFeedback(FeedbackDislike)
		m.ApplyFeedback(FeedbackDislike)
		assert.Nil(t, m.Liked)
	})
}

func TestChatMessage_AppendChunk(t *testing.T) {
	a := Source{Title: "A", URI: "https://a.example"}
	b := Source{Title: "B", URI: "https://b.example"}

	m := NewAIMessage(AIModel{ID: "gemini-2.5-flash"})
	m.AppendChunk("Hel", nil)
	m.AppendChunk("lo", nil)
	m.AppendChunk("", []Source{a})
	m.AppendChunk("", []Source{b})
	m.AppendChunk("", []Source{a})

	assert.Equal(t, "Hello", m.Text)
	assert.Equal(t, []Source{a, b, a}, m.Sources)
}

func TestChatMessage_Clone(t *testing.T) {
	orig := ChatMessage{
		ID:      "msg-1",
		Model:   &AIModel{ID: "x"},
		Liked:   lo.ToPtr(true),
		Sources: []Source{{Title: "t"}},
	}
	c := orig.Clone()
	c.Model.ID = "y"
	*c.Liked = false
	c.Sources[0].Title = "changed"

	assert.Equal(t, "x", orig.Model.ID)
	assert.True(t, *orig.Liked)
	assert.Equal(t, "t", orig.Sources[0].Title)
}

func TestNewMessageID_Ordered(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = NewMessageID()
	}
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestChatSession_CompletedExchanges(t *testing.T) {
	s := ChatSession{Messages: []ChatMessage{
		{Sender: SenderUser},
		{Sender: SenderAI, IsError: true},
		{Sender: SenderUser, Text: "draw a cat"},
		{Sender: SenderAI, ImageURL: "data:image/png;base64,AA=="},
		{Sender: SenderUser},
		{Sender: SenderAI},
	}}
	assert.Equal(t, 1, s.CompletedExchanges())
}

func TestUser_Apply(t *testing.T) {
	base := User{
		UID:           "u1",
		Name:          "Ada",
		Plan:          PlanFree,
		MessageCount:  5,
		UseChatMemory: true,
		KnowledgeBase: "likes tea",
	}

	t.Run("untouched fields survive", func(t *testing.T) {
		got := base.Apply(ProfileUpdate{Theme: lo.ToPtr("dark")})
		assert.Equal(t, "dark", got.Theme)
		assert.Equal(t, "likes tea", got.KnowledgeBase)
		assert.Equal(t, 5, got.MessageCount)
		assert.True(t, got.UseChatMemory)
		assert.Equal(t, "", base.Theme, "receiver must not be mutated")
	})

	t.Run("plan change resets the counter", func(t *testing.T) {
		got := base.Apply(ProfileUpdate{Plan: lo.ToPtr(PlanPro)})
		assert.Equal(t, PlanPro, got.Plan)
		assert.Equal(t, 0, got.MessageCount)
	})

	t.Run("same plan keeps the counter", func(t *testing.T) {
		got := base.Apply(ProfileUpdate{Plan: lo.ToPtr(PlanFree)})
		assert.Equal(t, 5, got.MessageCount)
	})

	t.Run("counter is not settable", func(t *testing.T) {
		var upd ProfileUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"messageCount":0,"theme":"dark"}`), &upd))
		got := base.Apply(upd)
		assert.Equal(t, "dark", got.Theme)
		assert.Equal(t, 5, got.MessageCount)
	})

	t.Run("bool can be switched off", func(t *testing.T) {
		got := base.Apply(ProfileUpdate{UseChatMemory: lo.ToPtr(false)})
		assert.False(t, got.UseChatMemory)
	})
}
