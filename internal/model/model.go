package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Feedback is a reaction a user can toggle on an AI message.
type Feedback string

const (
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
)

// LoadingState describes what the engine is doing for a session.
type LoadingState string

const (
	LoadingGenerating  LoadingState = "generating"
	LoadingAnalyzing   LoadingState = "analyzing"
	LoadingImagining   LoadingState = "imagining"
	LoadingResearching LoadingState = "researching"
)

// AIModel is a selectable model from the catalog.
type AIModel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Source is a grounding citation reported by a provider.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ChatMessage is one side of a turn.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Model     *AIModel  `json:"model,omitempty"` // Set only on AI messages.
	IsError   bool      `json:"isError,omitempty"`
	Liked     *bool     `json:"liked"` // nil is neutral.
	Sources   []Source  `json:"sources,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage creates a user message with a fresh id.
func NewUserMessage(text, imageURL string) ChatMessage {
	return ChatMessage{
		ID:        NewMessageID(),
		Sender:    SenderUser,
		Text:      text,
		ImageURL:  imageURL,
		Timestamp: time.Now(),
	}
}

// NewAIMessage creates an empty AI message attributed to m.
func NewAIMessage(m AIModel) ChatMessage {
	return ChatMessage{
		ID:        NewMessageID(),
		Sender:    SenderAI,
		Model:     &m,
		Timestamp: time.Now(),
	}
}

// ApplyFeedback toggles the reaction. Repeating the current reaction clears it.
func (m *ChatMessage) ApplyFeedback(f Feedback) {
	want := f == FeedbackLike
	if m.Liked != nil && *m.Liked == want {
		m.Liked = nil
		return
	}
	m.Liked = &want
}

// AppendChunk appends streamed text and sources. Nothing already present is replaced.
func (m *ChatMessage) AppendChunk(text string, sources []Source) {
	m.Text += text
	if len(sources) > 0 {
		m.Sources = append(m.Sources, sources...)
	}
}

// Clone returns a deep copy.
func (m ChatMessage) Clone() ChatMessage {
	if m.Model != nil {
		mdl := *m.Model
		m.Model = &mdl
	}
	if m.Liked != nil {
		liked := *m.Liked
		m.Liked = &liked
	}
	m.Sources = slices.Clone(m.Sources)
	return m
}

// CloneMessages deep copies a message list.
func CloneMessages(msgs []ChatMessage) []ChatMessage {
	if msgs == nil {
		return nil
	}
	out := make([]ChatMessage, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clone()
	}
	return out
}

// ChatSession is a conversation thread. Messages holds the committed transcript.
type ChatSession struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Model        AIModel       `json:"model"`
	Timestamp    time.Time     `json:"timestamp"`
	AvatarID     string        `json:"avatarId,omitempty"`
	IntroMessage string        `json:"introMessage,omitempty"`
	Messages     []ChatMessage `json:"messages"`
}

// Clone returns a deep copy of the session.
func (s ChatSession) Clone() ChatSession {
	s.Messages = CloneMessages(s.Messages)
	if s.Messages == nil {
		s.Messages = []ChatMessage{}
	}
	return s
}

// CompletedExchanges counts AI text replies that finished without error.
// Generated images are not exchanges.
func (s *ChatSession) CompletedExchanges() int {
	n := 0
	for _, m := range s.Messages {
		if m.Sender == SenderAI && !m.IsError && m.ImageURL == "" {
			n++
		}
	}
	return n
}

// Avatar is a persona a chat can be bound to.
type Avatar struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ImageURL     string `json:"imageUrl"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
	Greeting     string `json:"greeting,omitempty"`
	Custom       bool   `json:"custom,omitempty"`
}

// StreamEvent is published whenever observable chat state changes.
type StreamEvent struct {
	Type      string        `json:"type"`
	SessionID string        `json:"sessionId,omitempty"`
	Message   *ChatMessage  `json:"message,omitempty"`
	Loading   *LoadingState `json:"loading,omitempty"`
	Title     string        `json:"title,omitempty"`
}

const (
	EventMessageUpdated = "message.updated"
	EventTurnCommitted  = "turn.committed"
	EventLoading        = "loading"
	EventTitleChanged   = "session.title"
	EventProfileChanged = "profile.changed"
	EventSessionsReset  = "sessions.reset"
)

// NewMessageID returns a time-ordered message identifier.
func NewMessageID() string {
	return "msg-" + uuid.Must(uuid.NewV7()).String()
}

// NewSessionID returns a time-ordered session identifier.
func NewSessionID() string {
	return "chat-" + uuid.Must(uuid.NewV7()).String()
}

// NewAvatarID returns an identifier for a custom avatar.
func NewAvatarID() string {
	return "custom-" + uuid.Must(uuid.NewV7()).String()
}
