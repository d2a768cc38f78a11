package session

import (
	"slices"

	"uf-ai/backend/internal/model"
)

// MessageStore is the working copy of the active session's messages.
// Streamed chunks land here before a turn is committed to the Registry.
type MessageStore struct {
	messages []model.ChatMessage
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

// Replace swaps the working list for a copy of msgs.
func (m *MessageStore) Replace(msgs []model.ChatMessage) {
	m.messages = model.CloneMessages(msgs)
}

// Append adds messages at the end.
func (m *MessageStore) Append(msgs ...model.ChatMessage) {
	m.messages = append(m.messages, model.CloneMessages(msgs)...)
}

// Update applies fn to the message with the given id and returns a copy of the result.
// Position is never used to address a message.
func (m *MessageStore) Update(id string, fn func(*model.ChatMessage)) (model.ChatMessage, bool) {
	i := slices.IndexFunc(m.messages, func(msg model.ChatMessage) bool { return msg.ID == id })
	if i < 0 {
		return model.ChatMessage{}, false
	}
	fn(&m.messages[i])
	return m.messages[i].Clone(), true
}

// Get returns a copy of one message.
func (m *MessageStore) Get(id string) (model.ChatMessage, bool) {
	i := slices.IndexFunc(m.messages, func(msg model.ChatMessage) bool { return msg.ID == id })
	if i < 0 {
		return model.ChatMessage{}, false
	}
	return m.messages[i].Clone(), true
}

// Snapshot returns a deep copy of the working list.
func (m *MessageStore) Snapshot() []model.ChatMessage {
	out := model.CloneMessages(m.messages)
	if out == nil {
		out = []model.ChatMessage{}
	}
	return out
}

// Len returns the number of working messages.
func (m *MessageStore) Len() int {
	return len(m.messages)
}
