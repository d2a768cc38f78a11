// Package session holds the ordered session registry and the working message list
// of the active session. Neither type is safe for concurrent use; the owner
// serializes access.
package session

import (
	"slices"

	"github.com/samber/lo"

	"uf-ai/backend/internal/model"
)

// DefaultTitle is the title of a session before its first exchange.
const DefaultTitle = "New Chat"

// Registry owns all sessions, most recently created first.
type Registry struct {
	sessions []*model.ChatSession
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Prepend inserts s at the front.
func (r *Registry) Prepend(s model.ChatSession) {
	cp := s.Clone()
	r.sessions = append([]*model.ChatSession{&cp}, r.sessions...)
}

// Replace swaps the whole registry for the given sessions, kept in the given order.
func (r *Registry) Replace(sessions []model.ChatSession) {
	r.sessions = lo.Map(sessions, func(s model.ChatSession, _ int) *model.ChatSession {
		cp := s.Clone()
		return &cp
	})
}

// Get returns a deep copy of a session.
func (r *Registry) Get(id string) (model.ChatSession, bool) {
	s := r.find(id)
	if s == nil {
		return model.ChatSession{}, false
	}
	return s.Clone(), true
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	return r.find(id) != nil
}

// List returns deep copies of every session in registry order.
func (r *Registry) List() []model.ChatSession {
	return lo.Map(r.sessions, func(s *model.ChatSession, _ int) model.ChatSession { return s.Clone() })
}

// Len returns the number of sessions.
func (r *Registry) Len() int {
	return len(r.sessions)
}

// Remove deletes a session and reports whether it existed.
func (r *Registry) Remove(id string) bool {
	n := len(r.sessions)
	r.sessions = slices.DeleteFunc(r.sessions, func(s *model.ChatSession) bool { return s.ID == id })
	return len(r.sessions) != n
}

// Clear drops every session.
func (r *Registry) Clear() {
	r.sessions = nil
}

// MostRecent returns the session with the latest creation time.
func (r *Registry) MostRecent() (model.ChatSession, bool) {
	if len(r.sessions) == 0 {
		return model.ChatSession{}, false
	}
	latest := lo.MaxBy(r.sessions, func(a, b *model.ChatSession) bool { return a.Timestamp.After(b.Timestamp) })
	return latest.Clone(), true
}

// Commit appends finalized messages to a session's transcript in one step.
func (r *Registry) Commit(id string, msgs ...model.ChatMessage) bool {
	s := r.find(id)
	if s == nil {
		return false
	}
	s.Messages = append(s.Messages, model.CloneMessages(msgs)...)
	return true
}

// UpdateMessage applies fn to one committed message.
func (r *Registry) UpdateMessage(sessionID, messageID string, fn func(*model.ChatMessage)) bool {
	s := r.find(sessionID)
	if s == nil {
		return false
	}
	for i := range s.Messages {
		if s.Messages[i].ID == messageID {
			fn(&s.Messages[i])
			return true
		}
	}
	return false
}

// SetTitle replaces a session title.
func (r *Registry) SetTitle(id, title string) bool {
	s := r.find(id)
	if s == nil {
		return false
	}
	s.Title = title
	return true
}

// SetModel replaces the model new turns in a session default to.
func (r *Registry) SetModel(id string, m model.AIModel) bool {
	s := r.find(id)
	if s == nil {
		return false
	}
	s.Model = m
	return true
}

func (r *Registry) find(id string) *model.ChatSession {
	s, _ := lo.Find(r.sessions, func(s *model.ChatSession) bool { return s.ID == id })
	return s
}
