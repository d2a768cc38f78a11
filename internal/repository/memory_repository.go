package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"

	"uf-ai/backend/internal/model"
)

// memoryRepository keeps everything in process memory. It backs STORE_DRIVER=memory and tests.
type memoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]model.User
	sessions map[string][]model.ChatSession
	avatars  map[string][]model.Avatar
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		profiles: make(map[string]model.User),
		sessions: make(map[string][]model.ChatSession),
		avatars:  make(map[string][]model.Avatar),
	}
}

func (r *memoryRepository) SaveProfile(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[user.UID] = *user
	return nil
}

func (r *memoryRepository) GetProfile(_ context.Context, uid string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.profiles[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryRepository) SaveSession(_ context.Context, uid string, s *model.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := slices.DeleteFunc(r.sessions[uid], func(x model.ChatSession) bool { return x.ID == s.ID })
	list = append(list, s.Clone())
	// Newest creation first, ties broken by id like the SQL ordering.
	slices.SortStableFunc(list, func(a, b model.ChatSession) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	r.sessions[uid] = list
	return nil
}

func (r *memoryRepository) ListSessions(_ context.Context, uid string) ([]model.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.sessions[uid], func(s model.ChatSession, _ int) model.ChatSession { return s.Clone() }), nil
}

func (r *memoryRepository) DeleteSession(_ context.Context, uid, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[uid] = slices.DeleteFunc(r.sessions[uid], func(x model.ChatSession) bool { return x.ID == sessionID })
	return nil
}

func (r *memoryRepository) DeleteSessions(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, uid)
	return nil
}

func (r *memoryRepository) SaveAvatar(_ context.Context, uid string, a *model.Avatar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	cp.Custom = true
	if i := slices.IndexFunc(r.avatars[uid], func(x model.Avatar) bool { return x.ID == a.ID }); i >= 0 {
		r.avatars[uid][i] = cp
		return nil
	}
	r.avatars[uid] = append(r.avatars[uid], cp)
	return nil
}

func (r *memoryRepository) DeleteAvatars(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.avatars, uid)
	return nil
}

func (r *memoryRepository) ListAvatars(_ context.Context, uid string) ([]model.Avatar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Avatar{}, r.avatars[uid]...), nil
}
