package member

import (
	"context"
	"sync"
)

// MemoryRepository is a Repository backed by a map. It is safe for
// concurrent use, since it is shared as a singleton by every request.
type MemoryRepository struct {
	mu      sync.RWMutex
	members map[int64]Member
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{members: make(map[int64]Member)}
}

// Save inserts or replaces m.
func (r *MemoryRepository) Save(_ context.Context, m Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID] = m
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok {
		return Member{}, ErrNotFound
	}
	return m, nil
}

// Len returns the number of stored members.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

var _ Repository = (*MemoryRepository)(nil)
