package leads

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-process Repository for tests and local development.
type MemoryRepo struct {
	mu    sync.RWMutex
	items []Lead
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Insert(ctx context.Context, lead Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, lead)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, workspaceID, leadID string) (Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.items {
		if l.WorkspaceID == workspaceID && l.ID == leadID {
			return l, nil
		}
	}
	return Lead{}, ErrNotFound
}

func (r *MemoryRepo) ListByTimeRange(ctx context.Context, workspaceID string, from, to time.Time) ([]Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Lead
	for _, l := range r.items {
		if l.WorkspaceID != workspaceID {
			continue
		}
		if l.CreatedAt.Before(from) || !l.CreatedAt.Before(to) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
