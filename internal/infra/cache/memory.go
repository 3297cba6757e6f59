package cache

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/notification"
)

// MemoryPollCursor is the single-instance fallback when Redis is not configured.
type MemoryPollCursor struct {
	mu   sync.Mutex
	seen map[uint]uint
}

func NewMemoryPollCursor() *MemoryPollCursor {
	return &MemoryPollCursor{seen: make(map[uint]uint)}
}

func (c *MemoryPollCursor) Get(_ context.Context, userID uint) (uint, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.seen[userID]
	return id, ok, nil
}

func (c *MemoryPollCursor) Set(_ context.Context, userID uint, id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seen[userID] = id
	return nil
}

var _ notification.PollCursor = (*MemoryPollCursor)(nil)
