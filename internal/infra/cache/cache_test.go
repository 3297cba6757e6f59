package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPollCursor(t *testing.T) {
	c := NewMemoryPollCursor()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, 1, 12))
	id, ok, _ := c.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, uint(12), id)

	_, ok, _ = c.Get(ctx, 2)
	assert.False(t, ok)
}

// TestInvoiceSequencer_Integration requires a running Redis.
func TestInvoiceSequencer_Integration(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Skipping Redis integration test: redis not available")
	}

	year := 3000 + int(time.Now().UnixNano()%1000)
	key := fmt.Sprintf("invoice:seq:%d", year)
	t.Cleanup(func() { client.Del(ctx, key) })

	seeded := 0
	seq := NewInvoiceSequencer(client, func(context.Context, int) (string, error) {
		seeded++
		return fmt.Sprintf("INV-%d-0041", year), nil
	})

	first, err := seq.Reserve(ctx, year)
	require.NoError(t, err)
	second, err := seq.Reserve(ctx, year)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("INV-%d-0042", year), first)
	assert.Equal(t, fmt.Sprintf("INV-%d-0043", year), second)
	assert.Equal(t, 1, seeded)
}
