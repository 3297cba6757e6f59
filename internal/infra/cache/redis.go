package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/notification"
)

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// ===============================
// Invoice sequence
// ===============================

// KEYS[1] = sequence key, ARGV[1] = seed (highest sequence already used)
var reserveScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
    redis.call("SET", KEYS[1], ARGV[1])
end
return redis.call("INCR", KEYS[1])
`)

// HighestFunc reports the highest invoice number stored for year.
type HighestFunc func(ctx context.Context, year int) (string, error)

// InvoiceSequencer hands out invoice numbers with an atomic INCR. The
// counter of a year is seeded from the database the first time it is used.
type InvoiceSequencer struct {
	client  *redis.Client
	highest HighestFunc
}

func NewInvoiceSequencer(client *redis.Client, highest HighestFunc) *InvoiceSequencer {
	return &InvoiceSequencer{client: client, highest: highest}
}

func (s *InvoiceSequencer) Reserve(ctx context.Context, year int) (string, error) {
	key := fmt.Sprintf("invoice:seq:%d", year)

	seed := 0
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("redis sequencer: %w", err)
	}
	if exists == 0 {
		highest, err := s.highest(ctx, year)
		if err != nil {
			return "", err
		}
		if _, seq, ok := invoice.ParseNumber(highest); ok {
			seed = seq
		}
	}

	n, err := reserveScript.Run(ctx, s.client, []string{key}, seed).Int()
	if err != nil {
		return "", fmt.Errorf("redis sequencer: %w", err)
	}
	return invoice.FormatNumber(year, n), nil
}

// ===============================
// Poll cursor
// ===============================

const cursorTTL = 30 * 24 * time.Hour

type RedisPollCursor struct {
	client *redis.Client
}

func NewRedisPollCursor(client *redis.Client) *RedisPollCursor {
	return &RedisPollCursor{client: client}
}

func cursorKey(userID uint) string {
	return fmt.Sprintf("notifications:cursor:%d", userID)
}

func (c *RedisPollCursor) Get(ctx context.Context, userID uint) (uint, bool, error) {
	v, err := c.client.Get(ctx, cursorKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return uint(id), true, nil
}

func (c *RedisPollCursor) Set(ctx context.Context, userID uint, id uint) error {
	return c.client.Set(ctx, cursorKey(userID), id, cursorTTL).Err()
}

var (
	_ invoice.Sequencer       = (*InvoiceSequencer)(nil)
	_ notification.PollCursor = (*RedisPollCursor)(nil)
)
