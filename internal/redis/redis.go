package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fakhrymubarak/weather-eink/internal/config"
	redisv9 "github.com/redis/go-redis/v9"
)

var (
	client *redisv9.Client
	once   sync.Once
)

func GetClient() *redisv9.Client {
	once.Do(func() {
		client = redisv9.NewClient(&redisv9.Options{
			Addr: config.GetRedisAddr(),
		})
	})
	return client
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	once = sync.Once{}
	client = nil
}

// Setter is the part of the Redis client the publisher needs.
type Setter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

// DisplayPublisher writes rendered weather text to a key that networked displays poll.
// It never reads the key back.
type DisplayPublisher struct {
	client Setter
	key    string
	ttl    time.Duration
}

// NewDisplayPublisher creates a publisher on the given client, or on the shared client when none is passed.
func NewDisplayPublisher(c ...Setter) *DisplayPublisher {
	var s Setter
	if len(c) > 0 && c[0] != nil {
		s = c[0]
	} else {
		s = GetClient()
	}
	return &DisplayPublisher{
		client: s,
		key:    config.GetDisplayKey(),
		ttl:    config.GetDisplayTTL(),
	}
}

// Key returns the Redis key text is published under.
func (p *DisplayPublisher) Key() string {
	return p.key
}

// Publish stores text under the display key; it expires after the configured TTL
// so a panel stops showing stale weather when fetches stop.
func (p *DisplayPublisher) Publish(ctx context.Context, text string) error {
	if err := p.client.Set(ctx, p.key, text, p.ttl).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.key, err)
	}
	config.GetLogger().Debugw("Published display text", "key", p.key, "ttl", p.ttl)
	return nil
}
