package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	DefaultExpiration = 24 * time.Hour * 7 // 7 days
	FailurePrefix     = "scrape_failure"
)

type Redis struct {
	client     *redis.Client
	expiration time.Duration
}

// NewRedis connects to host, which may carry a port. The default redis port
// is used otherwise.
func NewRedis(host string, expiration time.Duration) *Redis {
	addr := host
	if !strings.Contains(host, ":") {
		addr = fmt.Sprintf("%s:6379", host)
	}
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: "",
		}),
		expiration: expiration,
	}
}

func NewRedisFromClient(client *redis.Client, expiration time.Duration) *Redis {
	return &Redis{client: client, expiration: expiration}
}

// FailureKey names the snapshot of a page that could not be scraped.
func FailureKey(term string, page uint) string {
	return fmt.Sprintf("%s:%s:%d", FailurePrefix, term, page)
}

// Ping checks that the redis server answers.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis at %s is unreachable: %w", r.client.Options().Addr, err)
	}
	return nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, r.expiration).Err()
}

// RecordFailure keeps the raw HTML of a page so a markup change can be
// inspected later.
func (r *Redis) RecordFailure(ctx context.Context, term string, page uint, body []byte) error {
	if err := r.Set(ctx, FailureKey(term, page), body); err != nil {
		return fmt.Errorf("failed to save snapshot of page %d: %w", page, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
