// Package cache holds the Redis-backed visitor registry. The original
// visitor alert deduped on an in-process session flag; a shared SETNX
// marker survives restarts and multiple server processes.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/config"
	"github.com/redis/go-redis/v9"
)

type VisitorRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVisitorRegistry(ctx context.Context, cfg config.RedisConfig) (*VisitorRegistry, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &VisitorRegistry{client: client, ttl: cfg.VisitorTTL}, nil
}

var _ application.VisitorRegistry = (*VisitorRegistry)(nil)

// FirstVisit marks the visitor atomically and reports whether the marker
// was freshly set. Concurrent requests from the same visitor race on one
// SETNX, so at most one of them sees true per dedupe window.
func (r *VisitorRegistry) FirstVisit(ctx context.Context, visitorID string) (bool, error) {
	return r.client.SetNX(ctx, "visitor:"+visitorID, 1, r.ttl).Result()
}

func (r *VisitorRegistry) Close() error {
	return r.client.Close()
}
