package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/model"
	"github.com/go-redis/redis/v8"
)

// DefaultRedisKey is where the listing lives when no key is configured.
const DefaultRedisKey = "eventease:events"

// Redis keeps the listing as JSON under one key with a Redis TTL, so that
// several API replicas share a single cached copy.
type Redis struct {
	Client *redis.Client
	Key    string
}

// NewRedis creates a Redis-backed event cache.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{Client: client, Key: key}
}

func (r *Redis) Get(ctx context.Context) ([]model.Event, bool, error) {
	if r.Client == nil {
		return nil, false, fmt.Errorf("redis client not initialized")
	}

	raw, err := r.Client.Get(ctx, r.Key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to get events from Redis: %w", err)
	}

	var events []model.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached events: %w", err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, true, nil
}

func (r *Redis) Set(ctx context.Context, events []model.Event, ttl time.Duration) error {
	if r.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	if events == nil {
		events = []model.Event{}
	}

	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	if err := r.Client.Set(ctx, r.Key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store events in Redis: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	if err := r.Client.Del(ctx, r.Key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached events: %w", err)
	}
	return nil
}

// Connect opens a Redis client and checks it with a PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}
