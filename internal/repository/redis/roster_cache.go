package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
)

const (
	defaultRosterPrefix = "roster"
	defaultRosterTTL    = 5 * time.Minute
)

// RosterCache keeps a JSON copy of the client roster in Redis so cascade
// resolution does not hit the primary store on every toggle.
type RosterCache struct {
	client *red.Client
	prefix string
	ttl    time.Duration
}

// NewRosterCache wires a Redis client into a roster cache. A zero TTL falls
// back to the default.
func NewRosterCache(client *red.Client, keyPrefix string, ttl time.Duration) *RosterCache {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultRosterPrefix
	}
	if ttl <= 0 {
		ttl = defaultRosterTTL
	}

	return &RosterCache{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the cached roster or port.ErrRosterCacheMiss when absent.
func (c *RosterCache) Get(ctx context.Context) ([]domain.Client, error) {
	raw, err := c.client.Get(ctx, c.key()).Bytes()
	if err != nil {
		if errors.Is(err, red.Nil) {
			return nil, port.ErrRosterCacheMiss
		}
		return nil, fmt.Errorf("redis get roster: %w", err)
	}

	var roster []domain.Client
	if err := json.Unmarshal(raw, &roster); err != nil {
		return nil, fmt.Errorf("decode cached roster: %w", err)
	}

	return roster, nil
}

// Set replaces the cached roster.
func (c *RosterCache) Set(ctx context.Context, roster []domain.Client) error {
	raw, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}

	if err := c.client.Set(ctx, c.key(), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set roster: %w", err)
	}

	return nil
}

// Invalidate drops the cached roster so the next read reloads from the store.
func (c *RosterCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("redis del roster: %w", err)
	}

	return nil
}

func (c *RosterCache) key() string {
	return fmt.Sprintf("%s:clients", c.prefix)
}
