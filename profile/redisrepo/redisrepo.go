// Package redisrepo provides a Redis-backed profile repository.
//
// It serializes the whole custom-profile list as a single JSON value under a
// fixed key, matching the whole-list write granularity of the other
// repositories. Suitable for multi-seat deployments where several dashboard
// instances share one profile library; writes remain last-write-wins.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/AuroraMediaLabs/pipedash/profile"
)

// Compile-time interface check
var _ profile.Repository = (*Repository)(nil)

const defaultKey = "pipedash:profiles"

// Repository stores the custom-profile list in Redis.
type Repository struct {
	client *redis.Client
	key    string
}

// Option configures a Repository.
type Option func(*Repository)

// WithKey overrides the storage key. Default is "pipedash:profiles".
func WithKey(key string) Option {
	return func(r *Repository) {
		r.key = key
	}
}

// NewRepository creates a Redis-backed repository.
//
// Example:
//
//	repo := redisrepo.NewRepository(
//	    redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
//	)
func NewRepository(client *redis.Client, opts ...Option) *Repository {
	r := &Repository{
		client: client,
		key:    defaultKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads the stored list. A missing key reads as an empty list.
func (r *Repository) Load(ctx context.Context) ([]profile.Profile, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var profiles []profile.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse stored profiles: %w", err)
	}
	return profiles, nil
}

// Save replaces the stored list.
func (r *Repository) Save(ctx context.Context, profiles []profile.Profile) error {
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
