// Package store provides durable backends for the profile and catalog
// documents: Redis, PostgreSQL and plain JSON files.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	personasdk "github.com/edgemindTech/edge-persona-sdk-go"
)

// RedisProfileStore keeps the profile and catalog as whole JSON documents
// under fixed keys: "{prefix}:profile" and "{prefix}:all_cards".
type RedisProfileStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	ctx    context.Context
}

// RedisStoreConfig configures the Redis store.
type RedisStoreConfig struct {
	Prefix string        // key prefix, default "edge_persona_db"
	TTL    time.Duration // document TTL, 0 = no expiry
}

// NewRedisProfileStore creates a profile store backed by Redis.
// Compatible with go-redis Client, ClusterClient, and Ring.
func NewRedisProfileStore(client redis.Cmdable, config ...RedisStoreConfig) *RedisProfileStore {
	cfg := RedisStoreConfig{Prefix: "edge_persona_db"}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "edge_persona_db"
	}
	return &RedisProfileStore{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		ctx:    context.Background(),
	}
}

func (r *RedisProfileStore) profileKey() string { return r.prefix + ":profile" }
func (r *RedisProfileStore) catalogKey() string { return r.prefix + ":all_cards" }

func (r *RedisProfileStore) Load() (*personasdk.PersonalityProfile, error) {
	val, err := r.client.Get(r.ctx, r.profileKey()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var profile personasdk.PersonalityProfile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	profile.EnsureSchemaVersion()
	return &profile, nil
}

func (r *RedisProfileStore) Save(profile *personasdk.PersonalityProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return r.client.Set(r.ctx, r.profileKey(), string(data), r.ttl).Err()
}

func (r *RedisProfileStore) LoadCatalog() (personasdk.Catalog, error) {
	val, err := r.client.Get(r.ctx, r.catalogKey()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var catalog personasdk.Catalog
	if err := json.Unmarshal([]byte(val), &catalog); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return catalog, nil
}

func (r *RedisProfileStore) SaveCatalog(catalog personasdk.Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return r.client.Set(r.ctx, r.catalogKey(), string(data), r.ttl).Err()
}

// Compile-time interface checks.
var (
	_ personasdk.ProfileStore = (*RedisProfileStore)(nil)
	_ personasdk.CatalogStore = (*RedisProfileStore)(nil)
)
