package registry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRegistry is a Registry backed by Redis. Each key is stored as a
// hash under "hawkkey:<id>".
type RedisRegistry struct {
	db *redis.Client
}

// NewRedisRegistry creates a RedisRegistry on an existing client.
func NewRedisRegistry(db *redis.Client) *RedisRegistry {
	return &RedisRegistry{db: db}
}

func redisKey(id string) string {
	return fmt.Sprintf("hawkkey:%s", id)
}

// GetKey retrieves the key hash for the given id.
func (r *RedisRegistry) GetKey(ctx context.Context, id string) (*Key, error) {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	data, err := r.db.HGetAll(ctx, redisKey(id)).Result()
	if err != nil {
		return nil, err
	}
	// HGetAll reports a missing hash as an empty map, not an error.
	if len(data) == 0 {
		return nil, ErrKeyNotFound
	}

	createdAt, _ := strconv.ParseInt(data["createdAt"], 10, 64)
	return &Key{
		ID:        id,
		Owner:     data["owner"],
		Algorithm: data["algorithm"],
		CreatedAt: time.Unix(createdAt, 0),
	}, nil
}

// PutKey stores the key as a hash under its id.
func (r *RedisRegistry) PutKey(ctx context.Context, key *Key) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	data := map[string]interface{}{
		"owner":     key.Owner,
		"algorithm": key.Algorithm,
		"createdAt": key.CreatedAt.Unix(),
	}
	return r.db.HSet(ctx, redisKey(key.ID), data).Err()
}

// RemoveKey deletes the key hash. Removing an unknown id is not an
// error.
func (r *RedisRegistry) RemoveKey(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	return r.db.Del(ctx, redisKey(id)).Err()
}
