package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	redis_models "emoguchi/models/redis"
	redis_utils "emoguchi/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveRoomSnapshot stores a room state snapshot in Redis
// Key format: "room:{id}:snapshot"
// TTL: 24 hours
func (rc *RedisClient) SaveRoomSnapshot(snapshot *redis_models.RoomSnapshot) error {
	key := redis_utils.FormatRoomSnapshotKey(snapshot.RoomID)
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error marshaling room snapshot: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 24*time.Hour).Err()
}

// GetRoomSnapshot retrieves a room state snapshot from Redis
// Key format: "room:{id}:snapshot"
func (rc *RedisClient) GetRoomSnapshot(roomID string) (*redis_models.RoomSnapshot, error) {
	key := redis_utils.FormatRoomSnapshotKey(roomID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting room snapshot: %v", err)
	}

	var snapshot redis_models.RoomSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("error unmarshaling room snapshot: %v", err)
	}
	return &snapshot, nil
}

// DeleteRoomSnapshot removes a room's mirrored state, including its cached
// phrases.
func (rc *RedisClient) DeleteRoomSnapshot(roomID string) error {
	pipe := rc.client.Pipeline()
	pipe.Del(rc.ctx, redis_utils.FormatRoomSnapshotKey(roomID))
	pipe.Del(rc.ctx, redis_utils.FormatPhraseCacheKey(roomID))
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error deleting room snapshot: %v", err)
	}
	return nil
}

// ListRoomSnapshots scans every mirrored room, for the debug surface.
func (rc *RedisClient) ListRoomSnapshots() ([]*redis_models.RoomSnapshot, error) {
	var snapshots []*redis_models.RoomSnapshot
	iter := rc.client.Scan(rc.ctx, 0, redis_utils.SnapshotKeyPattern, 100).Iterator()
	for iter.Next(rc.ctx) {
		data, err := rc.client.Get(rc.ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}
		var snapshot redis_models.RoomSnapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			continue
		}
		snapshots = append(snapshots, &snapshot)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning room snapshots: %v", err)
	}
	return snapshots, nil
}

// PushPhrases appends prefetched phrases to a room's cache list
// Key format: "room:{id}:phrases"
func (rc *RedisClient) PushPhrases(roomID string, phrases []string, ttl time.Duration) error {
	if len(phrases) == 0 {
		return nil
	}
	key := redis_utils.FormatPhraseCacheKey(roomID)
	values := make([]interface{}, len(phrases))
	for i, p := range phrases {
		values[i] = p
	}
	pipe := rc.client.Pipeline()
	pipe.RPush(rc.ctx, key, values...)
	pipe.Expire(rc.ctx, key, ttl)
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error caching phrases: %v", err)
	}
	return nil
}

// PopPhrase takes the oldest cached phrase, redis.Nil maps to ok=false.
func (rc *RedisClient) PopPhrase(roomID string) (string, bool, error) {
	key := redis_utils.FormatPhraseCacheKey(roomID)
	phrase, err := rc.client.LPop(rc.ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error popping cached phrase: %v", err)
	}
	return phrase, true, nil
}
