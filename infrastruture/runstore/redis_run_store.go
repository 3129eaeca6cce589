package runstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/beka-birhanu/vinom-pathfinding/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pathviz:runs:"

// RedisRunStore keeps the run history in one Redis sorted set per algorithm,
// scored by the number of visited cells.
type RedisRunStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	limit  int64
}

// NewRedisRunStore initializes a RedisRunStore with the provided Redis client, TTL and size limit.
func NewRedisRunStore(client *redis.Client, ttlSeconds, limit int) (*RedisRunStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	store := &RedisRunStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		limit:  int64(limit),
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Key returns the sorted set holding the runs of kind.
func Key(kind search.Kind) string {
	return keyPrefix + kind.String()
}

// Record adds r to the history of its algorithm and trims the set to the limit.
func (s *RedisRunStore) Record(ctx context.Context, r i.RunRecord) error {
	member, err := json.Marshal(r)
	if err != nil {
		return err
	}

	key := Key(r.Algorithm)
	if err := s.client.ZAdd(ctx, key, redis.Z{Score: float64(r.Visited), Member: string(member)}).Err(); err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := s.client.TTL(ctx, key).Result()
	if err == nil && ttl == -1 {
		_ = s.client.Expire(ctx, key, s.ttl).Err()
	}

	return s.prune(ctx, key)
}

// prune drops the runs with the most visited cells beyond the limit.
func (s *RedisRunStore) prune(ctx context.Context, key string) error {
	if s.limit <= 0 {
		return nil
	}

	mutex := s.locker.NewMutex(key + ":prune_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	if s.client.ZCard(ctx, key).Val() > s.limit {
		return s.client.ZRemRangeByRank(ctx, key, s.limit, -1).Err()
	}
	return nil
}

// Best returns up to limit runs of kind, fewest visited first.
func (s *RedisRunStore) Best(ctx context.Context, kind search.Kind, limit int) ([]i.RunRecord, error) {
	stop := int64(limit) - 1
	if limit <= 0 {
		stop = -1
	}

	members, err := s.client.ZRange(ctx, Key(kind), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	runs := make([]i.RunRecord, 0, len(members))
	for _, member := range members {
		var r i.RunRecord
		if err := json.Unmarshal([]byte(member), &r); err != nil {
			return nil, fmt.Errorf("decoding run history of %s: %w", kind, err)
		}
		runs = append(runs, r)
	}
	return runs, nil
}
