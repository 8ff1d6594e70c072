package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "amortiza:simulation:"
	redisIndexKey  = "amortiza:simulations"
)

// RedisOptions configures a RedisStore
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// TTL expires records; zero keeps them forever
	TTL time.Duration
}

// RedisStore keeps each record as a JSON string and indexes IDs in a sorted
// set scored by creation time.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redis and verifies the connection with PING
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return NewRedisStoreWithClient(client, opts.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func recordKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, record domain.SimulationRecord) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recordKey(record.ID), data, s.ttl)
	pipe.ZAdd(ctx, redisIndexKey, redis.Z{
		Score:  float64(record.CreatedAt.UnixMilli()),
		Member: record.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save simulation %s: %w", record.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.SimulationRecord, error) {
	data, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation %s: %w", id, err)
	}
	return decodeRecord(data)
}

// List reads the newest IDs from the index and skips records that have
// expired since they were indexed.
func (s *RedisStore) List(ctx context.Context, limit int) ([]domain.SimulationRecord, error) {
	limit = normalizeLimit(limit)
	ids, err := s.client.ZRevRange(ctx, redisIndexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	if len(ids) == 0 {
		return []domain.SimulationRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load simulations: %w", err)
	}

	records := make([]domain.SimulationRecord, 0, len(values))
	var stale []interface{}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		record, err := decodeRecord([]byte(raw))
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if len(stale) > 0 {
		s.client.ZRem(ctx, redisIndexKey, stale...)
	}
	return records, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
