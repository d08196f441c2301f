package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// ErrRateTableNotFound is returned on a store miss.
var ErrRateTableNotFound = errors.New("rate table not found in store")

func rateTableKey(base string) string {
	return fmt.Sprintf("exchange_rate:%s", base)
}

// RedisRateTableStore shares rate tables between sessions and replicas using Redis.
type RedisRateTableStore struct {
	client *redis.Client
	exp    time.Duration // expiration duration for stored tables
}

// NewRedisRateTableStore creates a new store with the given TTL.
func NewRedisRateTableStore(client *redis.Client, expiration time.Duration) *RedisRateTableStore {
	return &RedisRateTableStore{
		client: client,
		exp:    expiration,
	}
}

// Get returns the stored table for base.
func (s *RedisRateTableStore) Get(ctx context.Context, base string) (models.RateTable, error) {
	key := rateTableKey(base)

	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrRateTableNotFound, base)
		}
		logger.Log.Errorw("redis get failed", "key", key, "error", err)
		return nil, err
	}

	var table models.RateTable
	if err := json.Unmarshal(val, &table); err != nil {
		logger.Log.Errorw("stored rate table is corrupt", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Debugw("rate table store hit", "key", key, "rates", len(table))
	return table, nil
}

// Set stores the table for base with expiration.
func (s *RedisRateTableStore) Set(ctx context.Context, base string, table models.RateTable) error {
	key := rateTableKey(base)

	data, err := json.Marshal(table)
	if err != nil {
		return err
	}

	err = s.client.Set(ctx, key, data, s.exp).Err()
	logger.Log.Debugw("rate table stored", "key", key, "rates", len(table), "error", err)
	return err
}

// FreecacheRateTableStore keeps rate tables in process memory.
type FreecacheRateTableStore struct {
	cache *freecache.Cache
	exp   time.Duration
}

// NewFreecacheRateTableStore wraps cache; expirations below one second are
// treated as no expiry.
func NewFreecacheRateTableStore(cache *freecache.Cache, expiration time.Duration) *FreecacheRateTableStore {
	return &FreecacheRateTableStore{
		cache: cache,
		exp:   expiration,
	}
}

// Get returns the stored table for base.
func (s *FreecacheRateTableStore) Get(_ context.Context, base string) (models.RateTable, error) {
	val, err := s.cache.Get([]byte(rateTableKey(base)))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRateTableNotFound, base)
		}
		return nil, err
	}

	var table models.RateTable
	if err := json.Unmarshal(val, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// Set stores the table for base with expiration.
func (s *FreecacheRateTableStore) Set(_ context.Context, base string, table models.RateTable) error {
	data, err := json.Marshal(table)
	if err != nil {
		return err
	}

	ttl := int(s.exp.Seconds())
	if ttl < 0 {
		ttl = 0
	}
	if err := s.cache.Set([]byte(rateTableKey(base)), data, ttl); err != nil {
		return fmt.Errorf("failed to store rate table %s: %w", base, err)
	}
	return nil
}
