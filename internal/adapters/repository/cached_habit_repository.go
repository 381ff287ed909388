package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

const (
	CollectionCacheKey = "habits:collection"
	DefaultCacheTTL    = 30 * time.Minute
)

type CachedHabitRepository struct {
	next   domain.HabitRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedHabitRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedHabitRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("cache"),
	}
}

func (r *CachedHabitRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, CollectionCacheKey).Err(); err != nil {
		r.logger.Warn("failed to invalidate habits", zap.Error(err))
	}
}

func (r *CachedHabitRepository) Load(ctx context.Context) ([]domain.Habit, error) {
	val, err := r.cache.Get(ctx, CollectionCacheKey).Bytes()
	if err == nil {
		var habits []domain.Habit
		if err := json.Unmarshal(val, &habits); err == nil {
			return sanitize(habits), nil
		}

		r.logger.Warn("corrupted cache entry, cleaning up key", zap.String("key", CollectionCacheKey))
		r.cache.Del(ctx, CollectionCacheKey)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", zap.Error(err))
	}

	habits, err := r.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(habits); err == nil {
		if setErr := r.cache.Set(ctx, CollectionCacheKey, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("redis set error", zap.Error(setErr))
		}
	}

	return habits, nil
}

func (r *CachedHabitRepository) Save(ctx context.Context, habits []domain.Habit) error {
	if err := r.next.Save(ctx, habits); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}
