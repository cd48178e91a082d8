package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/domain/entities"
	"taskmanager/internal/taskmanager/ports/cache"
	"taskmanager/internal/taskmanager/ports/repositories"
	"taskmanager/pkg/logger"
)

const (
	userKeyPrefix = "user:"

	logCacheHit        = "user cache hit"
	logCacheMiss       = "user cache miss"
	logCacheReadFail   = "user cache read failed, falling back to repository"
	logCacheWriteFail  = "user cache write failed"
	logCacheEvictFail  = "user cache eviction failed"
	logCacheDecodeFail = "cached user could not be decoded"
)

// UserRepository is a read-through cache in front of another UserRepository.
// Only FindByIdentifyNumber is cached; writes evict the entry. Cache failures
// are logged and never returned.
type UserRepository struct {
	next  repositories.UserRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewUserRepository decorates next with c. A zero ttl uses the cache default.
func NewUserRepository(next repositories.UserRepository, c cache.Cache, ttl time.Duration) repositories.UserRepository {
	return &UserRepository{next: next, cache: c, ttl: ttl}
}

// UserKey returns the cache key for a user.
func UserKey(identifyNumber int64) string {
	return userKeyPrefix + strconv.FormatInt(identifyNumber, 10)
}

// Create delegates to the wrapped repository.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	return r.next.Create(ctx, user)
}

// FindByIdentifyNumber serves from the cache when possible.
func (r *UserRepository) FindByIdentifyNumber(ctx context.Context, identifyNumber int64) (*entities.User, error) {
	key := UserKey(identifyNumber)
	log := logger.Log(ctx).With(zap.String("repository", "user_cache"), zap.String("key", key))

	raw, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn(ctx, logCacheReadFail, zap.Error(err))
	case raw != "":
		var user entities.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			log.Debug(ctx, logCacheHit)
			return &user, nil
		}
		log.Warn(ctx, logCacheDecodeFail)
	default:
		log.Debug(ctx, logCacheMiss)
	}

	user, err := r.next.FindByIdentifyNumber(ctx, identifyNumber)
	if err != nil {
		return nil, err
	}

	r.store(ctx, log, key, user)
	return user, nil
}

// FindByEmail delegates to the wrapped repository.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.next.FindByEmail(ctx, email)
}

// FindAll delegates to the wrapped repository.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	return r.next.FindAll(ctx)
}

// Update delegates and refreshes the cached entry.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	key := UserKey(user.IdentifyNumber)
	log := logger.Log(ctx).With(zap.String("repository", "user_cache"), zap.String("key", key))

	r.evict(ctx, log, key)

	updated, err := r.next.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	r.store(ctx, log, key, updated)
	return updated, nil
}

// Delete evicts the entry and delegates.
func (r *UserRepository) Delete(ctx context.Context, identifyNumber int64) error {
	key := UserKey(identifyNumber)
	log := logger.Log(ctx).With(zap.String("repository", "user_cache"), zap.String("key", key))

	if err := r.next.Delete(ctx, identifyNumber); err != nil {
		return err
	}

	r.evict(ctx, log, key)
	return nil
}

func (r *UserRepository) store(ctx context.Context, log *logger.Logger, key string, user *entities.User) {
	payload, err := json.Marshal(user)
	if err != nil {
		log.Warn(ctx, logCacheWriteFail, zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, key, string(payload), r.ttl); err != nil {
		log.Warn(ctx, logCacheWriteFail, zap.Error(err))
	}
}

func (r *UserRepository) evict(ctx context.Context, log *logger.Logger, key string) {
	if err := r.cache.Delete(ctx, key); err != nil {
		log.Warn(ctx, logCacheEvictFail, zap.Error(err))
	}
}
