package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-directory-service/internal/adapter/cache"
	domain "user-directory-service/internal/domain/user"
	"user-directory-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
// Only lookups by ID are served from cache; the email pre-check and the
// listing always read the store so uniqueness and completeness hold.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

var _ user.Repository = (*CachedUserRepository)(nil)

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Insert stores the user and primes the cache with the stored projection.
func (r *CachedUserRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	created, err := r.dbRepo.Insert(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, created); err != nil {
		r.log.Warn("failed to cache created user", zap.String("id", created.ID), zap.Error(err))
	}

	return created, nil
}

// FindByID retrieves a user by ID using Cache-Aside pattern.
func (r *CachedUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	cachedUser, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to database", zap.String("id", id), zap.Error(err))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	// Cache miss - use single-flight to prevent stampede
	result, err, _ := r.group.Do(id, func() (any, error) {
		// Another caller may have populated the cache while we waited
		if cachedUser, err := r.cache.Get(ctx, id); err == nil && cachedUser != nil {
			return cachedUser, nil
		}

		u, err := r.dbRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(ctx, u); err != nil {
			r.log.Warn("failed to cache user", zap.String("id", id), zap.Error(err))
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// FindByEmail delegates to the DB repository.
func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.FindByEmail(ctx, email)
}

// FindAll delegates to the DB repository.
func (r *CachedUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.FindAll(ctx)
}
