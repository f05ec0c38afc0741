package repositories

import (
	"context"
	"fmt"

	"KuskoDento/cache"
	"KuskoDento/database"
	"KuskoDento/models"
)

type UserRepository struct {
	store *database.Store
	cache *cache.Cache
}

func NewUserRepository(store *database.Store, cache *cache.Cache) *UserRepository {
	return &UserRepository{store: store, cache: cache}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.save(ctx, user)
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.save(ctx, user)
}

func (r *UserRepository) save(ctx context.Context, user *models.User) error {
	if err := r.store.Put(ctx, user.Collection(), user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return r.invalidate(ctx, user.ID)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	cacheKey := recordCacheKey(models.User{}.Collection(), id)
	if cached := fromCache[models.User](ctx, r.cache, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := r.store.GetByID(ctx, models.User{}.Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	user, err := decodeOne[models.User](raw)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, user)
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	cacheKey := listCacheKey(models.User{}.Collection())
	if cached := fromCache[[]models.User](ctx, r.cache, cacheKey); cached != nil {
		return *cached, nil
	}

	raws, err := r.store.GetAll(ctx, models.User{}.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	users, err := decodeAll[models.User](raws)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, users)
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	users, err := r.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.User{}.Collection(), id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return r.invalidate(ctx, id)
}

func (r *UserRepository) invalidate(ctx context.Context, id string) error {
	collection := models.User{}.Collection()
	if err := r.cache.Delete(ctx, recordCacheKey(collection, id)); err != nil {
		return fmt.Errorf("failed to delete user cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(collection))
}
