package repositories

import (
	"context"
	"fmt"

	"KuskoDento/cache"
	"KuskoDento/database"
	"KuskoDento/models"
)

type TreatmentRepository struct {
	store *database.Store
	cache *cache.Cache
}

func NewTreatmentRepository(store *database.Store, cache *cache.Cache) *TreatmentRepository {
	return &TreatmentRepository{store: store, cache: cache}
}

func (r *TreatmentRepository) Create(ctx context.Context, treatment *models.Treatment) error {
	return r.save(ctx, treatment)
}

func (r *TreatmentRepository) Update(ctx context.Context, treatment *models.Treatment) error {
	return r.save(ctx, treatment)
}

func (r *TreatmentRepository) save(ctx context.Context, treatment *models.Treatment) error {
	if err := r.store.Put(ctx, treatment.Collection(), treatment); err != nil {
		return fmt.Errorf("failed to save treatment: %w", err)
	}
	return r.invalidate(ctx, treatment.ID)
}

func (r *TreatmentRepository) GetByID(ctx context.Context, id string) (*models.Treatment, error) {
	cacheKey := recordCacheKey(models.Treatment{}.Collection(), id)
	if cached := fromCache[models.Treatment](ctx, r.cache, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := r.store.GetByID(ctx, models.Treatment{}.Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	treatment, err := decodeOne[models.Treatment](raw)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, treatment)
	return treatment, nil
}

func (r *TreatmentRepository) GetAll(ctx context.Context) ([]models.Treatment, error) {
	cacheKey := listCacheKey(models.Treatment{}.Collection())
	if cached := fromCache[[]models.Treatment](ctx, r.cache, cacheKey); cached != nil {
		return *cached, nil
	}

	raws, err := r.store.GetAll(ctx, models.Treatment{}.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to get treatments: %w", err)
	}
	treatments, err := decodeAll[models.Treatment](raws)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, treatments)
	return treatments, nil
}

func (r *TreatmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.Treatment{}.Collection(), id); err != nil {
		return fmt.Errorf("failed to delete treatment: %w", err)
	}
	return r.invalidate(ctx, id)
}

func (r *TreatmentRepository) invalidate(ctx context.Context, id string) error {
	collection := models.Treatment{}.Collection()
	if err := r.cache.Delete(ctx, recordCacheKey(collection, id)); err != nil {
		return fmt.Errorf("failed to delete treatment cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(collection))
}
