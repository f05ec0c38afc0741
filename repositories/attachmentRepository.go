package repositories

import (
	"context"
	"fmt"

	"KuskoDento/cache"
	"KuskoDento/database"
	"KuskoDento/models"
)

// Radiographs and consents share one record shape; each keeps its own
// collection and repository.

type RadiographRepository struct {
	store *database.Store
	cache *cache.Cache
}

func NewRadiographRepository(store *database.Store, cache *cache.Cache) *RadiographRepository {
	return &RadiographRepository{store: store, cache: cache}
}

func (r *RadiographRepository) Create(ctx context.Context, radiograph *models.Radiograph) error {
	if err := r.store.Put(ctx, radiograph.Collection(), radiograph); err != nil {
		return fmt.Errorf("failed to save radiograph: %w", err)
	}
	return r.invalidate(ctx, radiograph.ID)
}

func (r *RadiographRepository) GetByID(ctx context.Context, id string) (*models.Radiograph, error) {
	cacheKey := recordCacheKey(models.Radiograph{}.Collection(), id)
	if cached := fromCache[models.Radiograph](ctx, r.cache, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := r.store.GetByID(ctx, models.Radiograph{}.Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get radiograph: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	radiograph, err := decodeOne[models.Radiograph](raw)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, radiograph)
	return radiograph, nil
}

func (r *RadiographRepository) GetAll(ctx context.Context) ([]models.Radiograph, error) {
	cacheKey := listCacheKey(models.Radiograph{}.Collection())
	if cached := fromCache[[]models.Radiograph](ctx, r.cache, cacheKey); cached != nil {
		return *cached, nil
	}

	raws, err := r.store.GetAll(ctx, models.Radiograph{}.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to get radiographs: %w", err)
	}
	radiographs, err := decodeAll[models.Radiograph](raws)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, radiographs)
	return radiographs, nil
}

func (r *RadiographRepository) GetByPatient(ctx context.Context, patientID string) ([]models.Radiograph, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Radiograph{}
	for _, radiograph := range all {
		if radiograph.PatientID == patientID {
			matched = append(matched, radiograph)
		}
	}
	return matched, nil
}

func (r *RadiographRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.Radiograph{}.Collection(), id); err != nil {
		return fmt.Errorf("failed to delete radiograph: %w", err)
	}
	return r.invalidate(ctx, id)
}

func (r *RadiographRepository) invalidate(ctx context.Context, id string) error {
	collection := models.Radiograph{}.Collection()
	if err := r.cache.Delete(ctx, recordCacheKey(collection, id)); err != nil {
		return fmt.Errorf("failed to delete radiograph cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(collection))
}

type ConsentRepository struct {
	store *database.Store
	cache *cache.Cache
}

func NewConsentRepository(store *database.Store, cache *cache.Cache) *ConsentRepository {
	return &ConsentRepository{store: store, cache: cache}
}

func (r *ConsentRepository) Create(ctx context.Context, consent *models.Consent) error {
	if err := r.store.Put(ctx, consent.Collection(), consent); err != nil {
		return fmt.Errorf("failed to save consent: %w", err)
	}
	return r.invalidate(ctx, consent.ID)
}

func (r *ConsentRepository) GetByID(ctx context.Context, id string) (*models.Consent, error) {
	cacheKey := recordCacheKey(models.Consent{}.Collection(), id)
	if cached := fromCache[models.Consent](ctx, r.cache, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := r.store.GetByID(ctx, models.Consent{}.Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get consent: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	consent, err := decodeOne[models.Consent](raw)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, consent)
	return consent, nil
}

func (r *ConsentRepository) GetAll(ctx context.Context) ([]models.Consent, error) {
	cacheKey := listCacheKey(models.Consent{}.Collection())
	if cached := fromCache[[]models.Consent](ctx, r.cache, cacheKey); cached != nil {
		return *cached, nil
	}

	raws, err := r.store.GetAll(ctx, models.Consent{}.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to get consents: %w", err)
	}
	consents, err := decodeAll[models.Consent](raws)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, consents)
	return consents, nil
}

func (r *ConsentRepository) GetByPatient(ctx context.Context, patientID string) ([]models.Consent, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Consent{}
	for _, consent := range all {
		if consent.PatientID == patientID {
			matched = append(matched, consent)
		}
	}
	return matched, nil
}

func (r *ConsentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.Consent{}.Collection(), id); err != nil {
		return fmt.Errorf("failed to delete consent: %w", err)
	}
	return r.invalidate(ctx, id)
}

func (r *ConsentRepository) invalidate(ctx context.Context, id string) error {
	collection := models.Consent{}.Collection()
	if err := r.cache.Delete(ctx, recordCacheKey(collection, id)); err != nil {
		return fmt.Errorf("failed to delete consent cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(collection))
}
