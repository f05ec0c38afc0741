package repositories

import (
	"context"
	"fmt"

	"KuskoDento/cache"
	"KuskoDento/database"
	"KuskoDento/models"
)

type PatientTreatmentRepository struct {
	store *database.Store
	cache *cache.Cache
}

func NewPatientTreatmentRepository(store *database.Store, cache *cache.Cache) *PatientTreatmentRepository {
	return &PatientTreatmentRepository{store: store, cache: cache}
}

func (r *PatientTreatmentRepository) Create(ctx context.Context, record *models.PatientTreatment) error {
	return r.save(ctx, record)
}

func (r *PatientTreatmentRepository) Update(ctx context.Context, record *models.PatientTreatment) error {
	return r.save(ctx, record)
}

func (r *PatientTreatmentRepository) save(ctx context.Context, record *models.PatientTreatment) error {
	if err := r.store.Put(ctx, record.Collection(), record); err != nil {
		return fmt.Errorf("failed to save patient treatment: %w", err)
	}
	return r.invalidate(ctx, record.ID)
}

func (r *PatientTreatmentRepository) GetByID(ctx context.Context, id string) (*models.PatientTreatment, error) {
	cacheKey := recordCacheKey(models.PatientTreatment{}.Collection(), id)
	if cached := fromCache[models.PatientTreatment](ctx, r.cache, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := r.store.GetByID(ctx, models.PatientTreatment{}.Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient treatment: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	record, err := decodeOne[models.PatientTreatment](raw)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, record)
	return record, nil
}

func (r *PatientTreatmentRepository) GetAll(ctx context.Context) ([]models.PatientTreatment, error) {
	cacheKey := listCacheKey(models.PatientTreatment{}.Collection())
	if cached := fromCache[[]models.PatientTreatment](ctx, r.cache, cacheKey); cached != nil {
		return *cached, nil
	}

	raws, err := r.store.GetAll(ctx, models.PatientTreatment{}.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to get patient treatments: %w", err)
	}
	records, err := decodeAll[models.PatientTreatment](raws)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, records)
	return records, nil
}

func (r *PatientTreatmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.PatientTreatment{}.Collection(), id); err != nil {
		return fmt.Errorf("failed to delete patient treatment: %w", err)
	}
	return r.invalidate(ctx, id)
}

func (r *PatientTreatmentRepository) invalidate(ctx context.Context, id string) error {
	collection := models.PatientTreatment{}.Collection()
	if err := r.cache.Delete(ctx, recordCacheKey(collection, id)); err != nil {
		return fmt.Errorf("failed to delete patient treatment cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(collection))
}
