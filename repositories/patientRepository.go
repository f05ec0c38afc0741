package repositories

import (
	"context"
	"fmt"

	"KuskoDento/cache"
	"KuskoDento/database"
	"KuskoDento/models"
)

type PatientRepository struct {
	store *database.Store
	cache *cache.Cache
}

func NewPatientRepository(store *database.Store, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{store: store, cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.save(ctx, patient)
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return r.save(ctx, patient)
}

func (r *PatientRepository) save(ctx context.Context, patient *models.Patient) error {
	if err := r.store.Put(ctx, patient.Collection(), patient); err != nil {
		return fmt.Errorf("failed to save patient: %w", err)
	}
	return r.invalidate(ctx, patient.ID)
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	cacheKey := recordCacheKey(models.Patient{}.Collection(), id)
	if cached := fromCache[models.Patient](ctx, r.cache, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := r.store.GetByID(ctx, models.Patient{}.Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	patient, err := decodeOne[models.Patient](raw)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, patient)
	return patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	cacheKey := listCacheKey(models.Patient{}.Collection())
	if cached := fromCache[[]models.Patient](ctx, r.cache, cacheKey); cached != nil {
		return *cached, nil
	}

	raws, err := r.store.GetAll(ctx, models.Patient{}.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to get patients: %w", err)
	}
	patients, err := decodeAll[models.Patient](raws)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, patients)
	return patients, nil
}

// Delete removes the patient chart only. Dependent records (appointments,
// payments, attachments, odontograms) are deliberately left in place.
func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.Patient{}.Collection(), id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return r.invalidate(ctx, id)
}

func (r *PatientRepository) invalidate(ctx context.Context, id string) error {
	collection := models.Patient{}.Collection()
	if err := r.cache.Delete(ctx, recordCacheKey(collection, id)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(collection))
}
