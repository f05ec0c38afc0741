package repositories

import (
	"context"
	"fmt"
	"sort"
	"time"

	"KuskoDento/cache"
	"KuskoDento/database"
	"KuskoDento/models"
)

type OdontogramRepository struct {
	store *database.Store
	cache *cache.Cache
}

func NewOdontogramRepository(store *database.Store, cache *cache.Cache) *OdontogramRepository {
	return &OdontogramRepository{store: store, cache: cache}
}

// Create inserts a new snapshot. Snapshots are immutable: there is no update
// method on this repository.
func (r *OdontogramRepository) Create(ctx context.Context, odontogram *models.Odontogram) error {
	if err := r.store.Put(ctx, odontogram.Collection(), odontogram); err != nil {
		return fmt.Errorf("failed to save odontogram: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(odontogram.Collection()))
}

func (r *OdontogramRepository) GetByID(ctx context.Context, id string) (*models.Odontogram, error) {
	cacheKey := recordCacheKey(models.Odontogram{}.Collection(), id)
	if cached := fromCache[models.Odontogram](ctx, r.cache, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := r.store.GetByID(ctx, models.Odontogram{}.Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get odontogram: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	snapshot, err := decodeOne[models.Odontogram](raw)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, snapshot)
	return snapshot, nil
}

func (r *OdontogramRepository) GetAll(ctx context.Context) ([]models.Odontogram, error) {
	cacheKey := listCacheKey(models.Odontogram{}.Collection())
	if cached := fromCache[[]models.Odontogram](ctx, r.cache, cacheKey); cached != nil {
		return *cached, nil
	}

	raws, err := r.store.GetAll(ctx, models.Odontogram{}.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to get odontograms: %w", err)
	}
	snapshots, err := decodeAll[models.Odontogram](raws)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, snapshots)
	return snapshots, nil
}

// GetByPatient returns every snapshot of a patient, newest first. Dates are
// RFC 3339 timestamps and are parsed for ordering: the textual form trims
// trailing fraction zeros, so lexical comparison would misorder a
// whole-second stamp against a fractional one within the same second.
func (r *OdontogramRepository) GetByPatient(ctx context.Context, patientID string) ([]models.Odontogram, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	history := []models.Odontogram{}
	for _, snapshot := range all {
		if snapshot.PatientID == patientID {
			history = append(history, snapshot)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		ti, erri := time.Parse(time.RFC3339Nano, history[i].Date)
		tj, errj := time.Parse(time.RFC3339Nano, history[j].Date)
		if erri != nil || errj != nil {
			return history[i].Date > history[j].Date
		}
		return ti.After(tj)
	})
	return history, nil
}

func (r *OdontogramRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.Odontogram{}.Collection(), id); err != nil {
		return fmt.Errorf("failed to delete odontogram: %w", err)
	}
	collection := models.Odontogram{}.Collection()
	if err := r.cache.Delete(ctx, recordCacheKey(collection, id)); err != nil {
		return fmt.Errorf("failed to delete odontogram cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(collection))
}
