package repositories

import (
	"context"
	"fmt"

	"KuskoDento/cache"
	"KuskoDento/database"
	"KuskoDento/models"
)

type AppointmentRepository struct {
	store *database.Store
	cache *cache.Cache
}

func NewAppointmentRepository(store *database.Store, cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{store: store, cache: cache}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.save(ctx, appointment)
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.save(ctx, appointment)
}

func (r *AppointmentRepository) save(ctx context.Context, appointment *models.Appointment) error {
	if appointment.Status != models.StatusAssigned && appointment.Status != models.StatusAttended {
		return fmt.Errorf("invalid status value: %s", appointment.Status)
	}
	if err := r.store.Put(ctx, appointment.Collection(), appointment); err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}
	return r.invalidate(ctx, appointment.ID)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	cacheKey := recordCacheKey(models.Appointment{}.Collection(), id)
	if cached := fromCache[models.Appointment](ctx, r.cache, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := r.store.GetByID(ctx, models.Appointment{}.Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	appointment, err := decodeOne[models.Appointment](raw)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, appointment)
	return appointment, nil
}

func (r *AppointmentRepository) GetAll(ctx context.Context) ([]models.Appointment, error) {
	cacheKey := listCacheKey(models.Appointment{}.Collection())
	if cached := fromCache[[]models.Appointment](ctx, r.cache, cacheKey); cached != nil {
		return *cached, nil
	}

	raws, err := r.store.GetAll(ctx, models.Appointment{}.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments: %w", err)
	}
	appointments, err := decodeAll[models.Appointment](raws)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, appointments)
	return appointments, nil
}

// FindConflict returns an existing appointment booking the same practitioner
// at the identical (date, time) slot, or nil when the slot is free. The
// lookup is a linear scan with exact string equality; no duration overlap is
// considered.
func (r *AppointmentRepository) FindConflict(ctx context.Context, doctorID, date, timeOfDay string) (*models.Appointment, error) {
	appointments, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		a := &appointments[i]
		if a.DoctorID == doctorID && a.Date == date && a.Time == timeOfDay {
			return a, nil
		}
	}
	return nil, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.Appointment{}.Collection(), id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return r.invalidate(ctx, id)
}

func (r *AppointmentRepository) invalidate(ctx context.Context, id string) error {
	collection := models.Appointment{}.Collection()
	if err := r.cache.Delete(ctx, recordCacheKey(collection, id)); err != nil {
		return fmt.Errorf("failed to delete appointment cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(collection))
}
