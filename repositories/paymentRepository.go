package repositories

import (
	"context"
	"fmt"

	"KuskoDento/cache"
	"KuskoDento/database"
	"KuskoDento/models"
)

type PaymentRepository struct {
	store *database.Store
	cache *cache.Cache
}

func NewPaymentRepository(store *database.Store, cache *cache.Cache) *PaymentRepository {
	return &PaymentRepository{store: store, cache: cache}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.save(ctx, payment)
}

func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.save(ctx, payment)
}

func (r *PaymentRepository) save(ctx context.Context, payment *models.Payment) error {
	if err := r.store.Put(ctx, payment.Collection(), payment); err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return r.invalidate(ctx, payment.ID)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	cacheKey := recordCacheKey(models.Payment{}.Collection(), id)
	if cached := fromCache[models.Payment](ctx, r.cache, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := r.store.GetByID(ctx, models.Payment{}.Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	payment, err := decodeOne[models.Payment](raw)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, payment)
	return payment, nil
}

func (r *PaymentRepository) GetAll(ctx context.Context) ([]models.Payment, error) {
	cacheKey := listCacheKey(models.Payment{}.Collection())
	if cached := fromCache[[]models.Payment](ctx, r.cache, cacheKey); cached != nil {
		return *cached, nil
	}

	raws, err := r.store.GetAll(ctx, models.Payment{}.Collection())
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	payments, err := decodeAll[models.Payment](raws)
	if err != nil {
		return nil, err
	}
	toCache(ctx, r.cache, cacheKey, payments)
	return payments, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.Payment{}.Collection(), id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return r.invalidate(ctx, id)
}

func (r *PaymentRepository) invalidate(ctx context.Context, id string) error {
	collection := models.Payment{}.Collection()
	if err := r.cache.Delete(ctx, recordCacheKey(collection, id)); err != nil {
		return fmt.Errorf("failed to delete payment cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, listCacheKey(collection))
}
