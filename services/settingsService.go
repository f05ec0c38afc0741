package services

import (
	"context"

	"KuskoDento/database"
	"KuskoDento/models"
)

// SettingsService exposes the clinic display configuration kept in the
// sidecar settings store.
type SettingsService struct {
	store *database.Store
}

func NewSettingsService(store *database.Store) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) GetClinicConfig(ctx context.Context) (models.ClinicConfig, error) {
	return s.store.LoadClinicConfig(ctx)
}

func (s *SettingsService) SaveClinicConfig(ctx context.Context, config models.ClinicConfig) error {
	return s.store.SaveClinicConfig(ctx, config)
}
