package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"KuskoDento/models"

	"github.com/pkg/errors"
)

// Sidecar keys. The settings table lives next to the record collections but
// is not one of them: it is not touched by export/import and holds the
// session marker and the clinic display configuration.
const (
	sessionKey      = "kd_session"
	clinicConfigKey = "kd_clinic_config"
)

func (s *Store) getSetting(ctx context.Context, key string, out interface{}) (bool, error) {
	if err := s.Init(ctx); err != nil {
		return false, err
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to read setting %s", key)
	}
	if err := json.Unmarshal(value, out); err != nil {
		return false, errors.Wrapf(err, "failed to decode setting %s", key)
	}
	return true, nil
}

func (s *Store) putSetting(ctx context.Context, key string, value interface{}) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode setting %s", key)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, payload)
	if err != nil {
		return errors.Wrapf(err, "failed to write setting %s", key)
	}
	return nil
}

func (s *Store) deleteSetting(ctx context.Context, key string) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "failed to delete setting %s", key)
	}
	return nil
}

// SaveSession persists the logged-in identity marker.
func (s *Store) SaveSession(ctx context.Context, session models.Session) error {
	return s.putSetting(ctx, sessionKey, session)
}

// LoadSession returns the persisted session marker, or nil when nobody is
// logged in.
func (s *Store) LoadSession(ctx context.Context) (*models.Session, error) {
	var session models.Session
	found, err := s.getSetting(ctx, sessionKey, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

// ClearSession removes the session marker on logout.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.deleteSetting(ctx, sessionKey)
}

// SaveClinicConfig persists the clinic display configuration.
func (s *Store) SaveClinicConfig(ctx context.Context, config models.ClinicConfig) error {
	return s.putSetting(ctx, clinicConfigKey, config)
}

// LoadClinicConfig returns the clinic display configuration, falling back to
// the defaults when none was saved yet.
func (s *Store) LoadClinicConfig(ctx context.Context) (models.ClinicConfig, error) {
	config := models.ClinicConfig{
		ClinicName:     "KuskoDento",
		ClinicSubtitle: "Clínica Odontológica",
	}
	if _, err := s.getSetting(ctx, clinicConfigKey, &config); err != nil {
		return models.ClinicConfig{}, err
	}
	if config.ClinicName == "" {
		config.ClinicName = "KuskoDento"
	}
	if config.ClinicSubtitle == "" {
		config.ClinicSubtitle = "Clínica Odontológica"
	}
	return config, nil
}
