package services

import (
	"context"
	"path/filepath"
	"testing"

	"KuskoDento/cache"
	"KuskoDento/database"
	"KuskoDento/repositories"
)

// testEnv wires repositories over a throwaway store, mirroring the route
// setup.
type testEnv struct {
	store        *database.Store
	cache        *cache.Cache
	patients     *repositories.PatientRepository
	treatments   *repositories.TreatmentRepository
	appointments *repositories.AppointmentRepository
	payments     *repositories.PaymentRepository
	odontograms  *repositories.OdontogramRepository
	users        *repositories.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := database.NewStore(filepath.Join(t.TempDir(), "clinic.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	c, err := cache.NewCache()
	if err != nil {
		t.Fatalf("init cache: %v", err)
	}

	return &testEnv{
		store:        store,
		cache:        c,
		patients:     repositories.NewPatientRepository(store, c),
		treatments:   repositories.NewTreatmentRepository(store, c),
		appointments: repositories.NewAppointmentRepository(store, c),
		payments:     repositories.NewPaymentRepository(store, c),
		odontograms:  repositories.NewOdontogramRepository(store, c),
		users:        repositories.NewUserRepository(store, c),
	}
}

func (e *testEnv) appointmentService() *AppointmentService {
	return NewAppointmentService(e.appointments, e.payments, e.patients, e.treatments, e.users)
}

func (e *testEnv) paymentService() *PaymentService {
	return NewPaymentService(e.payments, e.appointments, e.patients)
}
