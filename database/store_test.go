package database

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"KuskoDento/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "clinic.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreInitIsIdempotent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "clinic.db"))
	t.Cleanup(func() { _ = store.Close() })

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Init(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("init %d: %v", i, err)
		}
	}
	if err := store.Put(context.Background(), "patients", models.Patient{ID: "p1", DNI: "12345678"}); err != nil {
		t.Fatalf("put after concurrent init: %v", err)
	}
}

func TestStorePutAndGetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	patient := models.Patient{ID: "p1", DNI: "12345678", Names: "Ana", LastNames: "Quispe"}
	if err := store.Put(ctx, "patients", patient); err != nil {
		t.Fatalf("put: %v", err)
	}

	raw, err := store.GetByID(ctx, "patients", "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var got models.Patient
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != patient {
		t.Fatalf("got %+v, want %+v", got, patient)
	}
}

func TestStoreGetByIDMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	raw, err := store.GetByID(context.Background(), "patients", "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected nil for missing record, got %s", raw)
	}
}

func TestStorePutOverwritesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "treatments", models.Treatment{ID: "t1", Name: "Limpieza", Price: 80}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "treatments", models.Treatment{ID: "t1", Name: "Limpieza dental", Price: 100}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	records, err := store.GetAll(ctx, "treatments")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after overwrite, got %d", len(records))
	}
	var got models.Treatment
	if err := json.Unmarshal(records[0], &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "Limpieza dental" || got.Price != 100 {
		t.Fatalf("overwrite not applied: %+v", got)
	}
}

func TestStorePutRejectsEmptyID(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put(context.Background(), "patients", models.Patient{DNI: "12345678"}); err == nil {
		t.Fatal("expected error for record without id")
	}
}

func TestStoreDeleteMissingIsNoOp(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete(context.Background(), "patients", "nope"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestStoreUnknownCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetAll(ctx, "unicorns"); !errors.Is(err, ErrUnknownCollection) {
		t.Fatalf("get all: expected ErrUnknownCollection, got %v", err)
	}
	if err := store.Put(ctx, "unicorns", models.Patient{ID: "p1"}); !errors.Is(err, ErrUnknownCollection) {
		t.Fatalf("put: expected ErrUnknownCollection, got %v", err)
	}
	if err := store.Clear(ctx, "unicorns"); !errors.Is(err, ErrUnknownCollection) {
		t.Fatalf("clear: expected ErrUnknownCollection, got %v", err)
	}
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		if err := store.Put(ctx, "patients", models.Patient{ID: id, DNI: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	if err := store.Clear(ctx, "patients"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, err := store.GetAll(ctx, "patients")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty collection after clear, got %d records", len(records))
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clinic.db")
	ctx := context.Background()

	store := NewStore(path)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.Put(ctx, "patients", models.Patient{ID: "p1", DNI: "12345678"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Init(ctx); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	raw, err := reopened.GetByID(ctx, "patients", "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if raw == nil {
		t.Fatal("record lost across reopen")
	}
}

func TestStoreSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	loaded, err := store.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected no session initially, got %+v", loaded)
	}

	session := models.Session{UserID: "u1", Username: "admin", Role: models.RoleAdmin, LoginAt: "2026-08-29T10:00:00Z"}
	if err := store.SaveSession(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err = store.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || *loaded != session {
		t.Fatalf("got %+v, want %+v", loaded, session)
	}

	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	loaded, err = store.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected session cleared, got %+v", loaded)
	}
}

func TestStoreClinicConfigDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	config, err := store.LoadClinicConfig(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if config.ClinicName != "KuskoDento" || config.ClinicSubtitle != "Clínica Odontológica" {
		t.Fatalf("unexpected defaults: %+v", config)
	}

	config.ClinicName = "Sonrisa Andina"
	config.ClinicPhone = "984123456"
	if err := store.SaveClinicConfig(ctx, config); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.LoadClinicConfig(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded != config {
		t.Fatalf("got %+v, want %+v", loaded, config)
	}
}
