package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"KuskoDento/models"
)

func TestBackupExportFileName(t *testing.T) {
	env := newTestEnv(t)
	service := NewBackupService(env.store, env.cache)

	_, fileName, err := service.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := fmt.Sprintf("kuskodento_backup_%s.json", time.Now().Format("2006-01-02"))
	if fileName != want {
		t.Fatalf("got %q, want %q", fileName, want)
	}
}

func TestBackupServiceRoundTrip(t *testing.T) {
	source := newTestEnv(t)
	ctx := context.Background()

	if err := source.patients.Create(ctx, &models.Patient{ID: "p1", DNI: "12345678", Names: "Ana", LastNames: "Quispe", Phone: "984111222", Address: "Cusco"}); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	if err := source.store.Put(ctx, "radiographs", models.Radiograph{
		ID: "r1", PatientID: "p1", FileName: "molar.png", FileType: "image/png",
		FileBlob: []byte{1, 2, 3, 4}, Date: "2026-08-29",
	}); err != nil {
		t.Fatalf("put radiograph: %v", err)
	}

	data, _, err := NewBackupService(source.store, source.cache).Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	target := newTestEnv(t)

	// Warm the target's cache with the empty listing; the import must flush
	// it so restored records become visible.
	if existing, err := target.patients.GetAll(ctx); err != nil || len(existing) != 0 {
		t.Fatalf("expected empty target, got %d patients (err %v)", len(existing), err)
	}

	if err := NewBackupService(target.store, target.cache).Import(ctx, data); err != nil {
		t.Fatalf("import: %v", err)
	}

	patient, err := target.patients.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get patient: %v", err)
	}
	if patient == nil || patient.Names != "Ana" {
		t.Fatalf("patient not restored: %+v", patient)
	}
	restored, err := target.patients.GetAll(ctx)
	if err != nil {
		t.Fatalf("list patients: %v", err)
	}
	if len(restored) != 1 {
		t.Fatalf("expected 1 restored patient in listing, got %d", len(restored))
	}

	raw, err := target.store.GetByID(ctx, "radiographs", "r1")
	if err != nil {
		t.Fatalf("get radiograph: %v", err)
	}
	if raw == nil {
		t.Fatal("radiograph not restored")
	}
	if !bytes.Contains(raw, []byte(`"fileType":"image/png"`)) {
		t.Fatalf("radiograph metadata lost: %s", raw)
	}
}
