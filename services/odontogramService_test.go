package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"KuskoDento/models"
)

func newOdontogramService(t *testing.T) *OdontogramService {
	t.Helper()
	env := newTestEnv(t)
	return NewOdontogramService(env.odontograms)
}

func TestSaveSnapshotsAreAppendOnly(t *testing.T) {
	service := newOdontogramService(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	ticks := 0
	service.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Minute)
	}

	first, err := service.Save(ctx, "p1", map[string]models.ToothRecord{
		"11": {Surfaces: models.ToothSurfaces{Top: "caries"}, GlobalState: models.ToothStateNone},
	}, "caries incipiente")
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := service.Save(ctx, "p1", map[string]models.ToothRecord{
		"11": {GlobalState: models.ToothStateCrown},
	}, "corona colocada")
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("snapshots must get fresh ids")
	}

	history, err := service.History(ctx, "p1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(history))
	}
	// Newest first; the earlier snapshot keeps its original content.
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Fatal("history not ordered newest first")
	}
	if history[1].Teeth["11"].Surfaces.Top != "caries" {
		t.Fatalf("prior snapshot was modified: %+v", history[1].Teeth["11"])
	}
}

func TestCurrentResolvesByTimestamp(t *testing.T) {
	service := newOdontogramService(t)
	ctx := context.Background()

	current, err := service.Current(ctx, "p1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current != nil {
		t.Fatalf("expected nil for patient without snapshots, got %+v", current)
	}

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	ticks := 0
	service.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}
	if _, err := service.Save(ctx, "p1", nil, "primero"); err != nil {
		t.Fatalf("save: %v", err)
	}
	latest, err := service.Save(ctx, "p1", nil, "segundo")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	current, err = service.Current(ctx, "p1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current == nil || current.ID != latest.ID {
		t.Fatalf("current did not resolve to latest snapshot: %+v", current)
	}
}

func TestSaveRejectsInvalidChart(t *testing.T) {
	service := newOdontogramService(t)
	ctx := context.Background()

	if _, err := service.Save(ctx, "", nil, ""); err == nil {
		t.Fatal("expected error for missing patient id")
	}
	if _, err := service.Save(ctx, "p1", map[string]models.ToothRecord{
		"99": {GlobalState: models.ToothStateCrown},
	}, ""); err == nil {
		t.Fatal("expected error for unknown FDI tooth number")
	}
	if _, err := service.Save(ctx, "p1", map[string]models.ToothRecord{
		"11": {GlobalState: "implant"},
	}, ""); err == nil {
		t.Fatal("expected error for unknown global state")
	}
}

func TestApplySurfaceToolToggles(t *testing.T) {
	teeth := ResetChart()

	if err := ApplySurfaceTool(teeth, "11", SurfaceTop, "caries"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if teeth["11"].Surfaces.Top != "caries" {
		t.Fatalf("tag not applied: %+v", teeth["11"])
	}

	// Applying the same tag again toggles the surface back to healthy.
	if err := ApplySurfaceTool(teeth, "11", SurfaceTop, "caries"); err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if teeth["11"].Surfaces.Top != models.FindingHealthy {
		t.Fatalf("expected healthy after toggle, got %q", teeth["11"].Surfaces.Top)
	}

	// A different tag replaces rather than toggles.
	if err := ApplySurfaceTool(teeth, "11", SurfaceTop, "caries"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := ApplySurfaceTool(teeth, "11", SurfaceTop, "restauracion"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if teeth["11"].Surfaces.Top != "restauracion" {
		t.Fatalf("expected replacement tag, got %q", teeth["11"].Surfaces.Top)
	}
}

func TestApplySurfaceToolValidation(t *testing.T) {
	teeth := ResetChart()

	if err := ApplySurfaceTool(teeth, "99", SurfaceTop, "caries"); !errors.Is(err, ErrUnknownTooth) {
		t.Fatalf("expected ErrUnknownTooth, got %v", err)
	}
	if err := ApplySurfaceTool(teeth, "11", "diagonal", "caries"); !errors.Is(err, ErrUnknownSurface) {
		t.Fatalf("expected ErrUnknownSurface, got %v", err)
	}
	if len(teeth) != 0 {
		t.Fatalf("rejected edits must not touch the chart: %v", teeth)
	}
}

func TestApplyWholeToothToolIndependentOfSurfaces(t *testing.T) {
	teeth := ResetChart()

	if err := ApplySurfaceTool(teeth, "21", SurfaceCenter, "caries"); err != nil {
		t.Fatalf("surface: %v", err)
	}
	if err := ApplyWholeToothTool(teeth, "21", models.ToothStateCrown); err != nil {
		t.Fatalf("whole tooth: %v", err)
	}
	record := teeth["21"]
	if record.GlobalState != models.ToothStateCrown {
		t.Fatalf("global state not set: %+v", record)
	}
	if record.Surfaces.Center != "caries" {
		t.Fatalf("surface tag lost when setting global state: %+v", record)
	}

	// Same state toggles back to none.
	if err := ApplyWholeToothTool(teeth, "21", models.ToothStateCrown); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if teeth["21"].GlobalState != models.ToothStateNone {
		t.Fatalf("expected none after toggle, got %q", teeth["21"].GlobalState)
	}

	if err := ApplyWholeToothTool(teeth, "21", "implant"); err == nil {
		t.Fatal("expected error for unknown whole-tooth state")
	}
}

func TestResetChartDoesNotTouchSnapshots(t *testing.T) {
	service := newOdontogramService(t)
	ctx := context.Background()

	if _, err := service.Save(ctx, "p1", map[string]models.ToothRecord{
		"11": {GlobalState: models.ToothStateMissing},
	}, ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	working := ResetChart()
	if len(working) != 0 {
		t.Fatalf("expected empty working chart, got %v", working)
	}

	history, err := service.History(ctx, "p1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("reset must not delete snapshots, got %d", len(history))
	}
}

func TestFindingSummaryCountsTagsAcrossChart(t *testing.T) {
	snapshot := models.Odontogram{
		Teeth: map[string]models.ToothRecord{
			"11": {Surfaces: models.ToothSurfaces{Top: "caries", Center: "caries"}, GlobalState: models.ToothStateNone},
			"12": {Surfaces: models.ToothSurfaces{Bottom: "restauracion", Left: models.FindingHealthy}},
			"21": {GlobalState: models.ToothStateCrown},
			"22": {GlobalState: models.ToothStateCrown},
		},
	}

	summary := FindingSummary(snapshot)
	want := []models.FindingCount{
		{Tag: "caries", Count: 2},
		{Tag: models.ToothStateCrown, Count: 2},
		{Tag: "restauracion", Count: 1},
	}
	if len(summary) != len(want) {
		t.Fatalf("got %v, want %v", summary, want)
	}
	for i := range want {
		if summary[i] != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, summary[i], want[i])
		}
	}
}

func TestSupernumeraryAndPrimaryTeethAreValid(t *testing.T) {
	teeth := ResetChart()
	// Primary dentition quadrants 5-8 chart positions 1-5.
	for _, tooth := range []string{"51", "55", "65", "75", "85"} {
		if err := ApplySurfaceTool(teeth, tooth, SurfaceCenter, "caries"); err != nil {
			t.Fatalf("tooth %s should be valid: %v", tooth, err)
		}
	}
	// Position 6 only exists in permanent quadrants.
	for _, tooth := range []string{"56", "86", "19", "40"} {
		if err := ApplySurfaceTool(teeth, tooth, SurfaceCenter, "caries"); !errors.Is(err, ErrUnknownTooth) {
			t.Fatalf("tooth %s should be rejected, got %v", tooth, err)
		}
	}
}

func TestHistoryOrdersSubsecondSnapshots(t *testing.T) {
	service := newOdontogramService(t)
	ctx := context.Background()

	// A whole-second timestamp serializes without a fraction ("...:00Z")
	// while a later one in the same second keeps it ("...:00.5Z"); ordering
	// must still be chronological, not textual.
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	stamps := []time.Time{base, base.Add(500 * time.Millisecond)}
	service.now = func() time.Time {
		next := stamps[0]
		stamps = stamps[1:]
		return next
	}

	older, err := service.Save(ctx, "p1", map[string]models.ToothRecord{
		"11": {GlobalState: models.ToothStateNone},
	}, "")
	if err != nil {
		t.Fatalf("save older: %v", err)
	}
	newer, err := service.Save(ctx, "p1", map[string]models.ToothRecord{
		"11": {GlobalState: models.ToothStateCrown},
	}, "")
	if err != nil {
		t.Fatalf("save newer: %v", err)
	}

	history, err := service.History(ctx, "p1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(history))
	}
	if history[0].ID != newer.ID || history[1].ID != older.ID {
		t.Fatalf("history misordered: got %s before %s", history[0].Date, history[1].Date)
	}

	current, err := service.Current(ctx, "p1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current == nil || current.ID != newer.ID {
		t.Fatal("current must resolve to the fractional, newer snapshot")
	}
}
