package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"KuskoDento/models"
	"KuskoDento/repositories"
	"KuskoDento/utils"

	"github.com/google/uuid"
)

// Chart-editing errors.
var (
	ErrUnknownTooth   = errors.New("unknown FDI tooth number")
	ErrUnknownSurface = errors.New("unknown tooth surface")
)

// Tooth surface names.
const (
	SurfaceTop    = "top"
	SurfaceBottom = "bottom"
	SurfaceLeft   = "left"
	SurfaceRight  = "right"
	SurfaceCenter = "center"
)

type OdontogramService struct {
	odontograms *repositories.OdontogramRepository

	// now is overridable in tests.
	now func() time.Time
}

func NewOdontogramService(odontograms *repositories.OdontogramRepository) *OdontogramService {
	return &OdontogramService{odontograms: odontograms, now: time.Now}
}

// Save persists the working chart as a new immutable snapshot with a fresh
// id and the current timestamp. Prior snapshots are never touched.
func (s *OdontogramService) Save(ctx context.Context, patientID string, teeth map[string]models.ToothRecord, diagnostic string) (*models.Odontogram, error) {
	if teeth == nil {
		teeth = map[string]models.ToothRecord{}
	}
	snapshot := models.Odontogram{
		ID:         uuid.New().String(),
		PatientID:  patientID,
		Teeth:      teeth,
		Diagnostic: diagnostic,
		Date:       s.now().UTC().Format(time.RFC3339Nano),
	}
	if err := utils.ValidateOdontogramData(snapshot); err != nil {
		return nil, err
	}
	if err := s.odontograms.Create(ctx, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Current resolves a patient's chart to the snapshot with the most recent
// date, or nil when the patient has no snapshots yet.
func (s *OdontogramService) Current(ctx context.Context, patientID string) (*models.Odontogram, error) {
	history, err := s.odontograms.GetByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}
	return &history[0], nil
}

// History returns every snapshot of a patient, newest first.
func (s *OdontogramService) History(ctx context.Context, patientID string) ([]models.Odontogram, error) {
	return s.odontograms.GetByPatient(ctx, patientID)
}

// ApplySurfaceTool toggles a single surface of the working chart between
// healthy and the selected finding tag. The chart is caller-local state;
// nothing is persisted until Save.
func ApplySurfaceTool(teeth map[string]models.ToothRecord, tooth, surface, tag string) error {
	if !utils.IsValidTooth(tooth) {
		return ErrUnknownTooth
	}
	record := teeth[tooth]
	if record.GlobalState == "" {
		record.GlobalState = models.ToothStateNone
	}

	current, ok := surfaceValue(record.Surfaces, surface)
	if !ok {
		return ErrUnknownSurface
	}
	next := tag
	if current == tag {
		next = models.FindingHealthy
	}
	setSurface(&record.Surfaces, surface, next)
	teeth[tooth] = record
	return nil
}

// ApplyWholeToothTool toggles a tooth's global state between none and the
// selected state (missing, crown or bridge), independent of surface tags.
func ApplyWholeToothTool(teeth map[string]models.ToothRecord, tooth, state string) error {
	if !utils.IsValidTooth(tooth) {
		return ErrUnknownTooth
	}
	switch state {
	case models.ToothStateMissing, models.ToothStateCrown, models.ToothStateBridge:
	default:
		return errors.New("not a whole-tooth state: " + state)
	}

	record := teeth[tooth]
	if record.GlobalState == state {
		record.GlobalState = models.ToothStateNone
	} else {
		record.GlobalState = state
	}
	teeth[tooth] = record
	return nil
}

// ResetChart clears the working (unsaved) state only; persisted snapshots
// remain untouched.
func ResetChart() map[string]models.ToothRecord {
	return map[string]models.ToothRecord{}
}

// FindingSummary counts how often each finding tag appears in a snapshot,
// over whole-tooth states and surfaces alike. Healthy and empty tags are not
// counted. The result is sorted by tag for stable output.
func FindingSummary(snapshot models.Odontogram) []models.FindingCount {
	counts := map[string]int{}
	for _, record := range snapshot.Teeth {
		if record.GlobalState != "" && record.GlobalState != models.ToothStateNone {
			counts[record.GlobalState]++
		}
		for _, tag := range []string{
			record.Surfaces.Top,
			record.Surfaces.Bottom,
			record.Surfaces.Left,
			record.Surfaces.Right,
			record.Surfaces.Center,
		} {
			if tag != "" && tag != models.FindingHealthy {
				counts[tag]++
			}
		}
	}

	summary := make([]models.FindingCount, 0, len(counts))
	for tag, count := range counts {
		summary = append(summary, models.FindingCount{Tag: tag, Count: count})
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Tag < summary[j].Tag
	})
	return summary
}

func surfaceValue(surfaces models.ToothSurfaces, surface string) (string, bool) {
	var value string
	switch surface {
	case SurfaceTop:
		value = surfaces.Top
	case SurfaceBottom:
		value = surfaces.Bottom
	case SurfaceLeft:
		value = surfaces.Left
	case SurfaceRight:
		value = surfaces.Right
	case SurfaceCenter:
		value = surfaces.Center
	default:
		return "", false
	}
	if value == "" {
		value = models.FindingHealthy
	}
	return value, true
}

func setSurface(surfaces *models.ToothSurfaces, surface, tag string) {
	switch surface {
	case SurfaceTop:
		surfaces.Top = tag
	case SurfaceBottom:
		surfaces.Bottom = tag
	case SurfaceLeft:
		surfaces.Left = tag
	case SurfaceRight:
		surfaces.Right = tag
	case SurfaceCenter:
		surfaces.Center = tag
	}
}
