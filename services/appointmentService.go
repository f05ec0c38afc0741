package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"KuskoDento/models"
	"KuskoDento/repositories"
	"KuskoDento/utils"

	"github.com/google/uuid"
)

// ErrCompanionPayment marks the partial-failure window of scheduling: the
// appointment write succeeded but the payment write did not. The caller
// should reissue the missing payment write rather than retry the whole
// operation.
var ErrCompanionPayment = errors.New("appointment saved but companion payment write failed")

// ConflictError reports a scheduling collision: the practitioner already has
// an appointment at the identical (date, time) slot.
type ConflictError struct {
	DoctorName string
	Date       string
	Time       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("doctor already has an appointment at %s on %s", e.Time, e.Date)
}

// AgendaFilter selects which appointments GetAll returns.
type AgendaFilter struct {
	// Range is one of "all", "today", "week" or "specific".
	Range string
	// Date applies when Range is "specific".
	Date string
}

// ScheduleRequest carries the form fields of a new appointment before any
// derived financial state exists.
type ScheduleRequest struct {
	PatientID      string  `json:"patientId"`
	TreatmentID    string  `json:"treatmentId"`
	DoctorID       string  `json:"doctorId"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Observations   string  `json:"observations"`
	Status         string  `json:"status"`
	Cost           float64 `json:"cost"`
	DiscountAmount float64 `json:"discountAmount"`
	PaidAmount     float64 `json:"paidAmount"`
}

type AppointmentService struct {
	appointments *repositories.AppointmentRepository
	payments     *repositories.PaymentRepository
	patients     *repositories.PatientRepository
	treatments   *repositories.TreatmentRepository
	users        *repositories.UserRepository

	// now is overridable in tests.
	now func() time.Time
}

func NewAppointmentService(
	appointments *repositories.AppointmentRepository,
	payments *repositories.PaymentRepository,
	patients *repositories.PatientRepository,
	treatments *repositories.TreatmentRepository,
	users *repositories.UserRepository,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		payments:     payments,
		patients:     patients,
		treatments:   treatments,
		users:        users,
		now:          time.Now,
	}
}

// Schedule validates the request, rejects slot collisions before any write,
// derives the financial fields and persists the appointment plus, when money
// is involved, its companion payment. The two writes are independent
// single-collection transactions: a failure between them leaves the
// appointment without a ledger entry (see ErrCompanionPayment).
func (s *AppointmentService) Schedule(ctx context.Context, req ScheduleRequest) (*models.Appointment, error) {
	if req.Status == "" {
		req.Status = models.StatusAssigned
	}

	charge := ComputeCharge(req.Cost, req.DiscountAmount, req.PaidAmount)

	doctorName := "Médico"
	if doctor, err := s.users.GetByID(ctx, req.DoctorID); err != nil {
		return nil, err
	} else if doctor != nil {
		if doctor.FullName != "" {
			doctorName = doctor.FullName
		} else if doctor.Username != "" {
			doctorName = doctor.Username
		}
	}

	appointment := models.Appointment{
		ID:            uuid.New().String(),
		PatientID:     req.PatientID,
		TreatmentID:   req.TreatmentID,
		DoctorID:      req.DoctorID,
		DoctorName:    doctorName,
		Date:          req.Date,
		Time:          req.Time,
		Observations:  req.Observations,
		Status:        req.Status,
		Cost:          charge.FinalCost,
		ApplyDiscount: req.DiscountAmount > 0,
		PaidAmount:    charge.Paid,
		Balance:       charge.Balance,
	}
	if err := utils.ValidateAppointmentData(appointment); err != nil {
		return nil, err
	}

	conflict, err := s.appointments.FindConflict(ctx, req.DoctorID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &ConflictError{DoctorName: conflict.DoctorName, Date: req.Date, Time: req.Time}
	}

	if err := s.appointments.Create(ctx, &appointment); err != nil {
		return nil, err
	}

	if NeedsPayment(charge) {
		treatmentName := "Consulta"
		treatment, err := s.treatments.GetByID(ctx, req.TreatmentID)
		if err != nil {
			// The appointment is already persisted, so this is the same
			// partial-failure window as a failed payment write.
			return &appointment, fmt.Errorf("%w: %v", ErrCompanionPayment, err)
		}
		if treatment != nil {
			treatmentName = treatment.Name
		}
		payment := models.Payment{
			ID:            uuid.New().String(),
			PatientID:     req.PatientID,
			AppointmentID: appointment.ID,
			TreatmentName: treatmentName,
			Amount:        charge.Paid,
			TotalCost:     charge.FinalCost,
			TotalPaid:     charge.Paid,
			Balance:       charge.Balance,
			Date:          req.Date,
			Time:          req.Time,
			Observations:  req.Observations,
			History:       SeedHistory(charge, req.Date, req.Time),
		}
		if err := s.payments.Create(ctx, &payment); err != nil {
			return &appointment, fmt.Errorf("%w: %v", ErrCompanionPayment, err)
		}
	}

	return &appointment, nil
}

// GetAll returns the agenda joined with patient and treatment names,
// filtered and sorted by (date, time).
func (s *AppointmentService) GetAll(ctx context.Context, filter AgendaFilter) ([]models.AppointmentView, error) {
	appointments, err := s.appointments.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	treatments, err := s.treatments.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	patientNames := make(map[string]string, len(patients))
	for _, p := range patients {
		patientNames[p.ID] = strings.TrimSpace(p.Names + " " + p.LastNames)
	}
	treatmentNames := make(map[string]string, len(treatments))
	for _, t := range treatments {
		treatmentNames[t.ID] = t.Name
	}

	views := []models.AppointmentView{}
	for _, a := range appointments {
		if !s.matchesFilter(a.Date, filter) {
			continue
		}
		view := models.AppointmentView{
			Appointment:   a,
			PatientName:   patientNames[a.PatientID],
			TreatmentName: treatmentNames[a.TreatmentID],
		}
		if view.PatientName == "" {
			view.PatientName = "Paciente"
		}
		if view.TreatmentName == "" {
			view.TreatmentName = "Tratamiento"
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool {
		if views[i].Date != views[j].Date {
			return views[i].Date < views[j].Date
		}
		return views[i].Time < views[j].Time
	})
	return views, nil
}

// matchesFilter compares calendar date strings; dates use the 2006-01-02
// layout so lexical comparison is chronological. The week range is
// inclusive on both ends: today through today+7.
func (s *AppointmentService) matchesFilter(date string, filter AgendaFilter) bool {
	switch filter.Range {
	case "", "all":
		return true
	case "today":
		return date == s.now().Format("2006-01-02")
	case "week":
		today := s.now().Format("2006-01-02")
		end := s.now().AddDate(0, 0, 7).Format("2006-01-02")
		return date >= today && date <= end
	case "specific":
		return date == filter.Date
	default:
		return true
	}
}

func (s *AppointmentService) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// UpdateStatus flips an appointment between assigned and attended.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, nil
	}
	appointment.Status = status
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	return s.appointments.Delete(ctx, id)
}
