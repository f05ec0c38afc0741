package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"KuskoDento/models"
	"KuskoDento/repositories"
)

// ErrPaymentNotFound is returned when an amortization targets a missing
// ledger entry.
var ErrPaymentNotFound = errors.New("payment not found")

type PaymentService struct {
	payments     *repositories.PaymentRepository
	appointments *repositories.AppointmentRepository
	patients     *repositories.PatientRepository

	// now is overridable in tests.
	now func() time.Time
}

func NewPaymentService(
	payments *repositories.PaymentRepository,
	appointments *repositories.AppointmentRepository,
	patients *repositories.PatientRepository,
) *PaymentService {
	return &PaymentService{
		payments:     payments,
		appointments: appointments,
		patients:     patients,
		now:          time.Now,
	}
}

// Amortize registers a partial payment against an existing balance. The
// amount is validated before any write; on success the linked appointment's
// paidAmount and balance are updated so both entities stay consistent. The
// appointment update is a second independent write.
func (s *PaymentService) Amortize(ctx context.Context, paymentID string, amount float64) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	now := s.now()
	date := now.Format("2006-01-02")
	timeOfDay := now.Format("15:04")
	if err := ApplyAmortization(payment, amount, date, timeOfDay); err != nil {
		return nil, err
	}

	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	if payment.AppointmentID != "" {
		appointment, err := s.appointments.GetByID(ctx, payment.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment != nil {
			appointment.PaidAmount = payment.TotalPaid
			appointment.Balance = payment.Balance
			if err := s.appointments.Update(ctx, appointment); err != nil {
				return nil, err
			}
		}
	}

	return payment, nil
}

// GetAll returns every ledger entry joined with the owning patient's name
// and DNI, newest first.
func (s *PaymentService) GetAll(ctx context.Context) ([]models.PaymentView, error) {
	payments, err := s.payments.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	patientByID := make(map[string]models.Patient, len(patients))
	for _, p := range patients {
		patientByID[p.ID] = p
	}

	views := make([]models.PaymentView, 0, len(payments))
	for _, payment := range payments {
		view := models.PaymentView{Payment: payment, PatientName: "Desconocido"}
		if patient, ok := patientByID[payment.PatientID]; ok {
			view.PatientName = patient.LastNames + ", " + patient.Names
			view.PatientDNI = patient.DNI
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool {
		if views[i].Date != views[j].Date {
			return views[i].Date > views[j].Date
		}
		return views[i].Time > views[j].Time
	})
	return views, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

// Summary aggregates the whole collection for the financial dashboard.
func (s *PaymentService) Summary(ctx context.Context) (models.PaymentSummary, error) {
	payments, err := s.payments.GetAll(ctx)
	if err != nil {
		return models.PaymentSummary{}, err
	}
	summary := models.PaymentSummary{Transactions: len(payments)}
	for _, payment := range payments {
		summary.TotalCollected += payment.TotalPaid
		summary.TotalOutstanding += payment.Balance
	}
	return summary, nil
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	return s.payments.Delete(ctx, id)
}
