package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"KuskoDento/models"
)

func seedPaymentWithAppointment(t *testing.T, env *testEnv) (*models.Payment, *models.Appointment) {
	t.Helper()
	ctx := context.Background()

	appointment := &models.Appointment{
		ID:         "a1",
		PatientID:  "p1",
		DoctorID:   "d1",
		Date:       "2026-08-01",
		Time:       "10:00",
		Status:     models.StatusAssigned,
		Cost:       80,
		PaidAmount: 50,
		Balance:    30,
	}
	if err := env.appointments.Create(ctx, appointment); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	payment := &models.Payment{
		ID:            "pay1",
		PatientID:     "p1",
		AppointmentID: "a1",
		TreatmentName: "Limpieza dental",
		Amount:        50,
		TotalCost:     80,
		TotalPaid:     50,
		Balance:       30,
		Date:          "2026-08-01",
		Time:          "10:00",
		History:       []models.PaymentHistory{{Date: "2026-08-01", Time: "10:00", Amount: 50}},
	}
	if err := env.payments.Create(ctx, payment); err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return payment, appointment
}

func TestAmortizePropagatesToAppointment(t *testing.T) {
	env := newTestEnv(t)
	service := env.paymentService()
	service.now = func() time.Time {
		return time.Date(2026, 8, 15, 16, 30, 0, 0, time.UTC)
	}
	seedPaymentWithAppointment(t, env)
	ctx := context.Background()

	payment, err := service.Amortize(ctx, "pay1", 30)
	if err != nil {
		t.Fatalf("amortize: %v", err)
	}
	if payment.TotalPaid != 80 || payment.Balance != 0 {
		t.Fatalf("ledger wrong after amortization: %+v", payment)
	}
	if payment.Date != "2026-08-15" || payment.Time != "16:30" {
		t.Fatalf("amortization not stamped with current time: %s %s", payment.Date, payment.Time)
	}

	appointment, err := env.appointments.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("get appointment: %v", err)
	}
	if appointment.PaidAmount != 80 || appointment.Balance != 0 {
		t.Fatalf("appointment not synced: paid=%v balance=%v", appointment.PaidAmount, appointment.Balance)
	}
}

func TestAmortizeRejectionLeavesStoreUntouched(t *testing.T) {
	env := newTestEnv(t)
	service := env.paymentService()
	seedPaymentWithAppointment(t, env)
	ctx := context.Background()

	for _, amount := range []float64{0, -10, 30.5} {
		if _, err := service.Amortize(ctx, "pay1", amount); !errors.Is(err, ErrAmortizationOutOfRange) {
			t.Fatalf("amount %v: expected ErrAmortizationOutOfRange, got %v", amount, err)
		}
	}

	payment, err := env.payments.GetByID(ctx, "pay1")
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if payment.TotalPaid != 50 || payment.Balance != 30 || len(payment.History) != 1 {
		t.Fatalf("rejected amortization mutated stored payment: %+v", payment)
	}
}

func TestAmortizeMissingPayment(t *testing.T) {
	env := newTestEnv(t)
	service := env.paymentService()

	if _, err := service.Amortize(context.Background(), "nope", 10); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestAmortizeBalanceIsMonotonic(t *testing.T) {
	env := newTestEnv(t)
	service := env.paymentService()
	seedPaymentWithAppointment(t, env)
	ctx := context.Background()

	last := 30.0
	for _, amount := range []float64{10, 10, 10} {
		payment, err := service.Amortize(ctx, "pay1", amount)
		if err != nil {
			t.Fatalf("amortize %v: %v", amount, err)
		}
		if payment.Balance >= last {
			t.Fatalf("balance did not decrease: %v -> %v", last, payment.Balance)
		}
		last = payment.Balance
	}
	if last != 0 {
		t.Fatalf("expected settled account, balance %v", last)
	}
}

func TestGetAllPaymentsJoinsPatient(t *testing.T) {
	env := newTestEnv(t)
	service := env.paymentService()
	ctx := context.Background()

	if err := env.patients.Create(ctx, &models.Patient{ID: "p1", DNI: "12345678", Names: "Ana", LastNames: "Quispe", Phone: "984111222", Address: "Cusco"}); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	seedPaymentWithAppointment(t, env)

	views, err := service.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 payment view, got %d", len(views))
	}
	if views[0].PatientName != "Quispe, Ana" || views[0].PatientDNI != "12345678" {
		t.Fatalf("patient join wrong: %+v", views[0])
	}
}

func TestGetAllPaymentsUnknownPatientFallback(t *testing.T) {
	env := newTestEnv(t)
	service := env.paymentService()
	seedPaymentWithAppointment(t, env)

	views, err := service.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if views[0].PatientName != "Desconocido" {
		t.Fatalf("expected fallback name, got %q", views[0].PatientName)
	}
}

func TestPaymentSummary(t *testing.T) {
	env := newTestEnv(t)
	service := env.paymentService()
	ctx := context.Background()

	seedPaymentWithAppointment(t, env)
	if err := env.payments.Create(ctx, &models.Payment{
		ID:        "pay2",
		PatientID: "p2",
		TotalCost: 200,
		TotalPaid: 200,
		Balance:   0,
		Date:      "2026-08-10",
		Time:      "09:00",
	}); err != nil {
		t.Fatalf("create payment: %v", err)
	}

	summary, err := service.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Transactions != 2 || summary.TotalCollected != 250 || summary.TotalOutstanding != 30 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
