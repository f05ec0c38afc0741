package services

import (
	"errors"
	"fmt"

	"KuskoDento/models"
)

// ErrAmortizationOutOfRange rejects amortization amounts outside
// (0, current balance]. State is never altered on rejection.
var ErrAmortizationOutOfRange = errors.New("amortization amount is out of range")

// Charge is the derived financial view of a new appointment. All amounts are
// non-negative; rounding happens only at presentation time.
type Charge struct {
	FinalCost float64
	Paid      float64
	Balance   float64
}

// ComputeCharge derives the charge for an appointment: the discount is
// deducted from the cost first, the initial payment is capped at the final
// cost, and the balance can never go negative.
func ComputeCharge(cost, discountAmount, paidAmount float64) Charge {
	finalCost := cost - discountAmount
	if finalCost < 0 {
		finalCost = 0
	}
	paid := paidAmount
	if paid > finalCost {
		paid = finalCost
	}
	if paid < 0 {
		paid = 0
	}
	balance := finalCost - paid
	if balance < 0 {
		balance = 0
	}
	return Charge{FinalCost: finalCost, Paid: paid, Balance: balance}
}

// NeedsPayment reports whether a companion payment record must be created
// for the charge.
func NeedsPayment(charge Charge) bool {
	return charge.Paid > 0 || charge.FinalCost > 0
}

// SeedHistory builds the initial payment history: one entry for the initial
// payment when something was paid, otherwise empty.
func SeedHistory(charge Charge, date, timeOfDay string) []models.PaymentHistory {
	if charge.Paid <= 0 {
		return []models.PaymentHistory{}
	}
	return []models.PaymentHistory{{Date: date, Time: timeOfDay, Amount: charge.Paid}}
}

// HistoryTotal sums the amounts of a payment history.
func HistoryTotal(history []models.PaymentHistory) float64 {
	var total float64
	for _, entry := range history {
		total += entry.Amount
	}
	return total
}

// ApplyAmortization registers a new partial payment on the ledger entry:
// appends to the history and recomputes totalPaid and balance. Prior history
// entries are never rewritten. The amount must satisfy
// 0 < amount <= current balance or the payment is left untouched.
func ApplyAmortization(payment *models.Payment, amount float64, date, timeOfDay string) error {
	if amount <= 0 || amount > payment.Balance {
		return fmt.Errorf("%w: %.2f (current balance %.2f)", ErrAmortizationOutOfRange, amount, payment.Balance)
	}

	payment.History = append(payment.History, models.PaymentHistory{Date: date, Time: timeOfDay, Amount: amount})
	payment.TotalPaid += amount
	payment.Balance = payment.TotalCost - payment.TotalPaid
	if payment.Balance < 0 {
		payment.Balance = 0
	}
	payment.Date = date
	payment.Time = timeOfDay
	return nil
}
