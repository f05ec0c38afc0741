package handlers

import (
	"errors"

	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

func (h *PaymentHandler) GetAllPayments(c *gin.Context) {
	payments, err := h.Service.GetAll(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, payments)
}

func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	payment, err := h.Service.GetByID(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if payment == nil {
		c.JSON(404, gin.H{"error": "Payment not found"})
		return
	}
	c.JSON(200, payment)
}

// GetPaymentSummary returns aggregate collected and outstanding totals.
func (h *PaymentHandler) GetPaymentSummary(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, summary)
}

// AmortizePayment applies a partial payment against the outstanding balance.
// Amounts of zero, negative amounts and amounts above the balance are
// rejected without changing the record.
func (h *PaymentHandler) AmortizePayment(c *gin.Context) {
	var data struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	payment, err := h.Service.Amortize(c.Request.Context(), c.Param("payment_id"), data.Amount)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			c.JSON(404, gin.H{"error": "Payment not found"})
			return
		}
		if errors.Is(err, services.ErrAmortizationOutOfRange) {
			c.JSON(400, gin.H{"error": "El monto debe ser mayor a 0 y no exceder el saldo pendiente"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(200, payment)
}

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("payment_id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Payment deleted"})
}
