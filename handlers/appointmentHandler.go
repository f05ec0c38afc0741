package handlers

import (
	"errors"
	"fmt"

	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	Service     *services.AppointmentService
	UserService services.UserService
}

func NewAppointmentHandler(service *services.AppointmentService, userService services.UserService) *AppointmentHandler {
	return &AppointmentHandler{Service: service, UserService: userService}
}

// CreateAppointment schedules a visit. A doctor double booking on the same
// date and time is refused with 409; when the slot is free the companion
// payment record is created in the same request.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req services.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.Service.Schedule(c.Request.Context(), req)
	if err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(409, gin.H{"error": conflict.Error()})
			return
		}
		if errors.Is(err, services.ErrCompanionPayment) {
			// The appointment exists but its payment record does not.
			c.JSON(201, gin.H{
				"appointment": appointment,
				"warning":     "La cita se registró pero el registro de pago no pudo crearse",
			})
			return
		}
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}
	c.JSON(201, appointment)
}

// GetAllAppointments returns the agenda, optionally narrowed with
// ?range=today|week|specific&date=YYYY-MM-DD.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	filter := services.AgendaFilter{
		Range: c.DefaultQuery("range", "all"),
		Date:  c.Query("date"),
	}

	appointments, err := h.Service.GetAll(c.Request.Context(), filter)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.Service.GetByID(c.Request.Context(), c.Param("appointment_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if appointment == nil {
		c.JSON(404, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var data struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("appointment_id"), data.Status)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if appointment == nil {
		c.JSON(404, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(200, appointment)
}

// DeleteAppointment removes an appointment after the caller re-enters their
// password.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	var data struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if !h.UserService.VerifyPassword(c.Request.Context(), data.UserID, data.Password) {
		c.JSON(403, gin.H{"error": "Contraseña incorrecta"})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), c.Param("appointment_id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Appointment deleted"})
}
