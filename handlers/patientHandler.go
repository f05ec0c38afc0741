package handlers

import (
	"fmt"

	"KuskoDento/models"
	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	Service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{Service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.Create(c.Request.Context(), &patient); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}
	c.JSON(201, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.Service.GetAll(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, patients)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.Service.GetByID(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if patient == nil {
		c.JSON(404, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	patient.ID = c.Param("patient_id")

	if err := h.Service.Update(c.Request.Context(), &patient); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("patient_id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Patient deleted"})
}
