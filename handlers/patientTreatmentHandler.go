package handlers

import (
	"KuskoDento/models"
	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

type PatientTreatmentHandler struct {
	Service *services.PatientTreatmentService
}

func NewPatientTreatmentHandler(service *services.PatientTreatmentService) *PatientTreatmentHandler {
	return &PatientTreatmentHandler{Service: service}
}

func (h *PatientTreatmentHandler) CreatePatientTreatment(c *gin.Context) {
	var record models.PatientTreatment
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.Create(c.Request.Context(), &record); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(201, record)
}

func (h *PatientTreatmentHandler) GetAllPatientTreatments(c *gin.Context) {
	records, err := h.Service.GetAll(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, records)
}

func (h *PatientTreatmentHandler) GetPatientTreatmentByID(c *gin.Context) {
	record, err := h.Service.GetByID(c.Request.Context(), c.Param("record_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if record == nil {
		c.JSON(404, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(200, record)
}

func (h *PatientTreatmentHandler) UpdatePatientTreatment(c *gin.Context) {
	var record models.PatientTreatment
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	record.ID = c.Param("record_id")

	if err := h.Service.Update(c.Request.Context(), &record); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, record)
}

func (h *PatientTreatmentHandler) DeletePatientTreatment(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("record_id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Record deleted"})
}
