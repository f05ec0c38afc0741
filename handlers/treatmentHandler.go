package handlers

import (
	"fmt"

	"KuskoDento/models"
	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

type TreatmentHandler struct {
	Service *services.TreatmentService
}

func NewTreatmentHandler(service *services.TreatmentService) *TreatmentHandler {
	return &TreatmentHandler{Service: service}
}

func (h *TreatmentHandler) CreateTreatment(c *gin.Context) {
	var treatment models.Treatment
	if err := c.ShouldBindJSON(&treatment); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.Create(c.Request.Context(), &treatment); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}
	c.JSON(201, treatment)
}

func (h *TreatmentHandler) GetAllTreatments(c *gin.Context) {
	treatments, err := h.Service.GetAll(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, treatments)
}

func (h *TreatmentHandler) GetTreatmentByID(c *gin.Context) {
	treatment, err := h.Service.GetByID(c.Request.Context(), c.Param("treatment_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if treatment == nil {
		c.JSON(404, gin.H{"error": "Treatment not found"})
		return
	}
	c.JSON(200, treatment)
}

func (h *TreatmentHandler) UpdateTreatment(c *gin.Context) {
	var treatment models.Treatment
	if err := c.ShouldBindJSON(&treatment); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	treatment.ID = c.Param("treatment_id")

	if err := h.Service.Update(c.Request.Context(), &treatment); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}
	c.JSON(200, treatment)
}

func (h *TreatmentHandler) DeleteTreatment(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("treatment_id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Treatment deleted"})
}
